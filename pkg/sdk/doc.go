// Package docstats embeds the docstats analytics engine in a Go program,
// without the HTTP layer.
//
//	client, _ := docstats.New(ctx, docstats.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	_, _ = client.Seed(ctx, docstats.SeedOptions{DocCount: docstats.Int(1000), AuthorsCount: 10})
//	top, _ := client.TopAuthors(ctx, 3)
//	dates, _ := client.CreationDates(ctx, 12)
//
// The parameter snapshot is read on the first analytic call and replaced
// after every Seed.
package docstats
