package bootstrap

import (
	"testing"
	"time"

	"github.com/kailas-cloud/docstats/internal/config"
)

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(config.DatabaseConfig{Driver: "valkey", Addrs: []string{"localhost:6379"}})
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpenStore_MissingAddrs(t *testing.T) {
	for _, driver := range []string{"redis", "goredis"} {
		t.Run(driver, func(t *testing.T) {
			if _, err := OpenStore(config.DatabaseConfig{Driver: driver}); err == nil {
				t.Fatal("expected error for empty addrs")
			}
		})
	}
}

func TestOpenStore_GoRedis(t *testing.T) {
	// go-redis connects lazily, so construction succeeds without a server.
	store, err := OpenStore(config.DatabaseConfig{Driver: "goredis", Addrs: []string{"localhost:6379"}})
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	store.Close()
}

func TestSeedOptions(t *testing.T) {
	docs := 100
	opts, err := SeedOptions(config.SeedConfig{
		DocCount:     &docs,
		AuthorsCount: 5,
		IndexName:    "idx",
		StartDate:    "2020-02-29",
		RandomSeed:   42,
	})
	if err != nil {
		t.Fatal(err)
	}
	if opts.DocCount == nil || *opts.DocCount != 100 || opts.AuthorsCount != 5 || opts.IndexName != "idx" || opts.Seed != 42 {
		t.Errorf("opts = %+v", opts)
	}
	if want := time.Date(2020, time.February, 29, 0, 0, 0, 0, time.Local); !opts.Start.Equal(want) {
		t.Errorf("start = %v, want %v", opts.Start, want)
	}
	if !opts.End.IsZero() {
		t.Errorf("end should be left for the generator default, got %v", opts.End)
	}
}

func TestSeedOptions_BadDate(t *testing.T) {
	if _, err := SeedOptions(config.SeedConfig{StartDate: "yesterday"}); err == nil {
		t.Fatal("expected error")
	}
}
