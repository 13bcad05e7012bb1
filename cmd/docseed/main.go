// Command docseed drops and recreates the document and parameter indexes and
// fills them with random documents.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docstats/internal/bootstrap"
	"github.com/kailas-cloud/docstats/internal/config"
	logpkg "github.com/kailas-cloud/docstats/internal/logger"
	"github.com/kailas-cloud/docstats/internal/usecase/seed"
	"github.com/kailas-cloud/docstats/internal/version"
)

type flags struct {
	docCount     int
	docCountSet  bool
	authorsCount int
	indexName    string
	start        string
	end          string
	seed         uint64
	batchSize    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "docseed",
		Short: "Seed the document store with random documents",
		Long: `Drops the document and parameter indexes, recreates them and writes
random documents together with the parameter set the API server reads at startup.
Connection settings come from config/<ENV>.yaml; flags override the seed section.`,
		Version:      version.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.docCountSet = cmd.Flags().Changed("doc-count")
			return run(cmd, f)
		},
	}

	cmd.Flags().IntVarP(&f.docCount, "doc-count", "d", 0, "number of documents (default from config, then 10)")
	cmd.Flags().IntVarP(&f.authorsCount, "authors-count", "a", 0, "number of distinct authors (default from config, then 10)")
	cmd.Flags().StringVarP(&f.indexName, "index-name", "i", "", "document index name (default from config, then index-docs)")
	cmd.Flags().StringVar(&f.start, "start", "", "first possible document date, YYYY-MM-DD (default 2018-01-01)")
	cmd.Flags().StringVar(&f.end, "end", "", "day after the last possible document date, YYYY-MM-DD (default today)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed, 0 seeds from the clock")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", 0, "documents per pipelined write (default 500)")

	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts, err := buildOptions(cfg.Seed, f)
	if err != nil {
		return err
	}

	store, err := bootstrap.OpenStore(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database",
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	repos := bootstrap.NewRepos(store, cfg.Storage)
	set, err := seed.New(repos.Documents, repos.Params, logger).Run(ctx, opts)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d documents by %d authors into %s\n",
		set.DocCount, set.AuthorsCount, set.IndexName)
	return err
}

// buildOptions layers command flags over the config seed section.
func buildOptions(base config.SeedConfig, f flags) (seed.Options, error) {
	if f.docCountSet {
		base.DocCount = &f.docCount
	}
	if f.authorsCount != 0 {
		base.AuthorsCount = f.authorsCount
	}
	if f.indexName != "" {
		base.IndexName = f.indexName
	}
	if f.start != "" {
		base.StartDate = f.start
	}
	if f.seed != 0 {
		base.RandomSeed = f.seed
	}

	opts, err := bootstrap.SeedOptions(base)
	if err != nil {
		return seed.Options{}, err
	}
	if f.end != "" {
		end, err := time.ParseInLocation(time.DateOnly, f.end, time.Local)
		if err != nil {
			return seed.Options{}, fmt.Errorf("--end: %w", err)
		}
		opts.End = end
	}
	opts.BatchSize = f.batchSize
	return opts, nil
}
