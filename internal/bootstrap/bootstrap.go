// Package bootstrap builds the pieces shared by the docstats binaries.
package bootstrap

import (
	"fmt"

	"github.com/kailas-cloud/docstats/internal/config"
	"github.com/kailas-cloud/docstats/internal/db"
	dbGoRedis "github.com/kailas-cloud/docstats/internal/db/goredis"
	dbRedis "github.com/kailas-cloud/docstats/internal/db/redis"
	documentrepo "github.com/kailas-cloud/docstats/internal/repository/document"
	paramrepo "github.com/kailas-cloud/docstats/internal/repository/param"
	"github.com/kailas-cloud/docstats/internal/usecase/seed"
)

// OpenStore creates the store for the configured driver.
func OpenStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		return store, nil
	case "goredis":
		store, err := dbGoRedis.NewStore(dbGoRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("goredis store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Repos are the repositories over one store.
type Repos struct {
	Documents *documentrepo.Repo
	Params    *paramrepo.Repo
}

// NewRepos wires the document and parameter repositories.
func NewRepos(store db.Store, storage config.StorageConfig) Repos {
	return Repos{
		Documents: documentrepo.New(store, storage.KeyPrefix),
		Params:    paramrepo.New(store, storage.KeyPrefix, storage.ParamsIndex),
	}
}

// SeedOptions converts the seed section into generator options.
func SeedOptions(cfg config.SeedConfig) (seed.Options, error) {
	start, err := cfg.Start()
	if err != nil {
		return seed.Options{}, err
	}
	return seed.Options{
		DocCount:     cfg.DocCount,
		AuthorsCount: cfg.AuthorsCount,
		IndexName:    cfg.IndexName,
		Start:        start,
		Seed:         cfg.RandomSeed,
	}, nil
}
