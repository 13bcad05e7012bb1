package docstats

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docstats/internal/db"
	dbGoRedis "github.com/kailas-cloud/docstats/internal/db/goredis"
	dbRedis "github.com/kailas-cloud/docstats/internal/db/redis"
	domparam "github.com/kailas-cloud/docstats/internal/domain/param"
	"github.com/kailas-cloud/docstats/internal/domain/ranking"
	documentrepo "github.com/kailas-cloud/docstats/internal/repository/document"
	paramrepo "github.com/kailas-cloud/docstats/internal/repository/param"
	"github.com/kailas-cloud/docstats/internal/usecase/analytics"
	"github.com/kailas-cloud/docstats/internal/usecase/seed"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for fakes in tests.
type analyticsUseCase interface {
	TopAuthors(ctx context.Context, n int) (ranking.Ranking, error)
	CreationDates(ctx context.Context, n int) ([]string, error)
	Params() domparam.Set
}

type seedUseCase interface {
	Run(ctx context.Context, opts seed.Options) (domparam.Set, error)
}

type storeHandle interface {
	db.Pinger
	IndexExists(ctx context.Context, name string) (bool, error)
	Close()
}

// Client is the docstats SDK entry point. It is safe for concurrent use.
type Client struct {
	store  storeHandle
	seeder seedUseCase
	load   func(ctx context.Context) (analyticsUseCase, error)
	obs    *observer

	mu        sync.Mutex
	analytics analyticsUseCase
}

// New creates a Client and connects to the store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	cfg.applyDefaults()

	if len(cfg.addrs) == 0 {
		return nil, errors.New("docstats: database address required (use WithRedis or WithGoRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("docstats: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("docstats: create redis store: %w", err)
		}
		return s, nil
	case "goredis":
		s, err := dbGoRedis.NewStore(dbGoRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("docstats: create goredis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("docstats: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	docs := documentrepo.New(store, cfg.keyPrefix)
	params := paramrepo.New(store, cfg.keyPrefix, cfg.paramsIndex)

	return &Client{
		store:  store,
		seeder: seed.New(docs, params, zap.NewNop()),
		load: func(ctx context.Context) (analyticsUseCase, error) {
			svc, err := analytics.New(ctx, params, docs)
			if err != nil {
				return nil, err
			}
			return svc.WithConcurrency(cfg.concurrency).WithPageSize(cfg.pageSize), nil
		},
		obs: obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, -1, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Seed drops both indexes, writes random documents and a fresh parameter set.
// Subsequent analytic calls read the new parameters.
func (c *Client) Seed(ctx context.Context, opts SeedOptions) (_ Params, err error) {
	start := time.Now()
	var set domparam.Set
	defer func() { c.obs.observe("seed", start, set.DocCount, err) }()

	set, err = c.seeder.Run(ctx, opts.toDomain())
	if err != nil {
		return Params{}, fmt.Errorf("seed: %w", err)
	}

	c.mu.Lock()
	c.analytics = nil
	c.mu.Unlock()

	return paramsFromDomain(set), nil
}

// Params returns the parameter snapshot the analytic calls use.
func (c *Client) Params(ctx context.Context) (Params, error) {
	svc, err := c.analyticsService(ctx)
	if err != nil {
		return Params{}, err
	}
	return paramsFromDomain(svc.Params()), nil
}

// TopAuthors ranks authors by number of texts, most prolific first, and
// returns the first n. Ties keep roster order.
func (c *Client) TopAuthors(ctx context.Context, n int) (_ []AuthorCount, err error) {
	start := time.Now()
	var out []AuthorCount
	defer func() { c.obs.observe("top_authors", start, len(out), err) }()

	svc, err := c.analyticsService(ctx)
	if err != nil {
		return nil, err
	}
	top, err := svc.TopAuthors(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("top authors: %w", err)
	}
	out = rankingFromDomain(top)
	return out, nil
}

// CreationDates lists YYYY-MM-DD creation dates of documents from the last n
// calendar months, most recent first, one entry per document.
func (c *Client) CreationDates(ctx context.Context, n int) (_ []string, err error) {
	start := time.Now()
	var out []string
	defer func() { c.obs.observe("creation_dates", start, len(out), err) }()

	svc, err := c.analyticsService(ctx)
	if err != nil {
		return nil, err
	}
	if out, err = svc.CreationDates(ctx, n); err != nil {
		return nil, fmt.Errorf("creation dates: %w", err)
	}
	return out, nil
}

// analyticsService returns the cached analytics service, loading the parameter snapshot on first use.
func (c *Client) analyticsService(ctx context.Context) (analyticsUseCase, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.analytics != nil {
		return c.analytics, nil
	}
	svc, err := c.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load parameters: %w", err)
	}
	c.analytics = svc
	return svc, nil
}

func (c *Client) snapshot() analyticsUseCase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.analytics
}
