package docstats

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/docstats/internal/domain"
	domparam "github.com/kailas-cloud/docstats/internal/domain/param"
	"github.com/kailas-cloud/docstats/internal/domain/ranking"
	"github.com/kailas-cloud/docstats/internal/usecase/seed"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}
	WithRedis("localhost:6379", "secret").apply(cfg)
	if cfg.driver != "redis" || cfg.addrs[0] != "localhost:6379" || cfg.password != "secret" {
		t.Errorf("redis config = %+v", cfg)
	}

	cfg2 := &clientConfig{}
	WithGoRedis("pass", "a:6379", "b:6379").apply(cfg2)
	if cfg2.driver != "goredis" || len(cfg2.addrs) != 2 || cfg2.password != "pass" {
		t.Errorf("goredis config = %+v", cfg2)
	}

	cfg3 := &clientConfig{}
	WithKeyPrefix("x:").apply(cfg3)
	WithParamsIndex("pars").apply(cfg3)
	WithConcurrency(8).apply(cfg3)
	WithPageSize(50).apply(cfg3)
	cfg3.applyDefaults()
	if cfg3.keyPrefix != "x:" || cfg3.paramsIndex != "pars" || cfg3.concurrency != 8 || cfg3.pageSize != 50 {
		t.Errorf("config = %+v", cfg3)
	}

	cfg4 := &clientConfig{}
	logger := slog.Default()
	WithLogger(logger).apply(cfg4)
	if cfg4.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg4)
	if cfg4.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClientConfig_Defaults(t *testing.T) {
	cfg := &clientConfig{}
	cfg.applyDefaults()
	if cfg.keyPrefix != "docstats:" || cfg.paramsIndex != "index-pars" || cfg.concurrency != 4 || cfg.pageSize != 1000 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestClient_Close(t *testing.T) {
	(&Client{}).Close()

	store := &mockStore{}
	c, _ := newTestClient(store, nil)
	c.Close()
	if !store.closed {
		t.Error("store not closed")
	}
}

func TestClient_TopAuthors(t *testing.T) {
	svc := &mockAnalytics{
		topFn: func(_ context.Context, n int) (ranking.Ranking, error) {
			return ranking.Ranking{{Author: "Bob", Count: 3}, {Author: "Ann", Count: 1}}[:n], nil
		},
	}
	c, loads := newTestClient(&mockStore{}, svc)

	got, err := c.TopAuthors(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []AuthorCount{{"Bob", 3}, {"Ann", 1}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := c.TopAuthors(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if *loads != 1 {
		t.Errorf("parameters loaded %d times, want 1", *loads)
	}
}

func TestClient_TopAuthors_InvalidArgument(t *testing.T) {
	svc := &mockAnalytics{
		topFn: func(_ context.Context, n int) (ranking.Ranking, error) {
			return nil, domain.NewInvalidArgument("n", n, 2)
		},
	}
	c, _ := newTestClient(&mockStore{}, svc)

	_, err := c.TopAuthors(context.Background(), 5)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestClient_CreationDates(t *testing.T) {
	svc := &mockAnalytics{
		datesFn: func(_ context.Context, n int) ([]string, error) {
			if n != 12 {
				t.Errorf("n = %d", n)
			}
			return []string{"2024-03-01", "2024-02-10"}, nil
		},
	}
	c, _ := newTestClient(&mockStore{}, svc)

	got, err := c.CreationDates(context.Background(), 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "2024-03-01" {
		t.Errorf("got %v", got)
	}
}

func TestClient_LoadFailure(t *testing.T) {
	c := &Client{
		store: &mockStore{},
		load: func(_ context.Context) (analyticsUseCase, error) {
			return nil, domain.NewMissingParameter(domparam.AuthorsList)
		},
	}

	_, err := c.CreationDates(context.Background(), 1)
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}
	if c.snapshot() != nil {
		t.Error("failed load must not be cached")
	}
}

func TestClient_Seed_InvalidatesSnapshot(t *testing.T) {
	svc := &mockAnalytics{params: domparam.Set{IndexName: "index-docs"}}
	c, loads := newTestClient(&mockStore{}, svc)

	var gotOpts seed.Options
	c.seeder = &mockSeeder{runFn: func(_ context.Context, opts seed.Options) (domparam.Set, error) {
		gotOpts = opts
		return domparam.Set{DocCount: *opts.DocCount, AuthorsCount: 2, IndexName: "index-docs", Authors: []string{"A", "B"}}, nil
	}}

	if _, err := c.Params(context.Background()); err != nil {
		t.Fatal(err)
	}

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local)
	params, err := c.Seed(context.Background(), SeedOptions{DocCount: Int(30), Start: start, Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	if params.DocCount != 30 || len(params.Authors) != 2 {
		t.Errorf("params = %+v", params)
	}
	if gotOpts.DocCount == nil || *gotOpts.DocCount != 30 || !gotOpts.Start.Equal(start) || gotOpts.Seed != 5 {
		t.Errorf("seed options = %+v", gotOpts)
	}

	if _, err := c.Params(context.Background()); err != nil {
		t.Fatal(err)
	}
	if *loads != 2 {
		t.Errorf("parameters loaded %d times, want 2", *loads)
	}
}

func TestSeedOptions_DocCountPassThrough(t *testing.T) {
	if got := (SeedOptions{}).toDomain().DocCount; got != nil {
		t.Errorf("unset DocCount = %d, want nil for the generator default", *got)
	}
	if got := (SeedOptions{DocCount: Int(0)}).toDomain().DocCount; got == nil || *got != 0 {
		t.Errorf("DocCount = %v, want explicit 0", got)
	}
}

func TestClient_Seed_Error(t *testing.T) {
	c, _ := newTestClient(&mockStore{}, nil)
	c.seeder = &mockSeeder{runFn: func(context.Context, seed.Options) (domparam.Set, error) {
		return domparam.Set{}, errors.New("store down")
	}}

	if _, err := c.Seed(context.Background(), SeedOptions{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_Health(t *testing.T) {
	store := &mockStore{indexes: map[string]bool{"index-docs": true}}
	c, _ := newTestClient(store, &mockAnalytics{params: domparam.Set{IndexName: "index-docs"}})

	// Before parameters are loaded only the database is checked.
	h := c.Health(context.Background())
	if h.Status != "ok" || len(h.Checks) != 1 {
		t.Errorf("health = %+v", h)
	}

	if _, err := c.Params(context.Background()); err != nil {
		t.Fatal(err)
	}
	h = c.Health(context.Background())
	if h.Status != "ok" || h.Checks["index"] != "ok" {
		t.Errorf("health = %+v", h)
	}
	if !slices.Equal(store.checkedFor, []string{"index-docs"}) {
		t.Errorf("checked %v", store.checkedFor)
	}

	store.pingErr = errors.New("down")
	if h := c.Health(context.Background()); h.Status != "error" {
		t.Errorf("status = %q, want error", h.Status)
	}
}

func TestClient_Ping(t *testing.T) {
	c, _ := newTestClient(&mockStore{pingErr: errors.New("refused")}, nil)
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), 1, nil)
	obs.observe("test", time.Now(), -1, errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("top_authors", time.Now().Add(-10*time.Millisecond), 3, nil)
	obs.observe("top_authors", time.Now(), 0, errors.New("fail"))

	if got := testutil.ToFloat64(obs.metrics.calls.WithLabelValues("top_authors", "ok")); got != 1 {
		t.Errorf("ok calls = %v", got)
	}
	if got := testutil.ToFloat64(obs.metrics.calls.WithLabelValues("top_authors", "error")); got != 1 {
		t.Errorf("error calls = %v", got)
	}
	if n := testutil.CollectAndCount(obs.metrics.results); n != 1 {
		t.Errorf("results series = %d, want 1", n)
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second observer: %v", err)
	}
	if first.metrics.calls != second.metrics.calls {
		t.Error("expected the registered counter to be reused")
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), 2, nil)
	obs.observe("test.op", time.Now(), -1, errors.New("test error"))
}
