package docstats

import (
	"context"

	domparam "github.com/kailas-cloud/docstats/internal/domain/param"
	"github.com/kailas-cloud/docstats/internal/domain/ranking"
	"github.com/kailas-cloud/docstats/internal/usecase/seed"
)

// --- analyticsUseCase mock ---

type mockAnalytics struct {
	topFn   func(ctx context.Context, n int) (ranking.Ranking, error)
	datesFn func(ctx context.Context, n int) ([]string, error)
	params  domparam.Set
}

func (m *mockAnalytics) TopAuthors(ctx context.Context, n int) (ranking.Ranking, error) {
	return m.topFn(ctx, n)
}

func (m *mockAnalytics) CreationDates(ctx context.Context, n int) ([]string, error) {
	return m.datesFn(ctx, n)
}

func (m *mockAnalytics) Params() domparam.Set { return m.params }

// --- seedUseCase mock ---

type mockSeeder struct {
	runFn func(ctx context.Context, opts seed.Options) (domparam.Set, error)
}

func (m *mockSeeder) Run(ctx context.Context, opts seed.Options) (domparam.Set, error) {
	return m.runFn(ctx, opts)
}

// --- storeHandle mock ---

type mockStore struct {
	pingErr    error
	indexes    map[string]bool
	indexErr   error
	closed     bool
	checkedFor []string
}

func (m *mockStore) Ping(_ context.Context) error { return m.pingErr }

func (m *mockStore) IndexExists(_ context.Context, name string) (bool, error) {
	m.checkedFor = append(m.checkedFor, name)
	if m.indexErr != nil {
		return false, m.indexErr
	}
	return m.indexes[name], nil
}

func (m *mockStore) Close() { m.closed = true }

func newTestClient(store *mockStore, svc analyticsUseCase) (*Client, *int) {
	loads := 0
	c := &Client{
		store: store,
		load: func(_ context.Context) (analyticsUseCase, error) {
			loads++
			return svc, nil
		},
	}
	return c, &loads
}
