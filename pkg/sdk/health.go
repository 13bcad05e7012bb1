package docstats

import (
	"context"

	healthuc "github.com/kailas-cloud/docstats/internal/usecase/health"
)

// HealthStatus represents the aggregated store health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"/"missing"
}

// Health pings the store and, once parameters are loaded, checks the document index.
func (c *Client) Health(ctx context.Context) HealthStatus {
	index := ""
	var indexes healthuc.IndexChecker
	if svc := c.snapshot(); svc != nil {
		index = svc.Params().IndexName
		indexes = c.store
	}

	report := healthuc.New(c.store, indexes, index).Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
