package docstats

import "github.com/kailas-cloud/docstats/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrMissingParameter = domain.ErrMissingParameter
	ErrInvalidParameter = domain.ErrInvalidParameter
	ErrInvalidArgument  = domain.ErrInvalidArgument
)
