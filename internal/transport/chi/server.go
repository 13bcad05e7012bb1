package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docstats/internal/domain"
	logpkg "github.com/kailas-cloud/docstats/internal/logger"
	gen "github.com/kailas-cloud/docstats/internal/transport/generated"
	analyticsuc "github.com/kailas-cloud/docstats/internal/usecase/analytics"
	healthuc "github.com/kailas-cloud/docstats/internal/usecase/health"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to the docstats analytics API"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented
	analytics     *analyticsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(analytics *analyticsuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		analytics: analytics,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		invalidArgumentHandler,
		sentinelHandler(domain.ErrInvalidArgument, http.StatusUnprocessableEntity, gen.ErrorResponseCodeInvalidArgument),
	}
	return s
}

// Home handles GET /.
func (s *Server) Home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, gen.HomeResponse{Message: WelcomeMessage})
}

// TopAuthors handles GET /documents/authors/top/{n}.
func (s *Server) TopAuthors(w http.ResponseWriter, r *http.Request, n gen.N) {
	top, err := s.analytics.TopAuthors(r.Context(), n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	logpkg.FromContext(r.Context()).Debug("Top authors computed",
		zap.Int("n", n),
		zap.Int("returned", len(top)),
	)
	writeJSON(w, http.StatusOK, top)
}

// CreationDates handles GET /documents/dates/lastmonths/{n}.
func (s *Server) CreationDates(w http.ResponseWriter, r *http.Request, n gen.N) {
	dates, err := s.analytics.CreationDates(r.Context(), n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	logpkg.FromContext(r.Context()).Debug("Creation dates listed",
		zap.Int("n", n),
		zap.Int("returned", len(dates)),
	)
	writeJSON(w, http.StatusOK, gen.CreationDates(dates))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]gen.HealthResponseChecks)
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}

	status := gen.HealthResponseStatus(report.Status)
	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status: status,
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidArgument,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// invalidArgumentHandler reports the rejected value and its bound, which carry no internals.
func invalidArgumentHandler(w http.ResponseWriter, err error, _ string) bool {
	var iae *domain.InvalidArgumentError
	if !errors.As(err, &iae) {
		return false
	}
	writeError(w, http.StatusUnprocessableEntity, gen.ErrorResponseCodeInvalidArgument, iae.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.With(zap.String("request_id", chiMiddleware.GetReqID(r.Context())))
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}
