package docstats

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "redis" or "goredis"
	addrs    []string
	password string

	keyPrefix   string
	paramsIndex string

	concurrency int
	pageSize    int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis connects through rueidis.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithGoRedis connects through go-redis. Several addresses select cluster mode.
func WithGoRedis(password string, addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "goredis"
		c.addrs = addrs
		c.password = password
	})
}

// WithKeyPrefix sets the prefix of every key the client writes. Default: "docstats:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithParamsIndex names the parameter index. Default: "index-pars".
func WithParamsIndex(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.paramsIndex = name
	})
}

// WithConcurrency bounds in-flight per-author count queries. Default: 4.
func WithConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.concurrency = n
	})
}

// WithPageSize sets the page size of date range queries. Default: 1000.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

func (c *clientConfig) applyDefaults() {
	if c.keyPrefix == "" {
		c.keyPrefix = "docstats:"
	}
	if c.paramsIndex == "" {
		c.paramsIndex = "index-pars"
	}
	if c.concurrency <= 0 {
		c.concurrency = 4
	}
	if c.pageSize <= 0 {
		c.pageSize = 1000
	}
}
