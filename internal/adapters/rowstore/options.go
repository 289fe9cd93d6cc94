package rowstore

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/okian/squadrate/pkg/logger"
)

// Defaults for BaserowClient.
const (
	DefaultPageSize = 200
	maxPageSize     = 200
	defaultRPS      = 10
	defaultBurst    = 5
)

// Option applies a configuration option to the BaserowClient.
type Option func(*BaserowClient)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(b *BaserowClient) {
		if c != nil {
			b.http = c
		}
	}
}

// WithPageSize sets the page size requested for the first page. Later pages
// follow whatever the store encodes in its continuation.
func WithPageSize(n int) Option {
	return func(b *BaserowClient) {
		if n > 0 && n <= maxPageSize {
			b.pageSize = n
		}
	}
}

// WithRateLimit paces requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(b *BaserowClient) {
		if rps > 0 && burst > 0 {
			b.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(b *BaserowClient) {
		if l != nil {
			b.log = l
		}
	}
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryPageSize sets how many rows a MemoryStore page holds.
func WithMemoryPageSize(n int) MemoryOption {
	return func(m *MemoryStore) {
		if n > 0 {
			m.pageSize = n
		}
	}
}
