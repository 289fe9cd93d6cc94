// Package service computes rating summaries from the remote tables and
// forwards submissions to them. It implements the dependencies required by
// the HTTP API.
package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/squadrate/internal/adapters/rowstore"
	"github.com/okian/squadrate/internal/domain/comments"
	"github.com/okian/squadrate/pkg/logger"
)

// Defaults.
const (
	defaultEvalTable   = "responses"
	defaultSelfTable   = "self_assessments"
	defaultLocale      = "bg"
	defaultSubmitBatch = 25
)

// Service owns no rating state; every summary is recomputed from a fresh
// fetch of both tables.
type Service struct {
	mu sync.RWMutex

	store rowstore.Store

	// Configuration
	evalTable     string
	selfTable     string
	locale        string
	dismissive    []string
	unknownAuthor string
	submitBatch   int

	// State
	started bool

	// Counters for /stats
	dateSummaries    atomic.Int64
	allTimeSummaries atomic.Int64
	submissions      atomic.Int64
	failures         atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the row store both tables live in.
func WithStore(store rowstore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTables sets the Evaluations and SelfAssessments table identifiers.
func WithTables(evalTable, selfTable string) Option {
	return func(s *Service) {
		if evalTable != "" {
			s.evalTable = evalTable
		}
		if selfTable != "" {
			s.selfTable = selfTable
		}
	}
}

// WithCollationLocale sets the BCP 47 tag used to order player names.
func WithCollationLocale(tag string) Option {
	return func(s *Service) {
		if tag != "" {
			s.locale = tag
		}
	}
}

// WithDismissiveTokens sets the notes that never become comments.
func WithDismissiveTokens(tokens ...string) Option {
	return func(s *Service) {
		if len(tokens) > 0 {
			s.dismissive = append([]string(nil), tokens...)
		}
	}
}

// WithUnknownAuthor sets the author shown for unattributed comments.
func WithUnknownAuthor(author string) Option {
	return func(s *Service) {
		if author != "" {
			s.unknownAuthor = author
		}
	}
}

// WithSubmitBatchSize bounds how many evaluation rows are inserted at once.
func WithSubmitBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.submitBatch = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		evalTable:     defaultEvalTable,
		selfTable:     defaultSelfTable,
		locale:        defaultLocale,
		dismissive:    comments.DefaultDismissiveTokens,
		unknownAuthor: comments.DefaultUnknownAuthor,
		submitBatch:   defaultSubmitBatch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start checks the wiring and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		return ErrNoStore
	}

	s.started = true
	s.logger.Info(ctx, "rating service started",
		logger.String("evalTable", s.evalTable),
		logger.String("selfTable", s.selfTable),
		logger.String("locale", s.locale),
		logger.Int("submitBatch", s.submitBatch),
	)
	return nil
}

// Stop marks the service stopped. In-flight requests finish on their own.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "rating service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":          s.started,
		"evalTable":        s.evalTable,
		"selfTable":        s.selfTable,
		"collationLocale":  s.locale,
		"submitBatchSize":  s.submitBatch,
		"dateSummaries":    s.dateSummaries.Load(),
		"allTimeSummaries": s.allTimeSummaries.Load(),
		"submissions":      s.submissions.Load(),
		"failures":         s.failures.Load(),
	}
}
