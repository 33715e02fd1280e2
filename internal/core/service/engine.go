// Package service provides the snippet synchronization engine for SnipSync.
package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/yndnr/snipsync-go/internal/core/domain"
	"github.com/yndnr/snipsync-go/internal/telemetry/metric"
)

// Default engine configuration values.
const (
	DefaultRemoteTimeout = 30 * time.Second
	DefaultAuthor        = "unknown"

	// outcomeBuffer bounds the push outcome channel; outcomes beyond the
	// buffer are dropped for slow observers, never blocking a push.
	outcomeBuffer = 16
)

// Config holds the engine configuration. It is immutable once the
// engine is constructed.
type Config struct {
	// MaxVersionHistory caps retained versions per snippet (min 1).
	MaxVersionHistory int

	// RemoteTimeout bounds every remote store call. A push that exceeds
	// it releases the in-flight slot and counts as a failed push.
	RemoteTimeout time.Duration

	// DefaultAuthor is recorded on versions saved without an author.
	DefaultAuthor string
}

// PushOutcome records the result of one remote push attempt.
type PushOutcome struct {
	Err      error
	Duration time.Duration
}

// Engine is the versioned snippet synchronization engine.
//
// It owns the canonical in-memory collection (a read-through cache
// populated remote-first with local fallback), commits every mutation
// synchronously to the local store, and pushes to the remote store with
// an at-most-one-in-flight, queue-at-most-one-pending policy.
type Engine struct {
	cfg     Config
	local   LocalStore
	remote  RemoteStore
	logger  *slog.Logger
	metrics *metric.Registry

	mu           sync.Mutex
	cache        domain.Collection // nil until populated
	pushInFlight bool
	pushPending  bool
	flightDone   chan struct{}

	outcomes chan PushOutcome
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New creates a new synchronization engine.
func New(cfg Config, local LocalStore, remote RemoteStore, opts ...Option) *Engine {
	if cfg.MaxVersionHistory < 1 {
		cfg.MaxVersionHistory = domain.DefaultMaxVersionHistory
	}
	if cfg.RemoteTimeout <= 0 {
		cfg.RemoteTimeout = DefaultRemoteTimeout
	}
	if cfg.DefaultAuthor == "" {
		cfg.DefaultAuthor = DefaultAuthor
	}

	e := &Engine{
		cfg:      cfg,
		local:    local,
		remote:   remote,
		logger:   slog.Default(),
		outcomes: make(chan PushOutcome, outcomeBuffer),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Outcomes returns the channel of remote push outcomes. Observing it is
// optional; outcomes are dropped rather than blocking when nobody reads.
func (e *Engine) Outcomes() <-chan PushOutcome {
	return e.outcomes
}

// GetAll returns the full snippet collection.
//
// A populated cache is returned immediately without I/O. Otherwise the
// remote store is consulted first; on success the result is adopted and
// mirrored into the local store. On remote failure the local store is
// the fallback, with no further remote retry within this call.
func (e *Engine) GetAll(ctx context.Context) (domain.Collection, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cache != nil {
		if e.metrics != nil {
			e.metrics.CacheHits.Inc()
		}
		return e.cache.Clone(), nil
	}

	e.populateLocked(ctx)
	return e.cache.Clone(), nil
}

// GetSnippet returns one snippet by ID.
func (e *Engine) GetSnippet(ctx context.Context, id string) (*domain.Snippet, error) {
	if id == "" {
		return nil, domain.ErrMissingArgument.WithDetails("snippet id is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.ensureLoadedLocked(ctx)
	s, ok := e.cache[id]
	if !ok {
		return nil, domain.ErrSnippetNotFound.WithDetails(id)
	}
	return s.Clone(), nil
}

// SaveSnippet records content as a new version of the snippet,
// creating the snippet on first save for the ID.
//
// The cache and local store reflect the new version before the call
// returns; the remote push is issued asynchronously and its failure is
// reported via log, metrics, and the outcome channel, never to the
// caller.
func (e *Engine) SaveSnippet(ctx context.Context, id, content, author string) (domain.Version, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Version{}, domain.ErrMissingArgument.WithDetails("snippet id is required")
	}
	if len(id) > domain.MaxSnippetIDLength {
		return domain.Version{}, domain.ErrSnippetValidation.WithDetails("id exceeds 128 characters")
	}
	if len(content) > domain.MaxContentLength {
		return domain.Version{}, domain.ErrSnippetValidation.WithDetails("content exceeds 1MB")
	}
	if author == "" {
		author = e.cfg.DefaultAuthor
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.ensureLoadedLocked(ctx)

	s, ok := e.cache[id]
	if !ok {
		s = domain.NewSnippet(id)
		e.cache[id] = s
	}

	v := s.AppendVersion(content, author, e.cfg.MaxVersionHistory)
	e.commitLocalLocked(ctx)
	e.schedulePushLocked()

	if e.metrics != nil {
		e.metrics.SavesTotal.Inc()
	}
	e.logger.Debug("snippet saved",
		"id", id,
		"version", v.Number,
		"ledger_len", len(s.Versions))

	return v, nil
}

// DeleteSnippet removes the snippet from the collection.
//
// Unlike SaveSnippet this path awaits the remote push: deletion
// correctness matters more than latency. A remote failure is returned
// to the caller, but the cache and local store commits stand.
func (e *Engine) DeleteSnippet(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingArgument.WithDetails("snippet id is required")
	}

	e.mu.Lock()
	e.ensureLoadedLocked(ctx)
	if _, ok := e.cache[id]; !ok {
		e.mu.Unlock()
		return domain.ErrSnippetNotFound.WithDetails(id)
	}
	delete(e.cache, id)
	e.commitLocalLocked(ctx)
	if e.metrics != nil {
		e.metrics.DeletesTotal.Inc()
	}
	e.mu.Unlock()

	return e.pushAwait(ctx)
}

// RestoreVersion restores the snippet to the content of the version at
// index in its retained ledger. The restored content is appended as a
// fresh version so no history is lost.
//
// The remote push is awaited; its error is returned alongside the new
// version, and the local commit holds regardless.
func (e *Engine) RestoreVersion(ctx context.Context, id string, index int) (domain.Version, error) {
	if id == "" {
		return domain.Version{}, domain.ErrMissingArgument.WithDetails("snippet id is required")
	}

	e.mu.Lock()
	e.ensureLoadedLocked(ctx)
	s, ok := e.cache[id]
	if !ok {
		e.mu.Unlock()
		return domain.Version{}, domain.ErrSnippetNotFound.WithDetails(id)
	}

	v, err := s.RestoreVersion(index, e.cfg.MaxVersionHistory)
	if err != nil {
		e.mu.Unlock()
		return domain.Version{}, err
	}
	e.commitLocalLocked(ctx)
	if e.metrics != nil {
		e.metrics.RestoresTotal.Inc()
	}
	e.mu.Unlock()

	return v, e.pushAwait(ctx)
}

// ImportMerge merges incoming over the current collection at whole-
// snippet granularity: for IDs present in both, the incoming version
// history replaces the existing one entirely; existing-only IDs are
// preserved. The remote push is awaited.
func (e *Engine) ImportMerge(ctx context.Context, incoming domain.Collection) error {
	if incoming == nil {
		return domain.ErrMissingArgument.WithDetails("incoming collection is required")
	}
	for id, s := range incoming {
		if s == nil {
			return domain.ErrSnippetValidation.WithDetails("nil snippet for id " + id)
		}
		if s.ID == "" {
			s.ID = id
		}
		if err := s.Validate(); err != nil {
			return err
		}
	}

	e.mu.Lock()
	e.ensureLoadedLocked(ctx)
	e.cache.Merge(incoming)
	e.commitLocalLocked(ctx)
	if e.metrics != nil {
		e.metrics.ImportsTotal.Inc()
	}
	e.mu.Unlock()

	return e.pushAwait(ctx)
}

// ExportJSON returns the collection as plain JSON, the human-pasteable
// import/export interchange payload.
func (e *Engine) ExportJSON(ctx context.Context) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ensureLoadedLocked(ctx)
	return e.cache.EncodeJSON()
}

// Reset discards the cache; the next read repopulates it from the
// backing stores.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = nil
}

// Close waits for an in-flight remote push to finish, bounded by ctx.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	if !e.pushInFlight {
		e.mu.Unlock()
		return nil
	}
	done := e.flightDone
	e.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ensureLoadedLocked populates the cache if it is uninitialized.
// Callers must hold e.mu.
func (e *Engine) ensureLoadedLocked(ctx context.Context) {
	if e.cache == nil {
		e.populateLocked(ctx)
	}
}

// populateLocked performs the read-through population: remote preferred,
// local fallback. Callers must hold e.mu.
func (e *Engine) populateLocked(ctx context.Context) {
	rctx, cancel := context.WithTimeout(ctx, e.cfg.RemoteTimeout)
	c, err := e.remote.FetchAll(rctx)
	cancel()

	if err == nil {
		if c == nil {
			c = domain.NewCollection()
		}
		e.cache = c
		if e.metrics != nil {
			e.metrics.CacheLoads.WithLabelValues(metric.CacheSourceRemote).Inc()
			e.metrics.SnippetsTotal.Set(float64(len(e.cache)))
		}
		// Mirror the remote truth into the local store.
		if serr := e.local.Save(ctx, c.Clone()); serr != nil {
			e.logger.Warn("failed to mirror remote collection locally", "error", serr)
		}
		e.logger.Info("collection loaded from remote store", "snippets", len(c))
		return
	}

	e.logger.Warn("remote store unavailable, falling back to local store", "error", err)

	c, lerr := e.local.Load(ctx)
	if lerr != nil {
		e.logger.Error("local load failed, starting with empty collection", "error", lerr)
		c = domain.NewCollection()
	}
	if c == nil {
		c = domain.NewCollection()
	}
	e.cache = c
	if e.metrics != nil {
		e.metrics.CacheLoads.WithLabelValues(metric.CacheSourceLocal).Inc()
		e.metrics.SnippetsTotal.Set(float64(len(e.cache)))
	}
	e.logger.Info("collection loaded from local store", "snippets", len(c))
}

// commitLocalLocked writes the cache to the local store. A failure is
// logged and swallowed: the cache remains authoritative for the session.
// Callers must hold e.mu.
func (e *Engine) commitLocalLocked(ctx context.Context) {
	if err := e.local.Save(ctx, e.cache.Clone()); err != nil {
		e.logger.Error("local store commit failed", "error", err)
	}
	if e.metrics != nil {
		e.metrics.SnippetsTotal.Set(float64(len(e.cache)))
	}
}

// schedulePushLocked requests an asynchronous remote push. While one is
// in flight, at most one follow-up is queued; further requests coalesce
// into it, since the queued push will snapshot the latest cache state.
// Callers must hold e.mu.
func (e *Engine) schedulePushLocked() {
	if e.pushInFlight {
		if !e.pushPending {
			e.pushPending = true
			e.logger.Debug("remote push in flight, queued one follow-up")
		}
		if e.metrics != nil {
			e.metrics.RemotePushes.WithLabelValues(metric.PushResultDeferred).Inc()
		}
		return
	}
	e.pushInFlight = true
	e.flightDone = make(chan struct{})
	go e.runPush()
}

// runPush owns the in-flight slot: it pushes the current cache snapshot
// and keeps going while follow-ups were queued during the flight.
func (e *Engine) runPush() {
	for {
		e.mu.Lock()
		snap := e.cache.Clone()
		e.mu.Unlock()

		e.pushOnce(snap)

		e.mu.Lock()
		if !e.pushPending {
			e.pushInFlight = false
			close(e.flightDone)
			e.mu.Unlock()
			return
		}
		e.pushPending = false
		e.mu.Unlock()
	}
}

// pushAwait performs a remote push and waits for its result, honoring
// the single-flight rule: if a push is already in flight it waits for
// that flight to release the slot first.
func (e *Engine) pushAwait(ctx context.Context) error {
	for {
		e.mu.Lock()
		if !e.pushInFlight {
			e.pushInFlight = true
			e.flightDone = make(chan struct{})
			snap := e.cache.Clone()
			e.mu.Unlock()

			err := e.pushOnce(snap)

			e.mu.Lock()
			e.pushInFlight = false
			pending := e.pushPending
			e.pushPending = false
			close(e.flightDone)
			if pending {
				e.schedulePushLocked()
			}
			e.mu.Unlock()

			if err != nil {
				return domain.ErrRemoteWriteFailed.WithCause(err)
			}
			return nil
		}
		done := e.flightDone
		e.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return domain.ErrRemoteWriteFailed.WithCause(ctx.Err())
		}
	}
}

// pushOnce performs one bounded remote push and records its outcome.
func (e *Engine) pushOnce(snap domain.Collection) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.RemoteTimeout)
	err := e.remote.PushAll(ctx, snap)
	cancel()

	took := time.Since(start)
	if err != nil {
		e.logger.Error("remote push failed", "error", err, "took", took)
		if e.metrics != nil {
			e.metrics.RemotePushes.WithLabelValues(metric.PushResultFailed).Inc()
		}
	} else {
		e.logger.Debug("remote push completed", "snippets", len(snap), "took", took)
		if e.metrics != nil {
			e.metrics.RemotePushes.WithLabelValues(metric.PushResultOK).Inc()
		}
	}

	select {
	case e.outcomes <- PushOutcome{Err: err, Duration: took}:
	default:
	}

	return err
}
