package capture

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yndnr/snipsync-go/internal/core/domain"
	"github.com/yndnr/snipsync-go/internal/telemetry/metric"
)

// DefaultDelay is the debounce quiet window.
const DefaultDelay = 2000 * time.Millisecond

// Saver receives the coalesced saves. *service.Engine satisfies it.
type Saver interface {
	SaveSnippet(ctx context.Context, id, content, author string) (domain.Version, error)
}

// Config configures a Capture.
type Config struct {
	// Enabled gates the whole capture. When false, Notify is a no-op.
	Enabled bool

	// Delay is the debounce quiet window. Zero means DefaultDelay.
	Delay time.Duration

	// Author is attributed to every captured save.
	Author string
}

// region is one watched content region with its pending debounce state.
type region struct {
	snippetID string
	content   string
	timer     *time.Timer
	pending   bool
}

// Capture owns the watched regions and their debounce timers.
type Capture struct {
	cfg     Config
	saver   Saver
	logger  *slog.Logger
	metrics *metric.Registry

	mu      sync.Mutex
	regions map[string]*region
	closed  bool
	flushWG sync.WaitGroup
}

// Option configures a Capture.
type Option func(*Capture)

// WithLogger sets the capture logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Capture) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(c *Capture) {
		c.metrics = m
	}
}

// New creates a Capture delivering saves to saver.
func New(cfg Config, saver Saver, opts ...Option) *Capture {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	c := &Capture{
		cfg:     cfg,
		saver:   saver,
		logger:  slog.Default(),
		regions: make(map[string]*region),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Watch registers a region under the given snippet ID. Watching an
// already-watched region re-binds it to the new snippet ID.
func (c *Capture) Watch(regionID, snippetID string) error {
	if regionID == "" {
		return domain.ErrMissingArgument.WithDetails("region id is required")
	}
	if snippetID == "" {
		return domain.ErrMissingArgument.WithDetails("snippet id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrInternal.WithDetails("capture is closed")
	}

	if r, ok := c.regions[regionID]; ok {
		r.snippetID = snippetID
	} else {
		c.regions[regionID] = &region{snippetID: snippetID}
	}
	if c.metrics != nil {
		c.metrics.RegionsWatched.Set(float64(len(c.regions)))
	}
	c.logger.Debug("watching region", "region", regionID, "snippet", snippetID)
	return nil
}

// Unwatch removes a region and cancels any pending save for it.
func (c *Capture) Unwatch(regionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.regions[regionID]
	if !ok {
		return
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	if r.pending {
		r.pending = false
		c.flushWG.Done()
	}
	delete(c.regions, regionID)
	if c.metrics != nil {
		c.metrics.RegionsWatched.Set(float64(len(c.regions)))
	}
	c.logger.Debug("stopped watching region", "region", regionID)
}

// Notify records a mutation on a region. The save fires once the quiet
// window elapses without a further Notify; each Notify restarts the
// window and replaces the pending content.
func (c *Capture) Notify(regionID, content string) {
	if !c.cfg.Enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	r, ok := c.regions[regionID]
	if !ok {
		c.logger.Debug("change on unwatched region ignored", "region", regionID)
		return
	}

	r.content = content
	if r.timer != nil {
		r.timer.Stop()
	}
	if !r.pending {
		r.pending = true
		c.flushWG.Add(1)
	}
	r.timer = time.AfterFunc(c.cfg.Delay, func() {
		c.flush(regionID)
	})
}

// Close cancels all pending timers. Saves whose timers already fired
// are allowed to finish.
func (c *Capture) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for _, r := range c.regions {
		if r.timer != nil && r.timer.Stop() && r.pending {
			r.pending = false
			c.flushWG.Done()
		}
	}
	c.mu.Unlock()

	c.flushWG.Wait()
}

// flush delivers the coalesced save for one region.
func (c *Capture) flush(regionID string) {
	c.mu.Lock()
	r, ok := c.regions[regionID]
	if !ok || !r.pending {
		c.mu.Unlock()
		return
	}
	r.pending = false
	snippetID := r.snippetID
	content := r.content
	c.mu.Unlock()

	defer c.flushWG.Done()

	if c.metrics != nil {
		c.metrics.DebounceFlushes.Inc()
	}

	if _, err := c.saver.SaveSnippet(context.Background(), snippetID, content, c.cfg.Author); err != nil {
		c.logger.Error("debounced save failed",
			"region", regionID,
			"snippet", snippetID,
			"error", err)
		return
	}
	c.logger.Debug("debounced save delivered",
		"region", regionID,
		"snippet", snippetID,
		"bytes", len(content))
}
