package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/snipsync-go/internal/core/domain"
)

// collectionKey is the single key under which the collection document
// lives. The store holds one document, not one key per snippet, so a
// save is a single atomic write.
const collectionKey = "snipsync/collection"

const (
	// DefaultGCInterval is how often the Badger value log GC runs.
	DefaultGCInterval = 10 * time.Minute

	// gcThreshold is the ratio of discardable data that triggers a
	// value log rewrite.
	gcThreshold = 0.5
)

// Config configures the local store.
type Config struct {
	// Dir is the Badger data directory.
	Dir string

	// SyncWrites forces fsync on every write.
	SyncWrites bool

	// GCInterval is the value log GC period. Zero means DefaultGCInterval.
	GCInterval time.Duration

	// Passphrase, when non-empty, seals the stored document at rest.
	Passphrase []byte
}

// Store is a Badger-backed durable store for the snippet collection.
type Store struct {
	db     *badger.DB
	cfg    Config
	logger *slog.Logger

	metricLSMSize  prometheus.Gauge
	metricVlogSize prometheus.Gauge

	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

// Open opens (or creates) the store at cfg.Dir.
func Open(cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("storage: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.GCInterval <= 0 {
		cfg.GCInterval = DefaultGCInterval
	}

	opts := badger.DefaultOptions(cfg.Dir)
	opts.Logger = &badgerLogger{logger: logger}
	opts.SyncWrites = cfg.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open db: %w", err)
	}

	s := &Store{
		db:     db,
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	go s.gcLoop()

	logger.Info("local store opened",
		"dir", cfg.Dir,
		"sync_writes", cfg.SyncWrites,
		"sealed", len(cfg.Passphrase) > 0)

	return s, nil
}

// Load reads the collection document. A missing key yields an empty
// collection; a malformed or unsealable document is logged and treated
// as empty rather than blocking startup.
func (s *Store) Load(_ context.Context) (domain.Collection, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(collectionKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.NewCollection(), nil
	}
	if err != nil {
		return nil, domain.ErrStorage.WithDetails("load collection").WithCause(err)
	}

	if isSealed(raw) {
		raw, err = unseal(raw, s.cfg.Passphrase)
		if err != nil {
			s.logger.Error("failed to unseal stored collection, starting empty", "error", err)
			return domain.NewCollection(), nil
		}
	}

	c, err := domain.DecodeCollectionJSON(raw)
	if err != nil {
		s.logger.Error("stored collection is malformed, starting empty", "error", err)
		return domain.NewCollection(), nil
	}
	return c, nil
}

// Save writes the collection document, sealing it first when a
// passphrase is configured.
func (s *Store) Save(_ context.Context, c domain.Collection) error {
	data, err := c.EncodeJSON()
	if err != nil {
		return domain.ErrStorage.WithDetails("encode collection").WithCause(err)
	}

	if len(s.cfg.Passphrase) > 0 {
		data, err = seal(data, s.cfg.Passphrase)
		if err != nil {
			return domain.ErrStorage.WithDetails("seal collection").WithCause(err)
		}
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(collectionKey), data)
	})
	if err != nil {
		return domain.ErrStorage.WithDetails("write collection").WithCause(err)
	}
	return nil
}

// RegisterMetrics registers Badger size gauges with the registry and
// starts the periodic updater. Call at most once.
func (s *Store) RegisterMetrics(registry *prometheus.Registry) *Store {
	s.metricLSMSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "snipsync",
		Subsystem: "badger",
		Name:      "lsm_size_bytes",
		Help:      "Badger LSM tree size in bytes",
	})
	s.metricVlogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "snipsync",
		Subsystem: "badger",
		Name:      "value_log_size_bytes",
		Help:      "Badger value log size in bytes",
	})

	registry.MustRegister(s.metricLSMSize, s.metricVlogSize)

	go s.metricsLoop()
	return s
}

// Close stops background loops and closes the database. Calling Close
// more than once is a no-op.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh

		if cerr := s.db.Close(); cerr != nil {
			err = fmt.Errorf("storage: close db: %w", cerr)
			return
		}
		s.logger.Info("local store closed")
	})
	return err
}

func (s *Store) metricsLoop() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lsm, vlog := s.db.Size()
			s.metricLSMSize.Set(float64(lsm))
			s.metricVlogSize.Set(float64(vlog))
		case <-s.stopCh:
			return
		}
	}
}

func (s *Store) gcLoop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for {
				err := s.db.RunValueLogGC(gcThreshold)
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					s.logger.Error("value log gc failed", "error", err)
					break
				}
			}
		case <-s.stopCh:
			return
		}
	}
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
