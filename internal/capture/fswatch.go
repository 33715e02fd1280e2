package capture

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/yndnr/snipsync-go/internal/core/domain"
)

// FileSource feeds a Capture from filesystem events. Each watched
// file is a region whose ID is its absolute path.
type FileSource struct {
	capture *Capture
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	mu    sync.Mutex
	files map[string]string // absolute path -> snippet ID

	done     chan struct{}
	loopDone chan struct{}
}

// NewFileSource creates a file-backed change source for capture.
func NewFileSource(capture *Capture, logger *slog.Logger) (*FileSource, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, domain.ErrInternal.WithDetails("create fs watcher").WithCause(err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		capture:  capture,
		watcher:  w,
		logger:   logger,
		files:    make(map[string]string),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}, nil
}

// WatchFile registers path as a region saved under snippetID.
func (f *FileSource) WatchFile(path, snippetID string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.ErrInvalidArgument.WithDetails("resolve path " + path).WithCause(err)
	}

	if err := f.capture.Watch(abs, snippetID); err != nil {
		return err
	}

	// Watch the directory, not the file, to catch vim-style renames.
	if err := f.watcher.Add(filepath.Dir(abs)); err != nil {
		f.capture.Unwatch(abs)
		return domain.ErrStorage.WithDetails("watch directory").WithCause(err)
	}

	f.mu.Lock()
	f.files[abs] = snippetID
	f.mu.Unlock()

	f.logger.Debug("watching file for changes", "path", abs, "snippet", snippetID)
	return nil
}

// UnwatchFile stops observing path.
func (f *FileSource) UnwatchFile(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	f.mu.Lock()
	delete(f.files, abs)
	f.mu.Unlock()

	f.capture.Unwatch(abs)
}

// Start runs the event loop until Stop is called.
func (f *FileSource) Start() {
	defer close(f.loopDone)

	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				f.handleEvent(event.Name)
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.logger.Error("file watcher error", "error", err)
		case <-f.done:
			return
		}
	}
}

// StartAsync runs the event loop in a goroutine.
func (f *FileSource) StartAsync() {
	go f.Start()
}

// Stop shuts down the event loop and the underlying watcher.
func (f *FileSource) Stop() error {
	close(f.done)
	err := f.watcher.Close()
	<-f.loopDone
	return err
}

func (f *FileSource) handleEvent(name string) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return
	}

	f.mu.Lock()
	_, watched := f.files[abs]
	f.mu.Unlock()
	if !watched {
		return
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		f.logger.Warn("failed to read changed file", "path", abs, "error", err)
		return
	}
	f.capture.Notify(abs, string(content))
}
