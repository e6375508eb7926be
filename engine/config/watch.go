package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses the burst of events editors produce for a single save.
const debounce = 100 * time.Millisecond

// Watcher reloads a configuration file whenever it changes on disk. A successfully reloaded
// and validated Config is published on Updates; a failed reload is published on Errors and
// the caller keeps its previous configuration.
type Watcher struct {
	Updates <-chan *Config
	Errors  <-chan error

	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	updates chan *Config
	errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The containing directory is watched so that editors which
// replace the file on save are followed.
//
// Parameters:
//   - path: the configuration file to watch
//   - logger: receives reload notices; nil uses slog.Default()
//
// Returns:
//   - *Watcher: the running watcher; Close it when done
//   - error: if the file system watcher cannot be created
func Watch(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:    filepath.Clean(path),
		logger:  logger,
		watcher: fw,
		updates: make(chan *Config, 1),
		errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	w.Updates = w.updates
	w.Errors = w.errors
	go w.run()
	return w, nil
}

// Close stops the watcher and closes the Updates and Errors channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		<-w.done
		err = w.watcher.Close()
		close(w.updates)
		close(w.errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publishError(err)
		case <-timer.C:
			w.reload()
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", "path", w.path, "error", err)
		w.publishError(err)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)

	// Only the newest configuration matters to a slow consumer.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	case <-w.closeCh:
	}
}

func (w *Watcher) publishError(err error) {
	select {
	case w.errors <- err:
	case <-w.closeCh:
	default:
		w.logger.Warn("config watcher error dropped", "error", err)
	}
}
