package dataloader

import (
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/prometheus"
)

// Watcher reloads the dataset when files under the data directory change.
// Events are debounced so a multi-file sync triggers one reload.  A failed
// reload keeps the previous snapshot in place.
type Watcher struct {
	loader   *Loader
	store    *Store
	metrics  *prometheus.Metrics
	logger   logging.Logger
	debounce time.Duration

	fs       *fsnotify.Watcher
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewWatcher starts watching the loader's directory.  metrics may be nil.
func NewWatcher(loader *Loader, store *Store, metrics *prometheus.Metrics, debounce time.Duration, logger logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(loader.dir); err != nil {
		fs.Close()
		return nil, err
	}
	w := &Watcher{
		loader:   loader,
		store:    store,
		metrics:  metrics,
		logger:   logger.Named("watcher"),
		debounce: debounce,
		fs:       fs,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.stopOnce.Do(func() { close(w.stop) })
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("filesystem watch error", logging.Err(err))
		case <-fire:
			timer = nil
			fire = nil
			w.reload()
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".json") {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

func (w *Watcher) reload() {
	snap, err := w.loader.Load()
	if err != nil {
		w.logger.Error("dataset reload failed, keeping previous snapshot", logging.Err(err))
		return
	}
	w.store.Swap(snap)
	if w.metrics != nil {
		w.metrics.IncDatasetReload()
		for id, lookup := range snap.Lookups {
			w.metrics.SetDatasetEntries(string(id), len(lookup))
		}
	}
	w.logger.Info("dataset reloaded", logging.Int("taxonomies", len(snap.Lookups)))
}
