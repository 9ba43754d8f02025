package fieldset

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/faciam-dev/formfields/internal/config"
	"github.com/faciam-dev/formfields/pkg/formfield"
	"github.com/faciam-dev/formfields/pkg/metrics"
)

// Store watches a field set file and exposes the current catalog. The user
// registry is fixed at construction; a changed users section needs a restart.
type Store struct {
	path   string
	lookup formfield.UserLookup
	logger *zap.SugaredLogger
	val    atomic.Pointer[formfield.Catalog]
}

// NewStore loads the field set from path.
func NewStore(path string, lookup formfield.UserLookup, logger *zap.SugaredLogger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Store{path: filepath.Clean(path), lookup: lookup, logger: logger}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Catalog returns the current catalog.
func (s *Store) Catalog() *formfield.Catalog {
	return s.val.Load()
}

func (s *Store) load() error {
	f, err := config.Load(s.path)
	if err != nil {
		return err
	}
	c, err := Build(f, s.lookup)
	if err != nil {
		return err
	}
	s.val.Store(c)
	metrics.SetFieldCounts(countKinds(c))
	return nil
}

// Start watching the file for changes. A broken file keeps the previous
// catalog in place.
func (s *Store) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return err
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case ev := <-watcher.Events:
				if filepath.Clean(ev.Name) != s.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if err := s.load(); err != nil {
					metrics.ConfigReloads.WithLabelValues("error").Inc()
					s.logger.Warnw("reload field set", "path", s.path, "err", err)
				} else {
					metrics.ConfigReloads.WithLabelValues("ok").Inc()
					s.logger.Infow("field set reloaded", "path", s.path)
				}
			case <-ctx.Done():
				return
			case err := <-watcher.Errors:
				if err != nil {
					s.logger.Warnw("field set watch error", "err", err)
				}
			}
		}
	}()
	return nil
}

func countKinds(c *formfield.Catalog) map[string]int {
	counts := map[string]int{}
	for _, n := range c.Names() {
		f, _ := c.Get(n)
		counts[f.Kind]++
	}
	return counts
}
