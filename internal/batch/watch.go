package batch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/normalmap"
	"github.com/gogpu/normalmap/internal/asset"
)

// DefaultDebounce is how long Watch waits for changes to settle.
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce is the quiet period after the last change before a re-run.
	// Zero uses DefaultDebounce.
	Debounce time.Duration

	// Logger receives watch logs. Nil uses normalmap.Logger().
	Logger *slog.Logger
}

// Watch calls run once, then again whenever the manifest at manifestPath
// or one of its base color textures changes. Bursts of changes within the
// debounce period cause one run.
//
// A rewrite of the manifest that leaves its content as it was after the
// last run is ignored, so a run may save the manifest without triggering
// itself. Files other than the manifest and its base color textures, such
// as generated normal maps, are ignored.
//
// Errors from run are logged and watching continues. Watch returns
// ctx.Err() when ctx is canceled.
func Watch(ctx context.Context, manifestPath string, run func(context.Context) error, opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = normalmap.Logger()
	}

	manifestPath, err := filepath.Abs(manifestPath)
	if err != nil {
		return fmt.Errorf("batch: watch: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("batch: watch: %w", err)
	}
	defer func() { _ = w.Close() }()

	st := &watchState{
		watcher:  w,
		manifest: manifestPath,
		dirs:     make(map[string]bool),
		inputs:   make(map[string]bool),
		log:      log,
	}

	cycle := func() {
		if err := run(ctx); err != nil && ctx.Err() == nil {
			log.Warn("batch run failed", "err", err)
		}
		st.refresh()
	}

	cycle()
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Info("watching for changes", "manifest", manifestPath, "inputs", len(st.inputs))

	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if st.relevant(ev) {
				log.Debug("input changed", "path", ev.Name, "op", ev.Op.String())
				timer.Reset(opts.Debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)

		case <-timer.C:
			cycle()
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
}

// watchState tracks which files can trigger a run.
type watchState struct {
	watcher  *fsnotify.Watcher
	manifest string
	snapshot []byte
	dirs     map[string]bool
	inputs   map[string]bool
	log      *slog.Logger
}

// refresh records the manifest content and re-reads its texture list.
func (s *watchState) refresh() {
	s.addDir(filepath.Dir(s.manifest))

	data, err := os.ReadFile(s.manifest)
	if err != nil {
		s.log.Warn("read manifest", "err", err)
		s.snapshot = nil
		return
	}
	s.snapshot = data

	m, err := asset.ParseManifest(data, filepath.Dir(s.manifest))
	if err != nil {
		// Keep the previous inputs until the manifest parses again.
		s.log.Warn("parse manifest", "err", err)
		return
	}

	s.inputs = make(map[string]bool)
	for _, p := range m.Textures() {
		s.inputs[p] = true
		s.addDir(filepath.Dir(p))
	}
}

func (s *watchState) addDir(dir string) {
	if s.dirs[dir] {
		return
	}
	if err := s.watcher.Add(dir); err != nil {
		s.log.Warn("watch directory", "dir", dir, "err", err)
		return
	}
	s.dirs[dir] = true
}

// relevant reports whether ev should schedule a run.
func (s *watchState) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)

	if name == s.manifest {
		data, err := os.ReadFile(name)
		if err != nil {
			// Removed or mid-rename; the following create decides.
			return false
		}
		return !bytes.Equal(data, s.snapshot)
	}
	return s.inputs[name]
}
