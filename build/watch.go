package build

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wippyai/doccorpus/errors"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Watch builds once, then rebuilds whenever a matching container under
// opts.Dir is created, written or removed, after opts.Debounce has passed
// without further changes. onBuild receives every result. Watch returns nil
// once ctx is done.
func Watch(ctx context.Context, opts Options, onBuild func(*Report, error)) error {
	m, err := newMatcher(opts.Include, opts.Exclude)
	if err != nil {
		return err
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.IO(errors.PhaseBuild, "create watcher", err)
	}
	defer w.Close()
	if err := addTree(w, m, opts.Dir, opts.Dir); err != nil {
		return err
	}

	rebuild := func() {
		paths, err := m.walk(opts.Dir)
		if err != nil {
			onBuild(nil, err)
			return
		}
		onBuild(RunPaths(ctx, paths, opts))
	}
	rebuild()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					if rel, err := filepath.Rel(opts.Dir, ev.Name); err == nil && m.skipDir(filepath.ToSlash(rel)) {
						continue
					}
					if err := addTree(w, m, opts.Dir, ev.Name); err != nil {
						Logger().Warn("watch directory", zap.String("dir", ev.Name), zap.Error(err))
					}
					// containers may have landed before the directory was watched
					timer.Reset(debounce)
					continue
				}
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			rel, err := filepath.Rel(opts.Dir, ev.Name)
			if err != nil || !m.file(filepath.ToSlash(rel)) {
				continue
			}
			Logger().Debug("unit changed", zap.String("unit", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			Logger().Warn("watcher error", zap.Error(err))

		case <-timer.C:
			rebuild()
		}
	}
}

// addTree watches dir and every subdirectory not excluded. Exclusions are
// matched relative to root.
func addTree(w *fsnotify.Watcher, m *matcher, root, dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(root, path); err == nil && rel != "." && m.skipDir(filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
	if err != nil {
		return errors.IO(errors.PhaseBuild, "watch "+dir, err)
	}
	return nil
}
