// Package watch re-runs an analysis when language files under a world
// directory change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/edulang/internal/langfile"
)

// DefaultDebounce is the quiet period before a batch of changes triggers the
// handler.
const DefaultDebounce = 500 * time.Millisecond

// Handler receives the world-relative paths changed since the last call.
type Handler func(ctx context.Context, changed []string) error

// Options configures a watch.
type Options struct {
	Debounce time.Duration
}

// Run watches root recursively until ctx is done. Changes to .lang files are
// batched for opt.Debounce and then passed to fn. Calls to fn never overlap;
// a handler error is logged and watching continues.
func Run(ctx context.Context, root string, opt Options, fn Handler) error {
	if fn == nil {
		return errors.New("watch handler is nil")
	}
	if opt.Debounce <= 0 {
		opt.Debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	dirs, err := addTree(w, root)
	if err != nil {
		return err
	}
	log.Info().Str("root", root).Int("directories", dirs).Dur("debounce", opt.Debounce).Msg("watching for language file changes")

	pending := map[string]struct{}{}
	timer := time.NewTimer(opt.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if n, err := addTree(w, ev.Name); err == nil && n > 0 {
					log.Debug().Str("path", ev.Name).Int("directories", n).Msg("watching new directory")
				}
			}
			rel, ok := relevant(root, ev)
			if !ok {
				continue
			}
			log.Debug().Str("path", rel).Str("op", ev.Op.String()).Msg("language file changed")
			pending[rel] = struct{}{}
			timer.Reset(opt.Debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = map[string]struct{}{}
			if err := fn(ctx, changed); err != nil {
				log.Warn().Err(err).Strs("changed", changed).Msg("re-analysis failed")
			}
		}
	}
}

// addTree adds dir and every non-hidden subdirectory to w. It returns the
// number of directories added; a path that is not a directory adds none.
func addTree(w *fsnotify.Watcher, dir string) (int, error) {
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("failed to watch directory")
			return nil
		}
		n++
		return nil
	})
	if err != nil {
		return n, fmt.Errorf("watch %s: %w", dir, err)
	}
	return n, nil
}

// relevant reports whether ev touches a .lang file under root and returns its
// slash-separated relative path.
func relevant(root string, ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	rel, err := filepath.Rel(root, ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if !langfile.IsLangPath(rel) {
		return "", false
	}
	return rel, true
}
