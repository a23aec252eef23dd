package monitor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/flowave-io/mathflow/pkg/log"
	"github.com/fsnotify/fsnotify"
)

// Debounce is how long the watcher waits after the last change before it
// signals, so an editor's write-rename-chmod burst produces one refresh.
const Debounce = 75 * time.Millisecond

// WatchFile signals refreshCh whenever the file at path is written, created
// or replaced. The parent directory is watched rather than the file so that
// editors which save by renaming a temp file are still noticed. Signals are
// dropped while refreshCh is full. The watcher stops when ctx is done.
func WatchFile(ctx context.Context, path string, refreshCh chan<- struct{}) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	log.Debug("watching", abs)
	go loop(ctx, w, abs, refreshCh)
	return nil
}

func loop(ctx context.Context, w *fsnotify.Watcher, target string, refreshCh chan<- struct{}) {
	defer w.Close()
	timer := time.NewTimer(Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || !relevant(ev.Op) {
				continue
			}
			timer.Reset(Debounce)
		case <-timer.C:
			select {
			case refreshCh <- struct{}{}:
			default:
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("[watch] error:", err)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
