package rules

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchPersonal loads the personal rules file at path and reinstalls it via
// apply on every change, until ctx is cancelled.
//
// The parent directory is watched rather than the file itself: most editors
// save by writing a temp file and renaming it over the original, which
// replaces the watched inode. Bursts of events within the debounce window
// collapse into one reload.
func WatchPersonal(ctx context.Context, path string, apply func(text string)) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return err
	}

	loadPersonalFile(path, apply)

	go func() {
		defer w.Close()
		const debounce = 200 * time.Millisecond
		var timer *time.Timer
		var timerC <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
					timerC = timer.C
				} else {
					timer.Reset(debounce)
				}
			case <-timerC:
				timer = nil
				timerC = nil
				loadPersonalFile(path, apply)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("rules: personal rules watcher: %v", err)
			}
		}
	}()
	return nil
}

func loadPersonalFile(path string, apply func(text string)) {
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("rules: read personal rules %s: %v", path, err)
		}
		return
	}
	apply(string(b))
}
