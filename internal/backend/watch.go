package backend

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"azimuth/internal/logging"
)

const watchCoalesceWindow = 200 * time.Millisecond

// Watch observes the tree rooted at path and delivers a payload-less signal
// whenever anything under it changes. Bursts of filesystem events are
// coalesced into a single signal. New directories are added to the watch as
// they appear. The returned function stops the watcher.
func (s *Service) Watch(path string, onChange func()) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addWatchesRecursive(watcher, path); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if shouldIgnoreEvent(event) {
					continue
				}
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if !skipDirName(filepath.Base(event.Name)) {
							_ = addWatchesRecursive(watcher, event.Name)
						}
					}
				}
				if timer == nil {
					timer = time.NewTimer(watchCoalesceWindow)
					fire = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(watchCoalesceWindow)
				}
			case <-fire:
				timer = nil
				fire = nil
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("watch error", logging.F("error", err))
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		_ = watcher.Close()
	}, nil
}

func addWatchesRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && skipDirName(entry.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func shouldIgnoreEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	// Settings writes and atomic-write temp files would otherwise re-trigger
	// a rescan for every save.
	if name == settingsFileName || strings.HasPrefix(name, ".tmp-") {
		return true
	}
	return event.Op == fsnotify.Chmod
}
