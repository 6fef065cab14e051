package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// debounceWindow coalesces the burst of filesystem events most editors
// emit on save into a single reload.
const debounceWindow = 250 * time.Millisecond

// Watcher reloads the configuration file when it changes on disk and
// reports each reload through the callback.
type Watcher struct {
	path     string
	log      *logrus.Logger
	onChange func()
	fsw      *fsnotify.Watcher
	done     chan struct{}
}

// Watch starts watching path. onChange fires from the watcher goroutine
// after the debounce window closes; the caller is responsible for
// re-reading the file.
//
// The parent directory is watched rather than the file itself because
// editors that save via rename-replace would otherwise detach the watch.
func Watch(path string, log *logrus.Logger, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		path:     path,
		log:      log,
		onChange: onChange,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time
	base := filepath.Base(w.path)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceWindow)
			}
		case <-fire:
			timer = nil
			fire = nil
			w.log.WithField("path", w.path).Info("configuration changed, reloading")
			w.onChange()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("config watcher error")
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
