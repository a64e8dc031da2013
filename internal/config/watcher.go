package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/tablestorm/internal/logging"
)

// Watcher reloads the config file on change and delivers the result to a
// callback. Reload failures keep the previous configuration.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	log     *logging.Logger
	done    chan struct{}
}

// Watch starts watching path. onChange runs on the watcher goroutine for
// every successful reload.
func Watch(path string, log *logging.Logger, onChange func(Config)) (*Watcher, error) {
	if log == nil {
		log = logging.Nop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors commonly replace files on save, which
	// drops the watch on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close() //nolint:errcheck // already failing
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		path:    path,
		log:     log,
		done:    make(chan struct{}),
	}
	go w.run(onChange)
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run(onChange func(Config)) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.log.Warnf("config reload failed: %v", err)
				continue
			}
			onChange(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnf("config watcher: %v", err)
		}
	}
}
