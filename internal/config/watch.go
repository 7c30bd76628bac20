package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadSettle is how long a config file must stay quiet before it is
// re-read. Editors often write a file in several steps.
const reloadSettle = 100 * time.Millisecond

// Watcher re-reads a configuration file whenever it changes on disk and
// delivers the validated result on Configs. Invalid edits go to Errors and
// leave the previous config in effect.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Configs chan Config
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path. The parent directory is watched so that
// rename-and-replace saves are seen.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		Configs: make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Configs)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	// settle is nil while no reload is pending; a nil channel never fires.
	var settle <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			settle = time.After(reloadSettle)
		case <-settle:
			settle = nil
			cfg, err := LoadFile(w.path)
			if err != nil {
				w.offerErr(err)
				continue
			}
			w.offerConfig(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.offerErr(err)
		case <-w.closeCh:
			return
		}
	}
}

// offerConfig replaces any undelivered config with the newest one.
func (w *Watcher) offerConfig(cfg Config) {
	select {
	case <-w.Configs:
	default:
	}
	select {
	case w.Configs <- cfg:
	default:
	}
}

func (w *Watcher) offerErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
