package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuiet is how long a file must go unmodified before it is reported.
const DefaultQuiet = 100 * time.Millisecond

// Watcher reports config and macro files once they stop changing. Every
// write to a path restarts that path's timer, so a truncate followed by a
// write yields one event after the final write. Events carries the path; the
// host drains it on its update tick.
type Watcher struct {
	Events chan string
	Errors chan error

	fs    *fsnotify.Watcher
	quiet time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
	sends   sync.WaitGroup

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	return NewWatcherQuiet(DefaultQuiet, dirs...)
}

// NewWatcherQuiet is NewWatcher with a custom settle time.
func NewWatcherQuiet(quiet time.Duration, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		fs:      fw,
		quiet:   quiet,
		pending: make(map[string]*time.Timer),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		for path, t := range w.pending {
			t.Stop()
			delete(w.pending, path)
		}
		w.mu.Unlock()

		close(w.stop)
		err = w.fs.Close()
		<-w.done
		w.sends.Wait()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if isConfigFile(ev.Name) || IsMacroFile(ev.Name) {
				w.touch(ev.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.stop:
			return
		}
	}
}

// touch (re)arms the timer for path.
func (w *Watcher) touch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(w.quiet, func() { w.settle(path, t) })
	w.pending[path] = t
}

// settle fires when t expires. A timer replaced by a later write is stale
// and reports nothing.
func (w *Watcher) settle(path string, t *time.Timer) {
	w.mu.Lock()
	if w.closed || w.pending[path] != t {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	w.sends.Add(1)
	w.mu.Unlock()

	defer w.sends.Done()
	select {
	case w.Events <- path:
	case <-w.stop:
	}
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// IsMacroFile reports whether path looks like a tengo macro.
func IsMacroFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
