package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/termdesk/core"
)

// debounceDelay coalesces the write bursts editors produce on save
const debounceDelay = 200 * time.Millisecond

// Watcher is a service that re-reads the config file on change and
// hands the result to a callback. Parse failures are reported with the
// previous config left running.
type Watcher struct {
	path     string
	onChange func(Config, error)

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for path. onChange runs on the watcher
// goroutine; keep it cheap (post an op, do not render).
func NewWatcher(path string, onChange func(Config, error)) *Watcher {
	return &Watcher{
		path:     path,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Name implements service.Service
func (w *Watcher) Name() string { return "config-watcher" }

// Dependencies implements service.Service
func (w *Watcher) Dependencies() []string { return nil }

// Init opens the fsnotify watcher on the config file's directory.
// Watching the directory instead of the file survives editors that
// replace the file on save. A directory that does not exist yet means
// there is nothing to watch; Load already treats the file as optional,
// so the desktop runs on defaults without live reload.
func (w *Watcher) Init(args ...any) error {
	if w.path == "" {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "config: %s does not exist, live reload disabled\n", dir)
			return nil
		}
		return fmt.Errorf("config watcher %s: %w", dir, err)
	}
	w.watcher = fw
	return nil
}

// Start launches the watch loop
func (w *Watcher) Start() error {
	if w.watcher == nil {
		close(w.doneCh)
		return nil
	}
	core.Go(w.loop)
	return nil
}

// Stop halts the watch loop
func (w *Watcher) Stop() error {
	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}
	if w.watcher != nil {
		<-w.doneCh
		w.watcher.Close()
		w.watcher = nil
	}
	return nil
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	target, _ := filepath.Abs(w.path)
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			abs, _ := filepath.Abs(ev.Name)
			if abs != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerCh = timer.C
			} else {
				timer.Reset(debounceDelay)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			cfg, err := Load(w.path)
			w.onChange(cfg, err)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next save still fires
		}
	}
}
