package script

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch
// events.
const DefaultWatchDebounce = 500 * time.Millisecond

// Watcher monitors a script file and triggers a reload callback when it
// changes. Events are debounced so editors that write in bursts cause a
// single reload.
//
// A Watcher is one-shot: Stop closes the underlying file watcher, and a
// stopped Watcher cannot be restarted. Create a new one instead.
type Watcher struct {
	watcher   *fsnotify.Watcher
	filePath  string
	debounce  time.Duration
	onReload  func() error
	onError   func(error)
	stopCh    chan struct{}
	stoppedCh chan struct{}
	mu        sync.Mutex
	running   bool
	stopped   bool
}

// NewWatcher creates a watcher for the given script file. onReload runs
// when the file changes (after debouncing); onError receives watch
// failures and reload errors. A debounce of zero or less uses
// DefaultWatchDebounce.
func NewWatcher(filePath string, debounce time.Duration, onReload func() error, onError func(error)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	// Watch the directory containing the script, not the file itself.
	// This handles editors that atomically rename files (vim, emacs, etc.).
	dir := filepath.Dir(filePath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	return &Watcher{
		watcher:   watcher,
		filePath:  filePath,
		debounce:  debounce,
		onReload:  onReload,
		onError:   onError,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}, nil
}

// Start begins watching for file changes in a goroutine. Starting an
// already-running or stopped watcher is a no-op.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.stopped {
		return
	}
	w.running = true

	go w.watchLoop()
}

// Stop stops the file watcher and waits for cleanup. Further Stop and
// Start calls are no-ops.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.mu.Unlock()

	close(w.stopCh)
	<-w.stoppedCh
}

// watchLoop is the main event loop for file watching with debouncing.
func (w *Watcher) watchLoop() {
	defer close(w.stoppedCh)
	defer w.watcher.Close()

	absPath, _ := filepath.Abs(w.filePath)
	baseName := filepath.Base(w.filePath)

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only events for the watched script count.
			eventBase := filepath.Base(event.Name)
			eventAbs, _ := filepath.Abs(event.Name)
			if eventBase != baseName && eventAbs != absPath {
				continue
			}

			// Write, create, and rename cover atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounce)
			debounceCh = debounceTimer.C

		case <-debounceCh:
			if w.onReload != nil {
				if err := w.onReload(); err != nil && w.onError != nil {
					w.onError(err)
				}
			}
			debounceTimer = nil
			debounceCh = nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}
