package script

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.lua")
	if err := os.WriteFile(path, []byte(`canvas_clear()`), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 1)
	w, err := NewWatcher(path, 50*time.Millisecond, func() error {
		select {
		case reloaded <- struct{}{}:
		default:
		}
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`canvas_save()`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("reload callback never fired")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.lua")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 1)
	w, err := NewWatcher(path, 50*time.Millisecond, func() error {
		reloaded <- struct{}{}
		return nil
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	other := filepath.Join(dir, "unrelated.txt")
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Fatal("reload fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherReloadErrorReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.lua")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	errCh := make(chan error, 1)
	w, err := NewWatcher(path, 50*time.Millisecond,
		func() error { return os.ErrInvalid },
		func(err error) {
			select {
			case errCh <- err:
			default:
			}
		})
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-errCh:
		if got != os.ErrInvalid {
			t.Errorf("error = %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error callback never fired")
	}
}

func TestWatcherStopIdempotentStart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.lua")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 0, func() error { return nil }, nil)
	if err != nil {
		t.Fatal(err)
	}
	if w.debounce != DefaultWatchDebounce {
		t.Errorf("debounce = %v, want default", w.debounce)
	}
	w.Start()
	w.Start() // second Start is a no-op
	w.Stop()
	w.Stop() // second Stop is a no-op
}

func TestWatcherStartAfterStopIsNoOp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.lua")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 50*time.Millisecond, func() error { return nil }, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	w.Stop()

	// The watcher is one-shot: restarting must not relaunch the loop
	// against the closed channels and watcher.
	w.Start()
	time.Sleep(50 * time.Millisecond)
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if running {
		t.Error("watcher restarted after Stop")
	}
}
