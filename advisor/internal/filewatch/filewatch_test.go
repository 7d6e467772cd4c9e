package filewatch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestWatch_CoalescesBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.prom")
	writeFile(t, path, "a")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 300*time.Millisecond, func() { calls.Add(1) })
	}()
	time.Sleep(100 * time.Millisecond)

	for _, s := range []string{"b", "c", "d", "e"} {
		writeFile(t, path, s)
		time.Sleep(20 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	// Leave room for a stray second reload to show up.
	time.Sleep(500 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("reload called %d times, want 1", n)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_ZeroSettle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "a")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 8)
	go func() {
		_ = Watch(ctx, path, 0, func() {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		})
	}()
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "b")

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("no reload with zero settle")
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "absent"), DefaultSettle, func() {})
	if err == nil {
		t.Error("expected error watching a missing file")
	}
}
