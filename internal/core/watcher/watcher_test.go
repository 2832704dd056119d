// # internal/core/watcher/watcher_test.go
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher_RejectsNilCallback(t *testing.T) {
	w, err := NewWatcher(50*time.Millisecond, nil, nil)
	if !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("expected os.ErrInvalid, got %v", err)
	}
	if w != nil {
		t.Fatal("expected nil watcher when callback is invalid")
	}
}

func TestNewWatcher_RejectsBadPattern(t *testing.T) {
	if _, err := NewWatcher(50*time.Millisecond, []string{"[a-"}, func([]string) {}); err == nil {
		t.Fatal("expected error for invalid include pattern")
	}
}

func TestWatcher_ReportsMatchingFiles(t *testing.T) {
	tmpDir := t.TempDir()

	changed := make(chan []string, 4)
	w, err := NewWatcher(50*time.Millisecond, []string{"*.txt"}, func(paths []string) {
		changed <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "notes.md"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}
	rules := filepath.Join(tmpDir, "rules.txt")
	if err := os.WriteFile(rules, []byte("faded blue bags contain no other bags.\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changed:
		found := false
		for _, p := range paths {
			if filepath.Base(p) == "notes.md" {
				t.Errorf("excluded file reported: %v", paths)
			}
			if p == rules {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s in changed files %v", rules, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for file change event")
	}
}

func TestWatcher_ExplicitFileIgnoresInclude(t *testing.T) {
	tmpDir := t.TempDir()
	rules := filepath.Join(tmpDir, "day7.rules")
	if err := os.WriteFile(rules, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan []string, 4)
	w, err := NewWatcher(50*time.Millisecond, []string{"*.txt"}, func(paths []string) {
		changed <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{rules}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rules, []byte("faded blue bags contain no other bags.\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changed:
		if len(paths) != 1 || paths[0] != rules {
			t.Errorf("expected only %s, got %v", rules, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for file change event")
	}
}
