package asset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/achilleasa/lumen/log"
)

func TestWatcherReportsChangedFiles(t *testing.T) {
	log.Discard()

	dir := t.TempDir()
	tracked := filepath.Join(dir, "cube.fiis")
	untracked := filepath.Join(dir, "notes.txt")
	for _, p := range []string{tracked, untracked} {
		if err := os.WriteFile(p, []byte("initial"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	w, err := NewWatcher(tracked)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if changed := w.Drain(); len(changed) != 0 {
		t.Fatalf("expected no changes before writing; got %v", changed)
	}

	if err = os.WriteFile(untracked, []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile(tracked, []byte("updated"), 0644); err != nil {
		t.Fatal(err)
	}

	expPath, _ := filepath.Abs(tracked)
	deadline := time.Now().Add(5 * time.Second)
	for {
		changed := w.Drain()
		if len(changed) > 0 {
			if len(changed) != 1 || changed[0] != expPath {
				t.Fatalf("expected changed list to be [%s]; got %v", expPath, changed)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for change notification")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	log.Discard()

	tracked := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(tracked, []byte("initial"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(tracked)
	if err != nil {
		t.Fatal(err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("expected first Close to succeed; got %v", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("expected second Close to return the first result; got %v", err)
	}
}
