package asset

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/achilleasa/lumen/log"
	"github.com/fsnotify/fsnotify"
)

// A Watcher tracks a set of local asset files and records the ones that
// changed on disk. Changes are collected in the background and handed to
// the frame loop via Drain so that the scene is only rebuilt between frames.
type Watcher struct {
	logger  log.Logger
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	tracked map[string]struct{}
	changed map[string]struct{}

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
	wg        sync.WaitGroup
}

// Create a new watcher for the given file paths. The parent directory of
// each file is watched so that editors that replace files on save are
// detected.
func NewWatcher(paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %s", err)
	}

	w := &Watcher{
		logger:  log.New("asset watcher"),
		watcher: fsw,
		tracked: make(map[string]struct{}),
		changed: make(map[string]struct{}),
		done:    make(chan struct{}),
	}

	for _, p := range paths {
		if err = w.Add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Start tracking a file.
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watcher: could not detect abs path for %s; %s", path, err)
	}

	w.mu.Lock()
	_, known := w.tracked[absPath]
	w.tracked[absPath] = struct{}{}
	w.mu.Unlock()
	if known {
		return nil
	}

	if err = w.watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watcher: could not watch %s: %s", absPath, err)
	}
	w.logger.Debugf("watching %s", absPath)
	return nil
}

// Return the sorted list of tracked files that changed since the last call.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.changed) == 0 {
		return nil
	}

	out := make([]string, 0, len(w.changed))
	for p := range w.changed {
		out = append(out, p)
	}
	w.changed = make(map[string]struct{})
	sort.Strings(out)
	return out
}

// Stop watching and release the underlying OS resources. Calling Close
// more than once returns the result of the first call.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.watcher.Close()
		w.wg.Wait()
	})
	return w.closeErr
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.record(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warningf("%s", err)
		}
	}
}

func (w *Watcher) record(name string) {
	absPath, err := filepath.Abs(name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.tracked[absPath]; !ok {
		return
	}
	if _, ok := w.changed[absPath]; !ok {
		w.logger.Infof("asset changed: %s", absPath)
	}
	w.changed[absPath] = struct{}{}
}
