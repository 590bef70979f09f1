// Package watch provides file watching for model source changes.
package watch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches model source directories and re-runs the callback when
// their content fingerprint changes. Events are debounced, then guarded by
// a sha256 fingerprint over the watched Go files so touch-without-change
// saves do not trigger a regeneration.
type Watcher struct {
	dirs        []string
	callback    func() error
	watcher     *fsnotify.Watcher
	fingerprint string
	done        chan bool
}

// NewWatcher creates a watcher over the given directories.
func NewWatcher(dirs []string, callback func() error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	var absDirs []string
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
		if err := watcher.Add(abs); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
		}
		absDirs = append(absDirs, abs)
	}

	w := &Watcher{
		dirs:     absDirs,
		callback: callback,
		watcher:  watcher,
		done:     make(chan bool),
	}
	w.fingerprint, _ = Fingerprint(absDirs)
	return w, nil
}

// Start begins watching. The callback runs once up front, then on every
// debounced change whose fingerprint differs from the last run's.
func (w *Watcher) Start() error {
	if err := w.callback(); err != nil {
		return fmt.Errorf("initial callback failed: %w", err)
	}

	go func() {
		debounceTimer := time.NewTimer(500 * time.Millisecond)
		debounceTimer.Stop()
		var debounceCh <-chan time.Time

		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					debounceTimer.Reset(500 * time.Millisecond)
					debounceCh = debounceTimer.C
				}

			case <-debounceCh:
				debounceCh = nil
				fp, err := Fingerprint(w.dirs)
				if err != nil || fp == w.fingerprint {
					continue
				}
				w.fingerprint = fp
				if err := w.callback(); err != nil {
					fmt.Fprintf(os.Stderr, "Watch callback error: %v\n", err)
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

// Fingerprint computes a content hash over the Go files beneath the given
// directories, in sorted path order. Missing directories contribute
// nothing; two identical source sets always hash identically.
func Fingerprint(dirs []string) (string, error) {
	var files []string
	for _, dir := range dirs {
		_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if !info.IsDir() && strings.HasSuffix(path, ".go") {
				files = append(files, path)
			}
			return nil
		})
	}
	sort.Strings(files)

	h := sha256.New()
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			continue
		}
		fmt.Fprintf(h, "%s\n", file)
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("failed to hash %s: %w", file, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
