package settings

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the event bursts editors produce when they replace
// a file (create, write, rename in quick succession).
const debounceDelay = 50 * time.Millisecond

// Watcher delivers change notifications for a settings file.
type Watcher struct {
	watcher     *fsnotify.Watcher
	path        string
	onChange    func()
	stopChan    chan struct{}
	stoppedChan chan struct{}
}

// Watch subscribes to changes of the store's backing file. The callback runs
// on the watcher's goroutine after each settled burst of file events; callers
// reload the store and re-resolve from whatever loop serializes their state.
func (s *Store) Watch(onChange func()) (*Watcher, error) {
	if s.path == "" {
		return nil, fmt.Errorf("settings store has no backing file")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directory, not the file: editors and atomic writers replace
	// the file by rename, which drops a watch on the file itself.
	if err := fw.Add(filepath.Dir(s.path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch settings directory: %w", err)
	}

	w := &Watcher{
		watcher:     fw,
		path:        filepath.Clean(s.path),
		onChange:    onChange,
		stopChan:    make(chan struct{}),
		stoppedChan: make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() {
	close(w.stopChan)
	<-w.stoppedChan
	w.watcher.Close()
}

// watchLoop is the main event loop
func (w *Watcher) watchLoop() {
	defer close(w.stoppedChan)

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-w.stopChan:
			debugLog("[DEBUG] SettingsWatcher: Stopping watch loop")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				debugLog("[DEBUG] SettingsWatcher: Watcher events channel closed")
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debugLog("[DEBUG] SettingsWatcher: %s on %s", event.Op, event.Name)
			debounce.Reset(debounceDelay)

		case <-debounce.C:
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				debugLog("[DEBUG] SettingsWatcher: Watcher errors channel closed")
				return
			}
			log.Printf("[ERROR] SettingsWatcher: Watcher error: %v", err)
		}
	}
}
