package fs

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits after the last write before
// reloading the subject file.
const DefaultDebounce = 150 * time.Millisecond

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// SubjectUpdate carries a reloaded subject file, or the error that prevented
// reloading it.
type SubjectUpdate struct {
	Path string
	Text string
	Err  error
}

// SubjectWatcher reloads a single file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so editors that
// save by rename-and-replace keep being tracked.
type SubjectWatcher struct {
	mu sync.Mutex

	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(SubjectUpdate)
	logger   logrus.FieldLogger
	timer    *time.Timer

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// WatchSubject starts watching path. onChange is called from a background
// goroutine after each debounced change.
func WatchSubject(path string, debounce time.Duration, logger logrus.FieldLogger, onChange func(SubjectUpdate)) (*SubjectWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &SubjectWatcher{
		watcher:  fsw,
		path:     absPath,
		debounce: debounce,
		onChange: onChange,
		logger:   logger.WithField("subject", absPath),
		closeCh:  make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *SubjectWatcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit. Pending
// reloads are discarded.
func (w *SubjectWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.closedWg.Wait()
	return err
}

func (w *SubjectWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("subject watcher error")
		}
	}
}

func (w *SubjectWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	w.logger.WithField("op", event.Op.String()).Debug("subject changed")
	w.schedule()
}

func (w *SubjectWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *SubjectWatcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	text, err := LoadSubject(w.path)
	if err != nil {
		w.logger.WithError(err).Warn("reload subject")
	}
	if w.onChange != nil {
		w.onChange(SubjectUpdate{Path: w.path, Text: text, Err: err})
	}
}
