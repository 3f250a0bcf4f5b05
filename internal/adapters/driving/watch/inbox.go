// Package watch provides a filesystem inbox: a directory watched for
// newly dropped PDF files, each of which is surfaced as an upload
// candidate. It is the terminal counterpart to dropping a file onto an
// upload area.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/docuquery-labs/docuquery-cli/internal/logger"
)

// Event reports a file dropped into the inbox, or a watcher failure.
type Event struct {
	// Path is the absolute path of the new PDF. Empty when Err is set.
	Path string

	// Err is a watcher failure. The inbox keeps running after one.
	Err error
}

// Inbox watches a directory and emits an Event for every PDF created
// or moved into it.
type Inbox struct {
	dir     string
	watcher *fsnotify.Watcher
	events  chan Event

	closeOnce sync.Once
	done      chan struct{}
}

// NewInbox starts watching dir. The directory must already exist.
func NewInbox(dir string) (*Inbox, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("inbox dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inbox dir %s: not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	in := &Inbox{
		dir:     dir,
		watcher: watcher,
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
	}
	go in.run()

	logger.Info("inbox: watching %s", dir)
	return in, nil
}

// Events returns the channel of inbox events. It is closed when the
// inbox is closed.
func (in *Inbox) Events() <-chan Event {
	return in.events
}

// Dir returns the watched directory.
func (in *Inbox) Dir() string {
	return in.dir
}

// Close stops the watcher. Idempotent.
func (in *Inbox) Close() error {
	var err error
	in.closeOnce.Do(func() {
		close(in.done)
		err = in.watcher.Close()
	})
	return err
}

func (in *Inbox) run() {
	defer close(in.events)

	for {
		select {
		case <-in.done:
			return
		case ev, ok := <-in.watcher.Events:
			if !ok {
				return
			}
			if !wantEvent(ev) {
				continue
			}
			logger.Debug("inbox: new file %s", ev.Name)
			select {
			case in.events <- Event{Path: ev.Name}:
			case <-in.done:
				return
			}
		case err, ok := <-in.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("inbox: watcher error: %v", err)
			select {
			case in.events <- Event{Err: err}:
			case <-in.done:
				return
			}
		}
	}
}

// wantEvent reports whether the filesystem event represents a PDF
// arriving in the inbox. Renames into the directory show up as Create
// on most platforms.
func wantEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) {
		return false
	}
	return strings.EqualFold(filepath.Ext(ev.Name), ".pdf")
}
