package levels

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// quietPeriod is how long a config file must go without events before it is
// reported. Editors and scripts often write a file in several steps.
const quietPeriod = 100 * time.Millisecond

// Watcher reports <level>_config.txt files in the watched directories that
// were written, created, renamed or removed. A burst of events for one file
// is reported once, after the file has been quiet for quietPeriod.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes Events and Errors. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	pending := make(map[string]time.Time)
	timer := time.NewTimer(quietPeriod)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsConfigFile(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
			timer.Reset(quietPeriod)

		case now := <-timer.C:
			next := time.Duration(0)
			for name, seen := range pending {
				if wait := quietPeriod - now.Sub(seen); wait > 0 {
					if next == 0 || wait < next {
						next = wait
					}
					continue
				}
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			if next > 0 {
				timer.Reset(next)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case <-w.closeCh:
			return
		}
	}
}

// IsConfigFile reports whether path names a <level>_config.txt file.
func IsConfigFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), "_config.txt")
}

// IDFromPath maps a config file path back to its level.
func IDFromPath(path string) (ID, bool) {
	name, ok := strings.CutSuffix(filepath.Base(path), "_config.txt")
	if !ok {
		return "", false
	}
	id, err := ParseID(name)
	return id, err == nil
}
