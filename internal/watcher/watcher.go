package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pageloop/internal/eventbus"
)

// DefaultDebounce groups the bursts of events editors produce on save
const DefaultDebounce = 300 * time.Millisecond

// Watcher publishes DeckChanged when slide files under a directory change
type Watcher struct {
	watcher *fsnotify.Watcher
	bus     eventbus.EventBus
	root    string
	exts    map[string]bool
	depth   int

	debounce time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	pending   map[string]struct{}
	dirs      map[string]struct{}
	closed    bool
	closeOnce sync.Once
}

// New watches root and its subdirectories up to maxDepth. Only files with
// one of exts count as changes; an empty list accepts every file.
func New(bus eventbus.EventBus, root string, exts []string, maxDepth int) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		bus:      bus,
		root:     filepath.Clean(root),
		exts:     make(map[string]bool, len(exts)),
		depth:    maxDepth,
		debounce: DefaultDebounce,
		pending:  make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}
	for _, e := range exts {
		w.exts[strings.ToLower(e)] = true
	}

	if err := w.watchTree(w.root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// SetDebounce changes the quiet period before DeckChanged is published
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Run forwards file system events until ctx is done or the watcher closes
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// Close stops watching. Pending notifications are dropped.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if w.withinDepth(name) && !hidden(name) {
				if err := w.watchTree(name); err != nil {
					log.Printf("Watcher: cannot watch %s: %v", name, err)
				}
			}
			return
		}
	}
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && w.forget(name) {
		w.schedule(name)
		return
	}
	if hidden(name) || !w.accepts(name) {
		return
	}
	w.schedule(name)
}

func (w *Watcher) accepts(path string) bool {
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

func (w *Watcher) withinDepth(dir string) bool {
	rel, err := filepath.Rel(w.root, dir)
	if err != nil || rel == "." {
		return err == nil
	}
	return strings.Count(rel, string(filepath.Separator))+1 <= w.depth
}

// watchTree adds dir and its subdirectories within depth
func (w *Watcher) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && (hidden(path) || !w.withinDepth(path)) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		w.mu.Lock()
		w.dirs[path] = struct{}{}
		w.mu.Unlock()
		return nil
	})
}

// forget drops a removed directory. It reports whether name was watched.
func (w *Watcher) forget(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.dirs[name]; !ok {
		return false
	}
	delete(w.dirs, name)
	return true
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending[path] = struct{}{}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.timer = nil
	w.mu.Unlock()

	sort.Strings(paths)
	w.bus.Publish(eventbus.DeckChangedEvent{Paths: paths})
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
