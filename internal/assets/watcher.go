package assets

import (
	"log"

	"github.com/0x0420b/Everlook/internal/graphics/render"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates render-cache texture entries when their source files
// change on disk, so the viewport shows edits on the next frame's upload.
// Invalidation only marks entries stale; all GPU work stays on the render
// thread, which applies it via Cache.FlushInvalidated each frame.
type Watcher struct {
	fs    *fsnotify.Watcher
	cache *render.Cache
	done  chan struct{}
}

func NewWatcher(cache *render.Cache) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fs: fs, cache: cache, done: make(chan struct{})}
	go w.run()
	return w, nil
}

// Watch registers a file whose cache entry should track the file contents.
func (w *Watcher) Watch(path string) error {
	return w.fs.Add(path)
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				w.cache.Invalidate(event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("asset watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
