package gotemplate

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrWatchUnavailable is returned by Watch when the engine has no base
// directory on disk to observe.
var ErrWatchUnavailable = errors.New("gotemplate: watch requires a base directory")

type watcher struct {
	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	doneCh chan struct{}
	err    error
}

// Watch observes the base directory tree and purges compiled templates on any
// create, write, remove or rename. It returns once the watcher is running;
// the watcher stops when ctx is cancelled or Close is called.
func (e *Engine) Watch(ctx context.Context) error {
	if e == nil || e.baseDir == "" {
		return ErrWatchUnavailable
	}

	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if e.watch != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := addTree(fsw, e.baseDir); err != nil {
		_ = fsw.Close()
		return err
	}

	w := &watcher{
		fsw:    fsw,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	e.watch = w
	e.logger.Debug("watching templates", zap.String("dir", e.baseDir))

	go e.runWatch(ctx, w)
	return nil
}

// Close stops a running watcher and waits for it to exit.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}

	e.watchMu.Lock()
	w := e.watch
	e.watch = nil
	e.watchMu.Unlock()

	if w == nil {
		return nil
	}
	close(w.stopCh)
	<-w.doneCh
	return w.err
}

// runWatch owns fsw and closes it on exit.
func (e *Engine) runWatch(ctx context.Context, w *watcher) {
	defer close(w.doneCh)
	defer func() {
		w.err = w.fsw.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			e.detach(w)
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			e.handleEvent(w, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			e.logger.Warn("template watcher error", zap.Error(err))
		}
	}
}

func (e *Engine) detach(w *watcher) {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()
	if e.watch == w {
		e.watch = nil
	}
}

func (e *Engine) handleEvent(w *watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addTree(w.fsw, event.Name); err != nil {
				e.logger.Warn("watch new template dir", zap.String("dir", event.Name), zap.Error(err))
			}
		}
	}

	e.Purge()
	e.logger.Debug("template cache purged",
		zap.String("path", event.Name),
		zap.String("op", event.Op.String()),
	)
}

func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		return fsw.Add(path)
	})
}
