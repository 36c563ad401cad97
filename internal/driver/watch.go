package driver

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-runs opts through Run every time one of opts.Sources changes
// on disk. Grounded on the teacher's fsnotify-backed file watcher
// (internal/runtime/vfs/watch_fsnotify.go): one shared fsnotify.Watcher
// whose Events channel is drained by Watch's own loop, Write/Create/Rename
// treated as "changed". Blocks until stop is closed.
func (d *Driver) Watch(opts Options, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watchedDirs := map[string]bool{}
	for _, src := range opts.Sources {
		dir := filepath.Dir(src)
		if watchedDirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return &FileError{Path: dir, Op: "read", Err: err}
		}
		watchedDirs[dir] = true
	}

	if err := d.Run(opts); err != nil {
		d.Log.Error("initial compile failed: %v", err)
	}

	for {
		select {
		case <-stop:
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, opts.Sources) {
				continue
			}
			d.Log.Info("detected change in %s, recompiling", ev.Name)
			if err := d.Run(opts); err != nil {
				d.Log.Error("recompile failed: %v", err)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.Log.Warn("watch error: %v", watchErr)
		}
	}
}

func relevant(ev fsnotify.Event, sources []string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}

	for _, src := range sources {
		if filepath.Clean(ev.Name) == filepath.Clean(src) {
			return true
		}
	}

	return false
}
