package feedwatch

import (
	"context"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultQuiet is how long a file must stay unchanged before it is imported.
// Exporters write feeds in many small chunks.
const DefaultQuiet = 500 * time.Millisecond

var feedExts = map[string]bool{".csv": true, ".tsv": true, ".txt": true, ".xlsx": true, ".xls": true, ".json": true}

// Watcher fires onReady for feed files in one directory (not recursive) once
// writes to them settle.
type Watcher struct {
	Dir   string
	Quiet time.Duration
	Log   zerolog.Logger
}

// IsFeedFile reports whether name looks like a feed file (not hidden, not an office lock file).
func IsFeedFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return false
	}
	return feedExts[strings.ToLower(filepath.Ext(base))]
}

// Run blocks until ctx is done. onReady runs on a separate worker, one file
// at a time, in name order for files that settle together; the event loop
// keeps draining fsnotify while an import is in progress. Run returns only
// after the file being handled, if any, is done.
func (w Watcher) Run(ctx context.Context, onReady func(path string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(w.Dir); err != nil {
		return err
	}

	quiet := w.Quiet
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	tick := time.NewTicker(quiet / 4)
	defer tick.Stop()

	work := make(chan string)
	worker := make(chan struct{})
	go func() {
		defer close(worker)
		for p := range work {
			if ctx.Err() != nil {
				continue
			}
			onReady(p)
		}
	}()
	defer func() {
		close(work)
		<-worker
	}()

	pending := map[string]time.Time{} // path -> last write
	var queue []string                // settled, not yet handed to the worker
	w.Log.Info().Str("dir", w.Dir).Dur("quiet", quiet).Msg("watching feeds")
	for {
		// send is nil while the queue is empty, which disables that case
		var send chan string
		var next string
		if len(queue) > 0 {
			send, next = work, queue[0]
		}

		select {
		case <-ctx.Done():
			return nil

		case send <- next:
			queue = queue[1:]

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !IsFeedFile(ev.Name) {
				continue
			}
			switch {
			case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
				pending[ev.Name] = time.Now()
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				delete(pending, ev.Name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn().Err(err).Msg("watch error")

		case now := <-tick.C:
			var ready []string
			for p, last := range pending {
				if now.Sub(last) >= quiet {
					ready = append(ready, p)
					delete(pending, p)
				}
			}
			sort.Strings(ready)
			for _, p := range ready {
				if !slices.Contains(queue, p) {
					queue = append(queue, p)
				}
			}
		}
	}
}
