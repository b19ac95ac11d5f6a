package syncdocs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultDebounce coalesces bursts of filesystem events into one copy.
const DefaultDebounce = 300 * time.Millisecond

// Watcher keeps the destination in step with the source until its context
// ends.
type Watcher struct {
	Syncer *Syncer

	// Interval, when positive, also re-syncs on a fixed schedule. This covers
	// sources on filesystems where change notifications are unreliable.
	Interval time.Duration
	Debounce time.Duration

	// OnSync is called after every pass, including the initial one.
	OnSync func(Report, error)
}

// Run performs an initial sync and then re-syncs on change. Copy failures
// after the first pass are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	rep, err := w.Syncer.Sync(ctx)
	w.notify(rep, err)
	if err != nil {
		return err
	}

	fsw, err := setupFileWatcher(w.Syncer.Source)
	if err != nil {
		return err
	}
	defer func() { _ = fsw.Close() }()

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	syncReq, trigger, stopDebounce := setupDebouncer(debounce)
	defer stopDebounce()

	if w.Interval > 0 {
		sched, err := startPeriodicSync(w.Interval, trigger)
		if err != nil {
			return err
		}
		defer func() { _ = sched.Shutdown() }()
	}

	workerCtx, stopWorker := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.syncWorker(workerCtx, syncReq)
	}()
	defer func() {
		stopWorker()
		wg.Wait()
	}()

	slog.Info("Watching documentation source", logfields.Source(w.Syncer.Source), logfields.Destination(w.Syncer.Dest))
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping documentation watcher")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			handleFileEvent(fsw, ev, trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// syncWorker serializes copy passes; requests arriving mid-copy collapse into
// the single buffered slot and run once afterwards.
func (w *Watcher) syncWorker(ctx context.Context, syncReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-syncReq:
			slog.Debug("Change detected; syncing documentation")
			rep, err := w.Syncer.Sync(ctx)
			w.notify(rep, err)
		}
	}
}

func (w *Watcher) notify(rep Report, err error) {
	if w.OnSync != nil {
		w.OnSync(rep, err)
	}
}

func startPeriodicSync(interval time.Duration, trigger func()) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if _, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(trigger),
		gocron.WithName("periodic-sync"),
	); err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic sync job: %w", err)
	}
	s.Start()
	slog.Debug("Periodic sync scheduled", slog.Duration("interval", interval))
	return s, nil
}

func setupFileWatcher(root string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := addDirsRecursive(watcher, root); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// setupDebouncer returns the request channel, a trigger that (re)arms the
// timer, and a stop func that disarms it.
func setupDebouncer(delay time.Duration) (chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	syncReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case syncReq <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return syncReq, trigger, stop
}

func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters editor swap files and OS metadata.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
