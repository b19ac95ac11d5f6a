package syncdocs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	cases := map[string]bool{
		"docs/intro.md":        false,
		"docs/.intro.md.swp":   true,
		"docs/intro.md~":       true,
		"docs/#intro.md#":      true,
		"docs/.DS_Store":       true,
		"docs/Thumbs.db":       true,
		"docs/4913.swx":        true,
		"docs/assets/logo.png": false,
	}
	for path, want := range cases {
		require.Equal(t, want, shouldIgnoreEvent(path), path)
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	syncReq, trigger, stop := setupDebouncer(20 * time.Millisecond)
	defer stop()

	for range 10 {
		trigger()
	}

	select {
	case <-syncReq:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced request never fired")
	}
	select {
	case <-syncReq:
		t.Fatal("burst produced more than one request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_ResyncsOnChange(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "intro.md"), "V1")

	reports := make(chan Report, 16)
	w := &Watcher{
		Syncer:   &Syncer{Source: src, Dest: dst},
		Debounce: 20 * time.Millisecond,
		OnSync: func(rep Report, err error) {
			if err == nil {
				reports <- rep
			}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case rep := <-reports:
		require.Equal(t, 1, rep.Created)
	case <-time.After(5 * time.Second):
		t.Fatal("initial sync did not run")
	}

	writeFile(t, filepath.Join(src, "intro.md"), "V2")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case rep := <-reports:
			if rep.Updated == 1 {
				require.Equal(t, "V2", readFile(t, filepath.Join(dst, "intro.md")))
				cancel()
				require.NoError(t, <-done)
				return
			}
		case <-deadline:
			cancel()
			t.Fatal("change was not synced")
		}
	}
}

func TestWatcher_InitialFailureReturns(t *testing.T) {
	w := &Watcher{Syncer: &Syncer{Source: filepath.Join(t.TempDir(), "missing"), Dest: t.TempDir()}}
	require.Error(t, w.Run(context.Background()))
}
