package syncdocs

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Syncer copies a fixed source tree into a fixed destination.
type Syncer struct {
	Source string
	Dest   string
}

// Sync runs one additive copy pass. The context is checked before starting;
// a copy in progress is not interrupted.
func (s *Syncer) Sync(ctx context.Context) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	rev, err := SourceRevision(s.Source)
	if err != nil {
		slog.Debug("Source revision unavailable", logfields.Source(s.Source), logfields.Error(err))
	}

	start := time.Now()
	rep, err := Copy(s.Source, s.Dest)
	attrs := []any{
		logfields.Source(s.Source),
		logfields.Destination(s.Dest),
		slog.Int("created", rep.Created),
		slog.Int("updated", rep.Updated),
		slog.Int("unchanged", rep.Unchanged),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())),
	}
	if rev != "" {
		attrs = append(attrs, logfields.Revision(rev))
	}
	if err != nil {
		slog.Error("Documentation sync failed", append(attrs, logfields.Error(err))...)
		return rep, err
	}
	slog.Info("Documentation synced", attrs...)
	return rep, nil
}
