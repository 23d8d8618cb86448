package audit

import (
	"context"
	"log/slog"
	"time"
)

// Pruner deletes events older than Retention on a fixed interval.
// One instance per process is plenty; concurrent pruners would just
// race to delete the same rows harmlessly.
type Pruner struct {
	Sink      Sink
	Retention time.Duration
	Every     time.Duration
}

func (p *Pruner) interval() time.Duration {
	if p.Every > 0 {
		return p.Every
	}
	return time.Hour
}

func (p *Pruner) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.Sink.PruneBefore(ctx, time.Now().Add(-p.Retention))
			if err != nil {
				slog.Warn("audit prune failed", "err", err)
				continue
			}
			if n > 0 {
				slog.Info("audit events pruned", "count", n)
			}
		}
	}
}
