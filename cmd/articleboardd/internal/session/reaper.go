package session

import (
	"context"
	"log/slog"
	"time"
)

// RunReaper periodically expires idle sessions until ctx is cancelled.
func RunReaper(ctx context.Context, s *Store, maxIdle time.Duration) {
	go reaper(ctx, s, maxIdle)
}

func reaper(ctx context.Context, s *Store, maxIdle time.Duration) {
	interval := maxIdle / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Reap(maxIdle); n != 0 {
				slog.Info("expired idle sessions", "count", n, "remaining", s.Len())
			}
		}
	}
}
