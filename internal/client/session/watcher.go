package session

import (
	"context"
	"time"
)

// StartWatcher polls the revision counter until ctx is cancelled, reloading
// the session whenever another process has written it. The polling mechanism
// is an implementation detail; subscribers only ever see Subscribe
// callbacks.
func (s *Store) StartWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if _, err := s.CheckExternal(checkCtx); err != nil {
				s.log.Warn(checkCtx, "storage watch failed", "error", err)
			}
			cancel()

		case <-ctx.Done():
			return
		}
	}
}
