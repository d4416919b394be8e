package play

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/gigurra/glass/cmd/library"
)

var notify = func(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

// notifier shows a desktop notification when a new track starts, at most once
// per cooldown so skipping through the queue does not spam.
type notifier struct {
	mu       sync.Mutex
	cooldown time.Duration
	last     time.Time
	now      func() time.Time
}

func newNotifier(cooldown time.Duration) *notifier {
	return &notifier{cooldown: cooldown, now: time.Now}
}

func (n *notifier) nowPlaying(t library.Track) {
	n.mu.Lock()
	now := n.now()
	if !n.last.IsZero() && now.Sub(n.last) < n.cooldown {
		n.mu.Unlock()
		return
	}
	n.last = now
	n.mu.Unlock()

	if err := notify(t.Title, t.Artist, t.Cover); err != nil {
		slog.Debug("notification failed", "error", err)
	}
}
