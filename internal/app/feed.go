package app

import (
	"sync"

	"fanzone-service/internal/domain"
)

// LeaderboardFeed fans leaderboard snapshots out to live subscribers
// (websocket connections). Slow consumers never block a publish: a stale
// pending snapshot is dropped in favor of the newest one.
type LeaderboardFeed struct {
	mu          sync.Mutex
	subscribers map[chan domain.Leaderboard]struct{}
}

func NewLeaderboardFeed() *LeaderboardFeed {
	return &LeaderboardFeed{subscribers: make(map[chan domain.Leaderboard]struct{})}
}

// Subscribe registers a consumer and delivers the provided initial snapshot
// first. The returned cancel must be called to release the channel.
func (f *LeaderboardFeed) Subscribe(initial domain.Leaderboard) (<-chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	ch <- initial

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber.
func (f *LeaderboardFeed) Publish(lb domain.Leaderboard) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- lb:
		default:
			// Buffer full: evict one stale snapshot, then deliver the newest.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}

// HasSubscribers reports whether a publish would reach anyone, letting callers
// skip building snapshots nobody is listening for.
func (f *LeaderboardFeed) HasSubscribers() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers) > 0
}
