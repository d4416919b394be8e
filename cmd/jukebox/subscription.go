package jukebox

import "sync"

// Subscription delivers snapshots. Only the latest is kept; a slow reader
// skips intermediate states rather than blocking the engine.
type Subscription struct {
	C <-chan Snapshot

	ch     chan Snapshot
	owner  *subscribers
	closed bool
}

func (s *Subscription) offer(snap Snapshot) {
	for {
		select {
		case s.ch <- snap:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// Close stops delivery and closes C.
func (s *Subscription) Close() {
	s.owner.remove(s)
}

type subscribers struct {
	mu     sync.Mutex
	list   []*Subscription
	closed bool
}

// add registers a subscription primed with the snapshot take returns.
func (ss *subscribers) add(take func() Snapshot) *Subscription {
	ch := make(chan Snapshot, 1)
	sub := &Subscription{C: ch, ch: ch, owner: ss}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	sub.offer(take())
	if ss.closed {
		sub.closed = true
		close(ch)
		return sub
	}
	ss.list = append(ss.list, sub)
	return sub
}

func (ss *subscribers) remove(sub *Subscription) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.ch)
	for i, s := range ss.list {
		if s == sub {
			ss.list = append(ss.list[:i], ss.list[i+1:]...)
			break
		}
	}
}

// publish takes the snapshot while holding the subscriber lock so
// concurrent publishers deliver in the order they observed the state.
func (ss *subscribers) publish(take func() Snapshot) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if len(ss.list) == 0 {
		return
	}
	snap := take()
	for _, sub := range ss.list {
		sub.offer(snap.clone())
	}
}

func (ss *subscribers) closeAll() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	for _, sub := range ss.list {
		sub.closed = true
		close(sub.ch)
	}
	ss.list = nil
	ss.closed = true
}
