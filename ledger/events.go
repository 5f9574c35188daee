package ledger

import (
	"github.com/lordralex/ballot/api/logger"
	"sync"
)

type EventType string

const (
	EventVoteCreated EventType = "VoteCreated"
	EventVoteCast    EventType = "VoteCast"
	EventVoteClosed  EventType = "VoteClosed"
)

// Event is a notification emitted by a successful transition. Seq is assigned by the
// store when the event is persisted and starts at 1.
type Event struct {
	Seq         uint64    `json:"seq"`
	Type        EventType `json:"type"`
	VoteID      uint64    `json:"voteId"`
	Title       string    `json:"title,omitempty"`
	Creator     string    `json:"creator,omitempty"`
	OptionIndex int       `json:"optionIndex"`
	Voter       string    `json:"voter,omitempty"`
	Time        int64     `json:"time"`
}

// Subscription delivers events in the order they were applied. A subscriber that
// falls behind its buffer misses events and should catch up with Ledger.Events.
type Subscription struct {
	C <-chan Event

	ch   chan Event
	id   uint64
	feed *feed
	once sync.Once
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.feed.remove(s.id)
	})
}

type feed struct {
	lock sync.Mutex
	subs map[uint64]*Subscription
	next uint64
}

func (f *feed) subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if f.subs == nil {
		f.subs = make(map[uint64]*Subscription)
	}

	ch := make(chan Event, buffer)
	sub := &Subscription{C: ch, ch: ch, id: f.next, feed: f}
	f.subs[sub.id] = sub
	f.next++
	return sub
}

func (f *feed) remove(id uint64) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if sub, exists := f.subs[id]; exists {
		delete(f.subs, id)
		close(sub.ch)
	}
}

func (f *feed) send(ev Event) {
	f.lock.Lock()
	defer f.lock.Unlock()

	for id, sub := range f.subs {
		select {
		case sub.ch <- ev:
		default:
			logger.Debug().Printf("subscriber %d is full, dropped event %d\n", id, ev.Seq)
		}
	}
}
