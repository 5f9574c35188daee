package ledger

import (
	"context"
	"github.com/pkg/errors"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the ledger in process memory. Used for tests and throwaway nodes.
type MemoryStore struct {
	lock   sync.RWMutex
	votes  []*Vote
	voters map[uint64]map[string]bool
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{voters: make(map[uint64]map[string]bool)}
}

func (s *MemoryStore) VoteCount(context.Context) (uint64, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return uint64(len(s.votes)), nil
}

func (s *MemoryStore) InsertVote(_ context.Context, vote *Vote, ev *Event) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if vote.ID != uint64(len(s.votes)) {
		return errors.Errorf("vote id %d out of sequence, next is %d", vote.ID, len(s.votes))
	}
	s.votes = append(s.votes, vote.Clone())
	s.appendEvent(ev)
	return nil
}

func (s *MemoryStore) GetVote(_ context.Context, id uint64) (*Vote, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if id >= uint64(len(s.votes)) {
		return nil, ErrVoteNotFound
	}
	return s.votes[id].Clone(), nil
}

func (s *MemoryStore) ListVotes(context.Context) ([]*Vote, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	result := make([]*Vote, 0, len(s.votes))
	for _, v := range s.votes {
		result = append(result, v.Clone())
	}
	return result, nil
}

func (s *MemoryStore) HasVoted(_ context.Context, id uint64, voter string) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.voters[id][voter], nil
}

func (s *MemoryStore) RecordVote(_ context.Context, id uint64, optionIndex int, voter string, ev *Event) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if id >= uint64(len(s.votes)) {
		return ErrVoteNotFound
	}
	vote := s.votes[id]
	if optionIndex < 0 || optionIndex >= len(vote.Options) {
		return ErrInvalidOption
	}
	if s.voters[id][voter] {
		return ErrAlreadyVoted
	}

	if s.voters[id] == nil {
		s.voters[id] = make(map[string]bool)
	}
	s.voters[id][voter] = true
	vote.Options[optionIndex].VoteCount++
	vote.TotalVotes++
	s.appendEvent(ev)
	return nil
}

func (s *MemoryStore) CloseVote(_ context.Context, id uint64, ev *Event) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if id >= uint64(len(s.votes)) {
		return ErrVoteNotFound
	}
	if !s.votes[id].IsActive {
		return ErrAlreadyClosed
	}
	s.votes[id].IsActive = false
	s.appendEvent(ev)
	return nil
}

func (s *MemoryStore) Events(_ context.Context, after uint64, limit int) ([]Event, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	result := make([]Event, 0)
	if after >= uint64(len(s.events)) {
		return result, nil
	}
	for _, ev := range s.events[after:] {
		if limit > 0 && len(result) == limit {
			break
		}
		result = append(result, ev)
	}
	return result, nil
}

func (s *MemoryStore) appendEvent(ev *Event) {
	ev.Seq = uint64(len(s.events)) + 1
	s.events = append(s.events, *ev)
}
