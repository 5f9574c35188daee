package ledger

import (
	"context"
	lru "github.com/hashicorp/golang-lru"
	"sync"
)

const defaultVoteCacheLimit = 256

var _ Store = (*CachedStore)(nil)

// CachedStore keeps recent vote snapshots in front of another Store. Writes go
// straight through and evict the snapshot of the vote they touched. A miss holds
// the read lock across load and fill so a write can never be shadowed by a stale fill.
type CachedStore struct {
	Store

	lock      sync.RWMutex
	voteCache *lru.Cache
}

func NewCachedStore(store Store, limit int) *CachedStore {
	if limit <= 0 {
		limit = defaultVoteCacheLimit
	}
	voteCache, _ := lru.New(limit)

	return &CachedStore{
		Store:     store,
		voteCache: voteCache,
	}
}

func (cs *CachedStore) GetVote(ctx context.Context, id uint64) (*Vote, error) {
	if cached, ok := cs.voteCache.Get(id); ok {
		return cached.(*Vote).Clone(), nil
	}

	cs.lock.RLock()
	defer cs.lock.RUnlock()

	vote, err := cs.Store.GetVote(ctx, id)
	if err != nil {
		return nil, err
	}

	cs.voteCache.Add(id, vote.Clone())
	return vote, nil
}

func (cs *CachedStore) InsertVote(ctx context.Context, vote *Vote, ev *Event) error {
	cs.lock.Lock()
	defer cs.lock.Unlock()
	defer cs.voteCache.Remove(vote.ID)
	return cs.Store.InsertVote(ctx, vote, ev)
}

func (cs *CachedStore) RecordVote(ctx context.Context, id uint64, optionIndex int, voter string, ev *Event) error {
	cs.lock.Lock()
	defer cs.lock.Unlock()
	defer cs.voteCache.Remove(id)
	return cs.Store.RecordVote(ctx, id, optionIndex, voter, ev)
}

func (cs *CachedStore) CloseVote(ctx context.Context, id uint64, ev *Event) error {
	cs.lock.Lock()
	defer cs.lock.Unlock()
	defer cs.voteCache.Remove(id)
	return cs.Store.CloseVote(ctx, id, ev)
}

func (cs *CachedStore) Purge() {
	cs.voteCache.Purge()
}

func (cs *CachedStore) Len() int {
	return cs.voteCache.Len()
}
