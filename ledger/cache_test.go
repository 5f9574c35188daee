package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedStoreEvictsOnWrite(t *testing.T) {
	ctx := context.Background()
	cs := NewCachedStore(NewMemoryStore(), 4)
	l := New(cs)
	createTestVote(t, l)

	_, err := l.GetVote(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.Len())

	require.NoError(t, l.CastVote(ctx, 0, 2, addrA))
	assert.Equal(t, 0, cs.Len())

	vote, err := l.GetVote(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), vote.Options[2].VoteCount)
	assert.Equal(t, 1, cs.Len())
}

func TestCachedStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	cs := NewCachedStore(NewMemoryStore(), 4)
	l := New(cs)
	createTestVote(t, l)

	vote, err := cs.GetVote(ctx, 0)
	require.NoError(t, err)
	vote.Options[0].VoteCount = 99
	vote.Title = "changed"

	again, err := cs.GetVote(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), again.Options[0].VoteCount)
	assert.Equal(t, "Test Vote", again.Title)
}

func TestCachedStoreMiss(t *testing.T) {
	cs := NewCachedStore(NewMemoryStore(), 0)
	_, err := cs.GetVote(context.Background(), 1)
	assert.ErrorIs(t, err, ErrVoteNotFound)
	assert.Equal(t, 0, cs.Len())
}
