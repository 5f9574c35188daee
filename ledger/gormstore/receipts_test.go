package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitMined(t *testing.T, node *chain.Node, hash string) *chain.Receipt {
	t.Helper()
	receipt, err := chain.WaitMinedWithTimeout(node, hash, 5*time.Second, 2*time.Millisecond)
	require.NoError(t, err)
	return receipt
}

func TestReceiptWrittenWithTransition(t *testing.T) {
	l, store := newTestLedger(t)
	start := l.Now().Unix()

	ctx := ledger.WithTx(context.Background(), ledger.TxRef{Hash: "0xaa", Nonce: 7, Kind: string(chain.TxCreateVote)})
	id, err := l.CreateVote(ctx, creator, "Test Vote", "", []string{"a", "b"}, start, start+60)
	require.NoError(t, err)

	receipt, err := store.Receipt(ctx, "0xaa")
	require.NoError(t, err)
	assert.Equal(t, chain.ReceiptSuccess, receipt.Status)
	assert.Equal(t, chain.TxCreateVote, receipt.Kind)
	assert.Equal(t, id, receipt.VoteID)
	assert.Equal(t, uint64(7), receipt.Nonce)

	ctx = ledger.WithTx(context.Background(), ledger.TxRef{Hash: "0xbb", Nonce: 8, Kind: string(chain.TxCastVote)})
	require.NoError(t, l.CastVote(ctx, id, 0, addrA))

	//a rejected write leaves nothing behind
	ctx = ledger.WithTx(context.Background(), ledger.TxRef{Hash: "0xcc", Nonce: 9, Kind: string(chain.TxCastVote)})
	assert.ErrorIs(t, l.CastVote(ctx, id, 1, addrA), ledger.ErrAlreadyVoted)
	_, err = store.Receipt(ctx, "0xcc")
	assert.ErrorIs(t, err, chain.ErrUnknownTransaction)

	next, err := store.NextNonce(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), next)
}

func TestNextNonceEmpty(t *testing.T) {
	store := newTestStore(t)
	next, err := store.NextNonce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), next)
}

func TestReceiptsSurviveRestart(t *testing.T) {
	store := newTestStore(t)
	now := time.Unix(1700000000, 0)
	clock := ledger.WithClock(func() time.Time { return now })
	ctx := context.Background()

	args := chain.CreateVoteArgs{Title: "Test Vote", Options: []string{"a", "b"}, StartTime: now.Unix(), EndTime: now.Unix() + 60}

	first := chain.NewNode(ledger.New(ledger.NewCachedStore(store, 16), clock), 8,
		chain.WithReceiptStore(store), chain.WithReceiptCache(1))
	first.Start()

	created, err := first.SubmitTransaction(ctx, chain.NewCreateVote(creator, args))
	require.NoError(t, err)
	failed, err := first.SubmitTransaction(ctx, chain.NewCastVote(addrA, 9, 0))
	require.NoError(t, err)
	waitMined(t, first, created)
	waitMined(t, first, failed)
	first.Stop()

	reopened, err := New(store.db)
	require.NoError(t, err)
	second := chain.NewNode(ledger.New(reopened, clock), 8, chain.WithReceiptStore(reopened))
	second.Start()
	defer second.Stop()

	receipt, err := second.TransactionReceipt(ctx, created)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, chain.ReceiptSuccess, receipt.Status)
	assert.Equal(t, uint64(0), receipt.VoteID)
	assert.Equal(t, now.Unix(), receipt.AppliedAt)

	receipt, err = second.TransactionReceipt(ctx, failed)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, chain.ReceiptFailed, receipt.Status)
	assert.ErrorIs(t, receipt.Err(), ledger.ErrVoteNotFound)

	_, err = second.TransactionReceipt(ctx, "0xdeadbeef")
	assert.ErrorIs(t, err, chain.ErrUnknownTransaction)

	//the same request after a restart is a new transaction
	again, err := second.SubmitTransaction(ctx, chain.NewCreateVote(creator, args))
	require.NoError(t, err)
	assert.NotEqual(t, created, again)
	receipt = waitMined(t, second, again)
	assert.Equal(t, uint64(2), receipt.Nonce)
	assert.Equal(t, uint64(1), receipt.VoteID)
}
