package chain

import (
	"context"
	"github.com/lordralex/ballot/ledger"
	"time"
)

// Node couples a ledger with the pool that feeds it. Writes only reach the ledger
// through SubmitTransaction; reads go straight to it.
type Node struct {
	ledger *ledger.Ledger
	pool   *Pool
}

func NewNode(l *ledger.Ledger, queueSize int, opts ...PoolOption) *Node {
	return &Node{ledger: l, pool: NewPool(l, queueSize, opts...)}
}

func (n *Node) Start() {
	n.pool.Start()
}

func (n *Node) Stop() {
	n.pool.Stop()
}

func (n *Node) SubmitTransaction(_ context.Context, tx *Transaction) (string, error) {
	return n.pool.Submit(tx)
}

func (n *Node) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	return n.pool.TransactionReceipt(ctx, hash)
}

func (n *Node) GetVoteDetails(ctx context.Context, voteID uint64) (*ledger.VoteDetails, error) {
	return n.ledger.GetVoteDetails(ctx, voteID)
}

func (n *Node) GetVoteOptionsCount(ctx context.Context, voteID uint64) (int, error) {
	return n.ledger.GetVoteOptionsCount(ctx, voteID)
}

func (n *Node) GetVoteOption(ctx context.Context, voteID uint64, index int) (*ledger.VoteOption, error) {
	return n.ledger.GetVoteOption(ctx, voteID, index)
}

func (n *Node) GetActiveVoteIds(ctx context.Context) ([]uint64, error) {
	return n.ledger.GetActiveVoteIds(ctx)
}

func (n *Node) HasVoted(ctx context.Context, voteID uint64, address string) (bool, error) {
	return n.ledger.HasVoted(ctx, voteID, address)
}

func (n *Node) Events(ctx context.Context, after uint64, limit int) ([]ledger.Event, error) {
	return n.ledger.Events(ctx, after, limit)
}

func (n *Node) Subscribe(buffer int) *ledger.Subscription {
	return n.ledger.Subscribe(buffer)
}

func (n *Node) Now() time.Time {
	return n.ledger.Now()
}
