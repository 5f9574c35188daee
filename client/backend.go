package client

import (
	"context"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/ledger"
)

// Backend is the ledger as the client sees it: write by submitting transactions,
// read through queries.
type Backend interface {
	SubmitTransaction(ctx context.Context, tx *chain.Transaction) (string, error)
	TransactionReceipt(ctx context.Context, hash string) (*chain.Receipt, error)
	GetVoteDetails(ctx context.Context, voteID uint64) (*ledger.VoteDetails, error)
	GetVoteOptionsCount(ctx context.Context, voteID uint64) (int, error)
	GetVoteOption(ctx context.Context, voteID uint64, index int) (*ledger.VoteOption, error)
	GetActiveVoteIds(ctx context.Context) ([]uint64, error)
	HasVoted(ctx context.Context, voteID uint64, address string) (bool, error)
}

var _ Backend = (*chain.Node)(nil)
