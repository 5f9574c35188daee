package ledger

import "context"

// Store is the durable state behind a Ledger. Each write method must apply its state
// change and persist ev (setting ev.Seq) as a single atomic unit, or change nothing.
type Store interface {
	VoteCount(ctx context.Context) (uint64, error)
	InsertVote(ctx context.Context, vote *Vote, ev *Event) error
	// GetVote returns ErrVoteNotFound for unknown ids.
	GetVote(ctx context.Context, id uint64) (*Vote, error)
	// ListVotes returns every vote in ascending id order.
	ListVotes(ctx context.Context) ([]*Vote, error)
	HasVoted(ctx context.Context, id uint64, voter string) (bool, error)
	RecordVote(ctx context.Context, id uint64, optionIndex int, voter string, ev *Event) error
	CloseVote(ctx context.Context, id uint64, ev *Event) error
	// Events returns up to limit events with Seq greater than after, oldest first.
	Events(ctx context.Context, after uint64, limit int) ([]Event, error)
}
