package ledger

import "github.com/pkg/errors"

var (
	ErrInvalidOptions   = errors.New("must provide at least 2 options")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrVoteNotFound     = errors.New("vote does not exist")
	ErrVotingClosed     = errors.New("voting is not active")
	ErrInvalidOption    = errors.New("invalid option")
	ErrAlreadyVoted     = errors.New("already voted")
	ErrUnauthorized     = errors.New("only the creator can close this vote")
	ErrAlreadyClosed    = errors.New("vote already closed")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidOptions, "InvalidOptions"},
	{ErrInvalidTimeRange, "InvalidTimeRange"},
	{ErrVoteNotFound, "VoteNotFound"},
	{ErrVotingClosed, "VotingClosed"},
	{ErrInvalidOption, "InvalidOption"},
	{ErrAlreadyVoted, "AlreadyVoted"},
	{ErrUnauthorized, "Unauthorized"},
	{ErrAlreadyClosed, "AlreadyClosed"},
}

// KindOf names the ledger error kind behind err, or "" when err is not one.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// ErrorForKind is the inverse of KindOf. Unknown names give nil.
func ErrorForKind(name string) error {
	for _, k := range kinds {
		if k.name == name {
			return k.err
		}
	}
	return nil
}
