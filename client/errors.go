package client

import (
	"context"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/ledger"
	"github.com/pkg/errors"
)

var (
	ErrWalletNotConnected  = errors.New("wallet not connected")
	ErrWalletRejected      = errors.New("wallet rejected the request")
	ErrConfirmationTimeout = errors.New("timed out waiting for confirmation")
	ErrInvalidForm         = errors.New("invalid vote form")
)

// FormError says which field of a VoteForm is wrong.
type FormError struct {
	Field  string
	Reason string
}

func (e *FormError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *FormError) Is(target error) bool {
	return target == ErrInvalidForm
}

var messages = map[string]string{
	"InvalidOptions":     "A vote needs at least two options.",
	"InvalidTimeRange":   "The end date must be after the start date.",
	"VoteNotFound":       "This vote does not exist.",
	"VotingClosed":       "Voting is closed for this proposal.",
	"InvalidOption":      "That option is not part of this vote.",
	"AlreadyVoted":       "You have already voted on this proposal.",
	"Unauthorized":       "Only the creator of this vote can do that.",
	"AlreadyClosed":      "This vote has already been closed.",
	"WalletNotConnected": "Connect your wallet to continue.",
	"WalletRejected":     "You rejected the transaction. Try again if this was unintended.",
	"ConfirmationTimeout": "The transaction was submitted but is not confirmed yet. " +
		"Check back before trying again.",
	"InvalidForm": "Please check the vote details and try again.",
	"PoolFull":    "The network is busy. Please try again in a moment.",
	"Unavailable": "The voting network is unavailable. Please try again later.",
}

const genericMessage = "Something went wrong. Please try again later."

// KindOf names err for callers and logs; ledger kinds keep their ledger names.
func KindOf(err error) string {
	if kind := ledger.KindOf(err); kind != "" {
		return kind
	}

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrWalletNotConnected):
		return "WalletNotConnected"
	case errors.Is(err, ErrWalletRejected):
		return "WalletRejected"
	case errors.Is(err, ErrConfirmationTimeout):
		return "ConfirmationTimeout"
	case errors.Is(err, ErrInvalidForm):
		return "InvalidForm"
	case errors.Is(err, chain.ErrPoolFull):
		return "PoolFull"
	case errors.Is(err, chain.ErrPoolClosed), errors.Is(err, context.DeadlineExceeded):
		return "Unavailable"
	}
	return ""
}

// UserMessage is safe to show to an end user. It never includes the raw error text,
// except the field detail of a form error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var formErr *FormError
	if errors.As(err, &formErr) {
		return "Please check the vote details: " + formErr.Error() + "."
	}

	if msg, exists := messages[KindOf(err)]; exists {
		return msg
	}
	return genericMessage
}

// Retryable is true only for infrastructure trouble. Ledger kinds never are: each is
// caused by the request itself or by stale client state.
func Retryable(err error) bool {
	switch KindOf(err) {
	case "WalletRejected", "PoolFull", "Unavailable":
		return true
	}
	return false
}
