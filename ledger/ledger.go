package ledger

import (
	"context"
	"github.com/lordralex/ballot/api/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

// Ledger is the voting state machine. Transitions (CreateVote, CastVote, CloseVote)
// are serialized by a single lock; each either fully applies or leaves the store untouched.
// Queries read store snapshots and never take the transition lock.
type Ledger struct {
	store Store
	now   func() time.Time

	lock sync.Mutex
	feed feed
}

type Option func(*Ledger)

// WithClock replaces the wall clock used for time windows and event stamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) Now() time.Time {
	return l.now()
}

func (l *Ledger) CreateVote(ctx context.Context, creator, title, description string, options []string, startTime, endTime int64) (uint64, error) {
	if creator == "" {
		return 0, ErrUnauthorized
	}
	if len(options) < 2 {
		return 0, ErrInvalidOptions
	}
	if endTime <= startTime {
		return 0, ErrInvalidTimeRange
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	id, err := l.store.VoteCount(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "counting votes")
	}

	vote := &Vote{
		ID:          id,
		Title:       title,
		Description: description,
		Creator:     creator,
		Options:     make([]VoteOption, len(options)),
		StartTime:   startTime,
		EndTime:     endTime,
		IsActive:    true,
	}
	for k, v := range options {
		vote.Options[k] = VoteOption{Text: v}
	}

	ev := &Event{Type: EventVoteCreated, VoteID: id, Title: title, Creator: creator, Time: l.now().Unix()}
	if err = l.store.InsertVote(ctx, vote, ev); err != nil {
		return 0, errors.Wrapf(err, "storing vote %d", id)
	}

	l.emit(*ev)
	return id, nil
}

// CastVote checks, in order: the vote exists, it is open, the option exists, the voter is new.
// A repeated call after success fails with ErrAlreadyVoted; it is never a silent no-op.
func (l *Ledger) CastVote(ctx context.Context, voteID uint64, optionIndex int, voter string) error {
	if voter == "" {
		return ErrUnauthorized
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	vote, err := l.store.GetVote(ctx, voteID)
	if err != nil {
		return err
	}

	now := l.now().Unix()
	if !IsOpen(vote.IsActive, vote.StartTime, vote.EndTime, now) {
		return ErrVotingClosed
	}
	if optionIndex < 0 || optionIndex >= len(vote.Options) {
		return ErrInvalidOption
	}

	voted, err := l.store.HasVoted(ctx, voteID, voter)
	if err != nil {
		return errors.Wrap(err, "reading voter record")
	}
	if voted {
		return ErrAlreadyVoted
	}

	ev := &Event{Type: EventVoteCast, VoteID: voteID, OptionIndex: optionIndex, Voter: voter, Time: now}
	if err = l.store.RecordVote(ctx, voteID, optionIndex, voter, ev); err != nil {
		if KindOf(err) != "" {
			return err
		}
		return errors.Wrapf(err, "recording vote on %d", voteID)
	}

	l.emit(*ev)
	return nil
}

// CloseVote is irreversible and only the creator may call it.
func (l *Ledger) CloseVote(ctx context.Context, voteID uint64, caller string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	vote, err := l.store.GetVote(ctx, voteID)
	if err != nil {
		return err
	}
	if caller == "" || caller != vote.Creator {
		return ErrUnauthorized
	}
	if !vote.IsActive {
		return ErrAlreadyClosed
	}

	ev := &Event{Type: EventVoteClosed, VoteID: voteID, Time: l.now().Unix()}
	if err = l.store.CloseVote(ctx, voteID, ev); err != nil {
		if KindOf(err) != "" {
			return err
		}
		return errors.Wrapf(err, "closing vote %d", voteID)
	}

	l.emit(*ev)
	return nil
}

func (l *Ledger) GetVote(ctx context.Context, voteID uint64) (*Vote, error) {
	return l.store.GetVote(ctx, voteID)
}

func (l *Ledger) GetVoteDetails(ctx context.Context, voteID uint64) (*VoteDetails, error) {
	vote, err := l.store.GetVote(ctx, voteID)
	if err != nil {
		return nil, err
	}
	return vote.Details(), nil
}

func (l *Ledger) GetVoteOptionsCount(ctx context.Context, voteID uint64) (int, error) {
	vote, err := l.store.GetVote(ctx, voteID)
	if err != nil {
		return 0, err
	}
	return len(vote.Options), nil
}

func (l *Ledger) GetVoteOption(ctx context.Context, voteID uint64, index int) (*VoteOption, error) {
	vote, err := l.store.GetVote(ctx, voteID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(vote.Options) {
		return nil, ErrInvalidOption
	}
	option := vote.Options[index]
	return &option, nil
}

// GetActiveVoteIds scans every vote; there is no index on status.
func (l *Ledger) GetActiveVoteIds(ctx context.Context) ([]uint64, error) {
	votes, err := l.store.ListVotes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing votes")
	}

	now := l.now().Unix()
	ids := make([]uint64, 0)
	for _, v := range votes {
		if IsOpen(v.IsActive, v.StartTime, v.EndTime, now) {
			ids = append(ids, v.ID)
		}
	}
	return ids, nil
}

// HasVoted treats unknown votes and addresses as "has not voted".
func (l *Ledger) HasVoted(ctx context.Context, voteID uint64, address string) (bool, error) {
	return l.store.HasVoted(ctx, voteID, address)
}

func (l *Ledger) VoteStatus(ctx context.Context, voteID uint64) (Status, error) {
	vote, err := l.store.GetVote(ctx, voteID)
	if err != nil {
		return "", err
	}
	return vote.Status(l.now()), nil
}

func (l *Ledger) Subscribe(buffer int) *Subscription {
	return l.feed.subscribe(buffer)
}

func (l *Ledger) Events(ctx context.Context, after uint64, limit int) ([]Event, error) {
	return l.store.Events(ctx, after, limit)
}

func (l *Ledger) emit(ev Event) {
	logger.WithFields(logrus.Fields{
		"event":  ev.Type,
		"seq":    ev.Seq,
		"voteId": ev.VoteID,
	}).Debug("ledger transition applied")
	l.feed.send(ev)
}
