package gormstore

import (
	"context"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/ledger"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ledger.Store = (*Store)(nil)
var _ chain.ReceiptStore = (*Store)(nil)

// Store persists the ledger and transaction receipts through gorm. Every write runs in
// one database transaction.
type Store struct {
	db *gorm.DB
}

// New migrates the ledger tables and returns a store over db.
func New(db *gorm.DB) (*Store, error) {
	err := db.AutoMigrate(&Vote{}, &Option{}, &Voter{}, &Event{}, &Receipt{})
	if err != nil {
		return nil, errors.Wrap(err, "migrating ledger tables")
	}
	return &Store{db: db}, nil
}

func (s *Store) VoteCount(ctx context.Context) (uint64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Vote{}).Count(&count).Error
	return uint64(count), err
}

func (s *Store) InsertVote(ctx context.Context, vote *ledger.Vote, ev *ledger.Event) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&Vote{
			ID:          vote.ID,
			Title:       vote.Title,
			Description: vote.Description,
			Creator:     vote.Creator,
			StartTime:   vote.StartTime,
			EndTime:     vote.EndTime,
			IsActive:    vote.IsActive,
			TotalVotes:  vote.TotalVotes,
		}).Error
		if err != nil {
			return err
		}

		options := make([]Option, len(vote.Options))
		for k, v := range vote.Options {
			options[k] = Option{VoteID: vote.ID, Idx: k, Text: v.Text, VoteCount: v.VoteCount}
		}
		if err = tx.Create(&options).Error; err != nil {
			return err
		}

		return appendEvent(ctx, tx, ev)
	})
}

func (s *Store) GetVote(ctx context.Context, id uint64) (*ledger.Vote, error) {
	var result *ledger.Vote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := &Vote{}
		err := tx.Where("id = ?", id).Take(record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ledger.ErrVoteNotFound
		}
		if err != nil {
			return err
		}

		var options []Option
		err = tx.Where("vote_id = ?", id).Order("idx asc").Find(&options).Error
		if err != nil {
			return err
		}

		result = toVote(record, options)
		return nil
	})
	return result, err
}

func (s *Store) ListVotes(ctx context.Context) ([]*ledger.Vote, error) {
	var records []Vote
	var options []Option
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id asc").Find(&records).Error; err != nil {
			return err
		}
		return tx.Order("vote_id asc, idx asc").Find(&options).Error
	})
	if err != nil {
		return nil, err
	}

	byVote := make(map[uint64][]Option)
	for _, v := range options {
		byVote[v.VoteID] = append(byVote[v.VoteID], v)
	}

	result := make([]*ledger.Vote, 0, len(records))
	for k := range records {
		result = append(result, toVote(&records[k], byVote[records[k].ID]))
	}
	return result, nil
}

func (s *Store) HasVoted(ctx context.Context, id uint64, voter string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Voter{}).Where("vote_id = ? AND address = ?", id, voter).Count(&count).Error
	return count > 0, err
}

func (s *Store) RecordVote(ctx context.Context, id uint64, optionIndex int, voter string, ev *ledger.Event) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Voter{}).Where("vote_id = ? AND address = ?", id, voter).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ledger.ErrAlreadyVoted
		}

		res := tx.Model(&Option{}).Where("vote_id = ? AND idx = ?", id, optionIndex).
			UpdateColumn("vote_count", gorm.Expr("vote_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ledger.ErrInvalidOption
		}

		res = tx.Model(&Vote{}).Where("id = ?", id).UpdateColumn("total_votes", gorm.Expr("total_votes + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ledger.ErrVoteNotFound
		}

		if err = tx.Create(&Voter{VoteID: id, Address: voter, Idx: optionIndex}).Error; err != nil {
			return err
		}

		return appendEvent(ctx, tx, ev)
	})
}

func (s *Store) CloseVote(ctx context.Context, id uint64, ev *ledger.Event) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Vote{}).Where("id = ? AND is_active = ?", id, true).UpdateColumn("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&Vote{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ledger.ErrVoteNotFound
			}
			return ledger.ErrAlreadyClosed
		}

		return appendEvent(ctx, tx, ev)
	})
}

func (s *Store) Events(ctx context.Context, after uint64, limit int) ([]ledger.Event, error) {
	query := s.db.WithContext(ctx).Where("seq > ?", after).Order("seq asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []Event
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	result := make([]ledger.Event, len(records))
	for k, v := range records {
		result[k] = ledger.Event{
			Seq:         v.Seq,
			Type:        ledger.EventType(v.Type),
			VoteID:      v.VoteID,
			Title:       v.Title,
			Creator:     v.Creator,
			OptionIndex: v.OptionIndex,
			Voter:       v.Voter,
			Time:        v.Time,
		}
	}
	return result, nil
}

func appendEvent(ctx context.Context, tx *gorm.DB, ev *ledger.Event) error {
	record := &Event{
		Type:        string(ev.Type),
		VoteID:      ev.VoteID,
		Title:       ev.Title,
		Creator:     ev.Creator,
		OptionIndex: ev.OptionIndex,
		Voter:       ev.Voter,
		Time:        ev.Time,
	}
	if err := tx.Create(record).Error; err != nil {
		return err
	}
	ev.Seq = record.Seq

	ref, ok := ledger.TxFrom(ctx)
	if !ok {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&Receipt{
		Hash:      ref.Hash,
		Nonce:     ref.Nonce,
		Kind:      ref.Kind,
		Status:    string(chain.ReceiptSuccess),
		VoteID:    ev.VoteID,
		AppliedAt: ev.Time,
	}).Error
}

func (s *Store) SaveReceipt(ctx context.Context, r *chain.Receipt) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&Receipt{
		Hash:      r.TxHash,
		Nonce:     r.Nonce,
		Kind:      string(r.Kind),
		Status:    string(r.Status),
		ErrorKind: r.ErrorKind,
		Error:     r.Error,
		VoteID:    r.VoteID,
		AppliedAt: r.AppliedAt,
	}).Error
}

func (s *Store) Receipt(ctx context.Context, hash string) (*chain.Receipt, error) {
	record := &Receipt{}
	err := s.db.WithContext(ctx).Where("hash = ?", hash).Take(record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chain.ErrUnknownTransaction
	}
	if err != nil {
		return nil, err
	}

	return &chain.Receipt{
		TxHash:    record.Hash,
		Nonce:     record.Nonce,
		Kind:      chain.TxKind(record.Kind),
		Status:    chain.ReceiptStatus(record.Status),
		ErrorKind: record.ErrorKind,
		Error:     record.Error,
		VoteID:    record.VoteID,
		AppliedAt: record.AppliedAt,
	}, nil
}

func (s *Store) NextNonce(ctx context.Context) (uint64, error) {
	var next uint64
	err := s.db.WithContext(ctx).Model(&Receipt{}).Select("COALESCE(MAX(nonce) + 1, 0)").Row().Scan(&next)
	return next, err
}

func toVote(record *Vote, options []Option) *ledger.Vote {
	vote := &ledger.Vote{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		Creator:     record.Creator,
		Options:     make([]ledger.VoteOption, len(options)),
		StartTime:   record.StartTime,
		EndTime:     record.EndTime,
		IsActive:    record.IsActive,
		TotalVotes:  record.TotalVotes,
	}
	for k, v := range options {
		vote.Options[k] = ledger.VoteOption{Text: v.Text, VoteCount: v.VoteCount}
	}
	return vote
}
