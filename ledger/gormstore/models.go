package gormstore

import "time"

type Vote struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement:false"`
	Title       string
	Description string `gorm:"type:text"`
	Creator     string `gorm:"size:128;index"`
	StartTime   int64
	EndTime     int64
	IsActive    bool
	TotalVotes  uint64
	CreatedAt   time.Time
}

type Option struct {
	VoteID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	Idx       int    `gorm:"primaryKey;autoIncrement:false"`
	Text      string
	VoteCount uint64
}

// Voter is the exactly-once marker; the composite key rejects a second row per (vote, address).
type Voter struct {
	VoteID    uint64 `gorm:"primaryKey;autoIncrement:false"`
	Address   string `gorm:"primaryKey;size:128"`
	Idx       int
	CreatedAt time.Time
}

type Event struct {
	Seq         uint64 `gorm:"primaryKey;autoIncrement"`
	Type        string `gorm:"size:32"`
	VoteID      uint64 `gorm:"index"`
	Title       string
	Creator     string `gorm:"size:128"`
	OptionIndex int
	Voter       string `gorm:"size:128"`
	Time        int64
}

// Receipt is keyed by transaction hash. Successful ones are written with the state
// change they confirm.
type Receipt struct {
	Hash      string `gorm:"primaryKey;size:66"`
	Nonce     uint64 `gorm:"index"`
	Kind      string `gorm:"size:16"`
	Status    string `gorm:"size:16"`
	ErrorKind string `gorm:"size:32"`
	Error     string `gorm:"type:text"`
	VoteID    uint64
	AppliedAt int64
}

func (Vote) TableName() string {
	return "ledger_votes"
}

func (Option) TableName() string {
	return "ledger_options"
}

func (Voter) TableName() string {
	return "ledger_voters"
}

func (Event) TableName() string {
	return "ledger_events"
}

func (Receipt) TableName() string {
	return "ledger_receipts"
}
