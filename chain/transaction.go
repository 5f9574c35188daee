package chain

import (
	"encoding/hex"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

type TxKind string

const (
	TxCreateVote TxKind = "createVote"
	TxCastVote   TxKind = "castVote"
	TxCloseVote  TxKind = "closeVote"
)

type CreateVoteArgs struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	StartTime   int64    `json:"startTime"`
	EndTime     int64    `json:"endTime"`
}

type CastVoteArgs struct {
	VoteID      uint64 `json:"voteId"`
	OptionIndex int    `json:"optionIndex"`
}

type CloseVoteArgs struct {
	VoteID uint64 `json:"voteId"`
}

// Transaction is a state transition submitted on behalf of From. Exactly one of the
// argument blocks is set, matching Kind. Nonce and Hash are filled in by the pool.
type Transaction struct {
	Nonce      uint64          `json:"nonce"`
	From       string          `json:"from"`
	Kind       TxKind          `json:"kind"`
	CreateVote *CreateVoteArgs `json:"createVote,omitempty"`
	CastVote   *CastVoteArgs   `json:"castVote,omitempty"`
	CloseVote  *CloseVoteArgs  `json:"closeVote,omitempty"`
	Hash       string          `json:"hash,omitempty"`
}

func NewCreateVote(from string, args CreateVoteArgs) *Transaction {
	return &Transaction{From: from, Kind: TxCreateVote, CreateVote: &args}
}

func NewCastVote(from string, voteID uint64, optionIndex int) *Transaction {
	return &Transaction{From: from, Kind: TxCastVote, CastVote: &CastVoteArgs{VoteID: voteID, OptionIndex: optionIndex}}
}

func NewCloseVote(from string, voteID uint64) *Transaction {
	return &Transaction{From: from, Kind: TxCloseVote, CloseVote: &CloseVoteArgs{VoteID: voteID}}
}

func (tx *Transaction) Validate() error {
	if tx.From == "" {
		return errors.Wrap(ErrMalformedTransaction, "missing sender")
	}

	var ok bool
	switch tx.Kind {
	case TxCreateVote:
		ok = tx.CreateVote != nil && tx.CastVote == nil && tx.CloseVote == nil
	case TxCastVote:
		ok = tx.CastVote != nil && tx.CreateVote == nil && tx.CloseVote == nil
	case TxCloseVote:
		ok = tx.CloseVote != nil && tx.CreateVote == nil && tx.CastVote == nil
	default:
		return errors.Wrapf(ErrMalformedTransaction, "unknown kind %q", tx.Kind)
	}
	if !ok {
		return errors.Wrapf(ErrMalformedTransaction, "arguments do not match kind %q", tx.Kind)
	}
	return nil
}

// ComputeHash is keccak256 over the JSON encoding of the transaction without its hash.
func (tx *Transaction) ComputeHash() (string, error) {
	unsigned := *tx
	unsigned.Hash = ""

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(&unsigned)
	if err != nil {
		return "", errors.Wrap(err, "encoding transaction")
	}

	hasher := sha3.NewLegacyKeccak256()
	_, _ = hasher.Write(data)
	return "0x" + hex.EncodeToString(hasher.Sum(nil)), nil
}
