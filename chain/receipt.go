package chain

import (
	"github.com/lordralex/ballot/ledger"
	"github.com/pkg/errors"
)

type ReceiptStatus string

const (
	ReceiptSuccess ReceiptStatus = "success"
	ReceiptFailed  ReceiptStatus = "failed"
)

// Receipt is the outcome of an applied transaction. VoteID is the created vote for
// createVote and the targeted vote otherwise.
type Receipt struct {
	TxHash    string        `json:"txHash"`
	Nonce     uint64        `json:"nonce"`
	Kind      TxKind        `json:"kind"`
	Status    ReceiptStatus `json:"status"`
	ErrorKind string        `json:"errorKind,omitempty"`
	Error     string        `json:"error,omitempty"`
	VoteID    uint64        `json:"voteId"`
	AppliedAt int64         `json:"appliedAt"`
}

// Err turns a failed receipt back into the ledger error that caused it.
func (r *Receipt) Err() error {
	if r.Status == ReceiptSuccess {
		return nil
	}
	if err := ledger.ErrorForKind(r.ErrorKind); err != nil {
		return err
	}
	return errors.Errorf("transaction %s failed: %s", r.TxHash, r.Error)
}
