package ledger

import "context"

// TxRef names the pool transaction a write is applied for. A Store that keeps
// receipts records a successful one in the same atomic unit as the write.
type TxRef struct {
	Hash  string
	Nonce uint64
	Kind  string
}

type txRefKey struct{}

func WithTx(ctx context.Context, ref TxRef) context.Context {
	return context.WithValue(ctx, txRefKey{}, ref)
}

// TxFrom returns the transaction ctx was tagged with by WithTx, if any.
func TxFrom(ctx context.Context) (TxRef, bool) {
	ref, ok := ctx.Value(txRefKey{}).(TxRef)
	return ref, ok && ref.Hash != ""
}
