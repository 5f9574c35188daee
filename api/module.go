package api

import (
	"context"
	"github.com/lordralex/ballot/chain"
)

// Module is an optional surface over a running node. Load must not block; work that
// outlives it stops when ctx is cancelled.
type Module interface {
	Load(ctx context.Context, node *chain.Node) error
	Name() string
}
