package api

import (
	"context"
	"github.com/lordralex/ballot/api/logger"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/ledger"
)

// Follow hands every event applied after the call to handle, in sequence order, until
// ctx is done. Events a full subscription dropped are read back from the event log.
func Follow(ctx context.Context, node *chain.Node, buffer int, handle func(ledger.Event)) {
	sub := node.Subscribe(buffer)
	defer sub.Unsubscribe()

	var last uint64
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			if ev.Seq <= last {
				continue
			}

			if last != 0 && ev.Seq > last+1 {
				missed, err := node.Events(ctx, last, int(ev.Seq-last-1))
				if err != nil {
					logger.Err().Printf("Unable to read events %d to %d: %s\n", last+1, ev.Seq-1, err)
				}
				for _, m := range missed {
					handle(m)
				}
			}

			handle(ev)
			last = ev.Seq
		}
	}
}
