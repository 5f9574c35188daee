package chain

import (
	"context"
	lru "github.com/hashicorp/golang-lru"
	"github.com/lordralex/ballot/api/logger"
	"github.com/lordralex/ballot/ledger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"sync"
)

var (
	ErrPoolClosed           = errors.New("transaction pool is closed")
	ErrPoolFull             = errors.New("transaction pool is full")
	ErrUnknownTransaction   = errors.New("unknown transaction")
	ErrMalformedTransaction = errors.New("malformed transaction")
)

const (
	defaultQueueSize    = 1024
	defaultReceiptCache = 4096
)

// ReceiptStore keeps receipts past the lifetime of a pool.
type ReceiptStore interface {
	// SaveReceipt stores r, replacing any receipt with the same hash.
	SaveReceipt(ctx context.Context, r *Receipt) error
	// Receipt returns ErrUnknownTransaction when nothing is stored for hash.
	Receipt(ctx context.Context, hash string) (*Receipt, error)
	// NextNonce is one past the highest stored nonce, or 0 when none are stored.
	NextNonce(ctx context.Context) (uint64, error)
}

// Pool accepts transactions and applies them one at a time, in submission order,
// on a single goroutine. Once a transaction is dequeued it is applied even if the
// submitter stopped waiting.
//
// Only the most recent receipts are held in memory. Without a ReceiptStore older
// ones are forgotten.
type Pool struct {
	ledger *ledger.Ledger
	queue  chan *Transaction
	store  ReceiptStore
	recent *lru.Cache

	lock        sync.RWMutex
	nonce       uint64
	nonceLoaded bool
	closed      bool
	pending     map[string]*Transaction

	startOnce sync.Once
	done      chan struct{}
}

type PoolOption func(*poolConfig)

type poolConfig struct {
	store     ReceiptStore
	cacheSize int
}

// WithReceiptStore persists every receipt and serves lookups that miss the cache.
func WithReceiptStore(store ReceiptStore) PoolOption {
	return func(c *poolConfig) {
		c.store = store
	}
}

// WithReceiptCache bounds how many receipts are held in memory.
func WithReceiptCache(size int) PoolOption {
	return func(c *poolConfig) {
		c.cacheSize = size
	}
}

func NewPool(l *ledger.Ledger, queueSize int, opts ...PoolOption) *Pool {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	cfg := &poolConfig{cacheSize: defaultReceiptCache}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cacheSize <= 0 {
		cfg.cacheSize = defaultReceiptCache
	}

	//only errors on a non-positive size
	recent, _ := lru.New(cfg.cacheSize)

	return &Pool{
		ledger:  l,
		queue:   make(chan *Transaction, queueSize),
		store:   cfg.store,
		recent:  recent,
		pending: make(map[string]*Transaction),
		done:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	p.startOnce.Do(func() {
		go p.loop()
	})
}

// Stop refuses new transactions, applies whatever is already queued, then returns.
func (p *Pool) Stop() {
	p.lock.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.lock.Unlock()

	p.Start()
	<-p.done
}

// Submit queues a copy of tx and returns its hash without waiting for it to apply.
func (p *Pool) Submit(tx *Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	if p.closed {
		return "", ErrPoolClosed
	}

	//nonces continue from the stored receipts
	if !p.nonceLoaded && p.store != nil {
		next, err := p.store.NextNonce(context.Background())
		if err != nil {
			return "", errors.Wrap(err, "loading next nonce")
		}
		p.nonce = next
	}
	p.nonceLoaded = true

	queued := *tx
	queued.Nonce = p.nonce
	hash, err := queued.ComputeHash()
	if err != nil {
		return "", err
	}
	queued.Hash = hash

	select {
	case p.queue <- &queued:
	default:
		return "", ErrPoolFull
	}

	p.nonce++
	p.pending[hash] = &queued
	return hash, nil
}

// TransactionReceipt returns (nil, nil) while the transaction is still pending.
func (p *Pool) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	p.lock.RLock()
	_, pending := p.pending[hash]
	p.lock.RUnlock()
	if pending {
		return nil, nil
	}

	if cached, exists := p.recent.Get(hash); exists {
		r := *cached.(*Receipt)
		return &r, nil
	}
	if p.store == nil {
		return nil, ErrUnknownTransaction
	}
	return p.store.Receipt(ctx, hash)
}

func (p *Pool) Pending() int {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return len(p.pending)
}

func (p *Pool) loop() {
	defer close(p.done)
	for tx := range p.queue {
		p.apply(tx)
	}
}

func (p *Pool) apply(tx *Transaction) {
	//applying is not cancellable; the submitter may be long gone
	ctx := ledger.WithTx(context.Background(), ledger.TxRef{Hash: tx.Hash, Nonce: tx.Nonce, Kind: string(tx.Kind)})
	receipt := &Receipt{TxHash: tx.Hash, Nonce: tx.Nonce, Kind: tx.Kind}

	var err error
	switch tx.Kind {
	case TxCreateVote:
		args := tx.CreateVote
		receipt.VoteID, err = p.ledger.CreateVote(ctx, tx.From, args.Title, args.Description, args.Options, args.StartTime, args.EndTime)
	case TxCastVote:
		receipt.VoteID = tx.CastVote.VoteID
		err = p.ledger.CastVote(ctx, tx.CastVote.VoteID, tx.CastVote.OptionIndex, tx.From)
	case TxCloseVote:
		receipt.VoteID = tx.CloseVote.VoteID
		err = p.ledger.CloseVote(ctx, tx.CloseVote.VoteID, tx.From)
	}

	receipt.Status = ReceiptSuccess
	if err != nil {
		receipt.Status = ReceiptFailed
		receipt.ErrorKind = ledger.KindOf(err)
		receipt.Error = err.Error()
		if receipt.ErrorKind == "" {
			logger.Err().Printf("transaction %s failed: %s\n", tx.Hash, err.Error())
		}
	}
	receipt.AppliedAt = p.ledger.Now().Unix()

	if p.store != nil {
		if err = p.store.SaveReceipt(ctx, receipt); err != nil {
			logger.Err().Printf("unable to store receipt for %s: %s\n", tx.Hash, err.Error())
		}
	}

	//cached before it stops being pending so a lookup never sees neither
	p.recent.Add(tx.Hash, receipt)
	p.lock.Lock()
	delete(p.pending, tx.Hash)
	p.lock.Unlock()

	logger.WithFields(logrus.Fields{
		"tx":     tx.Hash,
		"kind":   tx.Kind,
		"from":   tx.From,
		"status": receipt.Status,
		"error":  receipt.ErrorKind,
	}).Debug("transaction applied")
}
