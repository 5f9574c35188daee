package client

import (
	"context"
	"github.com/lordralex/ballot/api/env"
	"github.com/lordralex/ballot/api/logger"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/ledger"
	"github.com/pkg/errors"
	"time"
)

type Config struct {
	// ConfirmTimeout bounds how long a write waits for its receipt.
	ConfirmTimeout time.Duration
	// ConfirmInterval is the receipt polling period.
	ConfirmInterval time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		ConfirmTimeout:  env.GetDurationOr("client.confirm.timeout", 30*time.Second),
		ConfirmInterval: env.GetDurationOr("client.confirm.interval", 250*time.Millisecond),
	}
}

type CreateResult struct {
	VoteID uint64 `json:"voteId"`
	TxHash string `json:"txHash"`
}

type TxResult struct {
	TxHash string `json:"txHash"`
}

// Client turns UI actions into ledger transactions and queries, and ledger answers
// into view models. It never retries a write on its own.
type Client struct {
	backend Backend
	wallet  Wallet
	cfg     Config
	now     func() time.Time
}

func New(backend Backend, wallet Wallet, cfg Config) *Client {
	if wallet == nil {
		wallet = StaticWallet("")
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 30 * time.Second
	}
	if cfg.ConfirmInterval <= 0 {
		cfg.ConfirmInterval = 250 * time.Millisecond
	}
	return &Client{backend: backend, wallet: wallet, cfg: cfg, now: time.Now}
}

// WithWallet returns a client acting for another wallet over the same backend.
func (c *Client) WithWallet(wallet Wallet) *Client {
	clone := *c
	if wallet == nil {
		wallet = StaticWallet("")
	}
	clone.wallet = wallet
	return &clone
}

// WithClock replaces the clock used for status and time-left labels.
func (c *Client) WithClock(now func() time.Time) *Client {
	clone := *c
	clone.now = now
	return &clone
}

func (c *Client) CreateVote(ctx context.Context, form VoteForm) (*CreateResult, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	from, err := c.address()
	if err != nil {
		return nil, err
	}

	tx := chain.NewCreateVote(from, chain.CreateVoteArgs{
		Title:       form.Title,
		Description: form.Description,
		Options:     form.Options,
		StartTime:   form.StartDate.Unix(),
		EndTime:     form.EndDate.Unix(),
	})

	receipt, hash, err := c.transact(ctx, tx)
	if err != nil {
		if hash != "" {
			return &CreateResult{TxHash: hash}, err
		}
		return nil, err
	}
	return &CreateResult{VoteID: receipt.VoteID, TxHash: hash}, nil
}

func (c *Client) CastVote(ctx context.Context, voteID uint64, optionIndex int) (*TxResult, error) {
	from, err := c.address()
	if err != nil {
		return nil, err
	}
	return c.result(c.transact(ctx, chain.NewCastVote(from, voteID, optionIndex)))
}

func (c *Client) CloseVote(ctx context.Context, voteID uint64) (*TxResult, error) {
	from, err := c.address()
	if err != nil {
		return nil, err
	}
	return c.result(c.transact(ctx, chain.NewCloseVote(from, voteID)))
}

func (c *Client) ListActiveVotes(ctx context.Context) ([]*VoteView, error) {
	ids, err := c.backend.GetActiveVoteIds(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*VoteView, 0, len(ids))
	for _, id := range ids {
		view, err := c.GetVoteView(ctx, id)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (c *Client) GetVoteView(ctx context.Context, voteID uint64) (*VoteView, error) {
	details, err := c.backend.GetVoteDetails(ctx, voteID)
	if err != nil {
		return nil, err
	}

	count, err := c.backend.GetVoteOptionsCount(ctx, voteID)
	if err != nil {
		return nil, err
	}

	options := make([]ledger.VoteOption, count)
	for i := 0; i < count; i++ {
		option, err := c.backend.GetVoteOption(ctx, voteID, i)
		if err != nil {
			return nil, err
		}
		options[i] = *option
	}

	view := buildView(voteID, details, options, c.now())

	if address, err := c.wallet.CurrentAddress(); err == nil {
		view.HasVoted, err = c.backend.HasVoted(ctx, voteID, address)
		if err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (c *Client) address() (string, error) {
	address, err := c.wallet.CurrentAddress()
	if err != nil {
		return "", err
	}
	if address == "" {
		return "", ErrWalletNotConnected
	}
	return address, nil
}

// transact submits tx and waits for its receipt. On a confirmation timeout the hash
// is still returned: the transition may apply later.
func (c *Client) transact(ctx context.Context, tx *chain.Transaction) (*chain.Receipt, string, error) {
	hash, err := c.backend.SubmitTransaction(ctx, tx)
	if err != nil {
		return nil, "", err
	}

	waitCtx, cancel := context.WithTimeout(ctx, c.cfg.ConfirmTimeout)
	defer cancel()

	receipt, err := chain.WaitMined(waitCtx, c.backend, hash, c.cfg.ConfirmInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Err().Printf("transaction %s not confirmed within %s\n", hash, c.cfg.ConfirmTimeout)
			return nil, hash, errors.Wrap(ErrConfirmationTimeout, hash)
		}
		return nil, hash, err
	}

	if err = receipt.Err(); err != nil {
		return receipt, hash, err
	}
	return receipt, hash, nil
}

func (c *Client) result(_ *chain.Receipt, hash string, err error) (*TxResult, error) {
	if hash == "" {
		return nil, err
	}
	return &TxResult{TxHash: hash}, err
}
