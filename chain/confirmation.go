// Copyright © 2018 Kowala SEZC <info@kowala.tech>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Modified from github.com/kowala-tech/equilibrium common/transaction/confirmation.go:
// polls ledger receipts with a configurable interval instead of mined transactions.

package chain

import (
	"context"
	"github.com/lordralex/ballot/api/logger"
	"time"
)

type Backend interface {
	TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error)
}

// WaitMinedWithTimeout waits for tx to be applied within a given period of time.
func WaitMinedWithTimeout(backend Backend, txHash string, duration, interval time.Duration) (*Receipt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()
	return WaitMined(ctx, backend, txHash, interval)
}

// WaitMined polls for the receipt of tx until it exists or ctx is done.
// A context error does not mean the transaction was dropped.
func WaitMined(ctx context.Context, backend Backend, txHash string, interval time.Duration) (*Receipt, error) {
	if interval <= 0 {
		interval = time.Second
	}
	queryTicker := time.NewTicker(interval)
	defer queryTicker.Stop()

	for {
		receipt, err := backend.TransactionReceipt(ctx, txHash)
		if receipt != nil {
			return receipt, nil
		}
		if err != nil {
			return nil, err
		}
		logger.Debug().Printf("Transaction %s not yet applied\n", txHash)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-queryTicker.C:
		}
	}
}
