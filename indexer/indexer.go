// Package indexer mirrors Eurium contracts off-chain.
//
// Indexer polls the Neo node for new blocks, feeds notifications of the
// ledger, reserve manager and treasury contracts into Mirror one block at a
// time, persists the resulting state in Postgres and exports metrics. The
// mirror checks supply invariants after every block and stops the indexer
// when they break. A read-only HTTP API serves the mirrored figures to
// auditors.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/block"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
)

// DefaultInterval is used when Prm.Interval is not set.
const DefaultInterval = 5 * time.Second

// Chain provides blocks and execution results of the Neo network.
// [rpcclient.Client] implements it.
type Chain interface {
	GetBlockCount() (uint32, error)
	GetBlockByIndex(index uint32) (*block.Block, error)
	GetApplicationLog(hash util.Uint256, trig *trigger.Type) (*result.ApplicationLog, error)
}

// Store persists block changes.
type Store interface {
	Save(Changes) error
}

// Prm groups Indexer parameters.
type Prm struct {
	Logger *zap.Logger
	Chain  Chain
	Mirror *Mirror

	// Optional.
	Store   Store
	Metrics *Metrics

	// Pause between synchronizations with the chain head.
	Interval time.Duration
}

// Indexer follows the chain and keeps the mirror up to date.
type Indexer struct {
	log      *zap.Logger
	chain    Chain
	mirror   *Mirror
	store    Store
	metrics  *Metrics
	interval time.Duration
}

// New creates Indexer.
func New(prm Prm) *Indexer {
	if prm.Interval <= 0 {
		prm.Interval = DefaultInterval
	}

	return &Indexer{
		log:      prm.Logger,
		chain:    prm.Chain,
		mirror:   prm.Mirror,
		store:    prm.Store,
		metrics:  prm.Metrics,
		interval: prm.Interval,
	}
}

// Run synchronizes the mirror until the context is done. Network and
// database failures are retried on the next tick, an invariant violation
// stops the indexer.
func (x *Indexer) Run(ctx context.Context) error {
	t := time.NewTicker(x.interval)
	defer t.Stop()

	for {
		err := x.Sync(ctx)
		switch {
		case errors.Is(err, ErrInvariantViolated):
			return err
		case errors.Is(err, context.Canceled):
			return nil
		case err != nil:
			x.log.Error("synchronization failed", zap.Error(err))
			if x.metrics != nil {
				x.metrics.incErrors()
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

// Sync applies all blocks accepted by the network since the last call.
func (x *Indexer) Sync(ctx context.Context) error {
	count, err := x.chain.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get block count: %w", err)
	}

	for h := x.mirror.Height(); h < count; h++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		b, err := x.fetch(h)
		if err != nil {
			return err
		}

		var persist func(Changes) error
		if x.store != nil {
			persist = x.store.Save
		}

		ch, err := x.mirror.ApplyWith(b, persist)
		if err != nil {
			if errors.Is(err, ErrInvariantViolated) {
				x.log.Error("mirrored state is inconsistent, stopping", zap.Uint32("block", h), zap.Error(err))
				if x.metrics != nil {
					x.metrics.incViolations()
				}
			}
			return fmt.Errorf("apply block %d: %w", h, err)
		}

		if len(ch.Events) != 0 {
			x.log.Debug("block applied", zap.Uint32("block", h), zap.Any("events", ch.Events))
		}
		if x.metrics != nil {
			x.metrics.observe(ch, x.mirror.Supply())
		}
	}

	return nil
}

func (x *Indexer) fetch(index uint32) (Block, error) {
	b, err := x.chain.GetBlockByIndex(index)
	if err != nil {
		return Block{}, fmt.Errorf("get block %d: %w", index, err)
	}

	res := Block{
		Index: index,
		Logs:  make([]*result.ApplicationLog, 0, len(b.Transactions)),
	}

	trig := trigger.Application
	for _, tx := range b.Transactions {
		log, err := x.chain.GetApplicationLog(tx.Hash(), &trig)
		if err != nil {
			return Block{}, fmt.Errorf("get application log of %s: %w", tx.Hash().StringLE(), err)
		}
		res.Logs = append(res.Logs, log)
	}

	return res, nil
}
