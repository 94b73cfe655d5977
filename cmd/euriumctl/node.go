package main

import (
	"context"
	"fmt"

	"github.com/eurium-labs/eurium-contract/config"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
)

// remoteBlockchain wraps connection to the Neo RPC server. actor is set only
// when the node is dialed with a signer.
type remoteBlockchain struct {
	rpc     *rpcclient.Client
	invoker *invoker.Invoker
	actor   *actor.Actor
}

// dialNode connects to the RPC server from the configuration. With signer
// set the configured wallet account is opened for sending transactions.
func dialNode(ctx context.Context, cfg *config.Config, signer bool) (*remoteBlockchain, error) {
	var acc *wallet.Account

	if signer {
		if err := cfg.CheckSigner(); err != nil {
			return nil, err
		}

		var err error
		acc, err = openAccount(cfg.Wallet)
		if err != nil {
			return nil, err
		}
	} else if err := cfg.CheckNode(); err != nil {
		return nil, err
	}

	c, err := rpcclient.New(ctx, cfg.RPCEndpoint, rpcclient.Options{
		DialTimeout:    cfg.Timeout,
		RequestTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init RPC client: %w", err)
	}

	res := &remoteBlockchain{
		rpc:     c,
		invoker: invoker.New(c, nil),
	}

	if acc != nil {
		res.actor, err = actor.NewSimple(c, acc)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("init actor: %w", err)
		}
	}

	return res, nil
}

func openAccount(prm config.Wallet) (*wallet.Account, error) {
	w, err := wallet.NewWalletFromFile(prm.Path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	h := w.GetChangeAddress()
	if prm.Address != "" {
		h, err = config.ParseAddress(prm.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: wallet address", config.ErrInvalidAddress)
		}
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s is missing in the wallet", h.StringLE())
	}

	err = acc.Decrypt(prm.Password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account: %w", err)
	}

	return acc, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// wait waits for the transaction to be persisted and checks that it has been
// executed successfully. It returns the execution log.
func (x *remoteBlockchain) wait(h util.Uint256, vub uint32, err error) (*result.ApplicationLog, error) {
	res, err := x.actor.Wait(h, vub, err)
	if err != nil {
		return nil, err
	}

	if res.VMState != vmstate.Halt {
		return nil, fmt.Errorf("transaction %s failed: %s", h.StringLE(), res.FaultException)
	}

	return &result.ApplicationLog{
		Container:  res.Container,
		Executions: []state.Execution{res.Execution},
	}, nil
}

// iterateContractStorage iterates over all storage items of the contract at
// the latest state root and passes them into f. It breaks on any f's error
// and returns it.
func (x *remoteBlockchain) iterateContractStorage(contract util.Uint160, f func(key, value []byte) error) error {
	nLatestBlock, err := x.rpc.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get number of the latest block: %w", err)
	}

	stateRoot, err := x.rpc.GetStateRootByHeight(nLatestBlock - 1)
	if err != nil {
		return fmt.Errorf("get state root at block #%d: %w", nLatestBlock-1, err)
	}

	var start []byte

	for {
		res, err := x.rpc.FindStates(stateRoot.Root, contract, nil, start, nil)
		if err != nil {
			return fmt.Errorf("find storage items at state root %s: %w", stateRoot.Root, err)
		}

		for i := range res.Results {
			err = f(res.Results[i].Key, res.Results[i].Value)
			if err != nil {
				return err
			}
		}

		if !res.Truncated {
			return nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}
