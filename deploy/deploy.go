package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/eurium-labs/eurium-contract/rpc/access"
	"github.com/eurium-labs/eurium-contract/rpc/eurium"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"go.uber.org/zap"
)

// Blockchain groups services of the Neo network required for deployment.
type Blockchain interface {
	// GetContractStateByHash returns network state of the smart contract by
	// its address. It returns an error if the contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Actor signs and sends deployment transactions on behalf of a single
// account.
type Actor interface {
	management.Actor
	eurium.Actor

	// Sender returns account paying for and signing the transactions.
	Sender() util.Uint160

	// Wait waits for the transaction to be accepted and returns its
	// execution result.
	Wait(h util.Uint256, vub uint32, err error) (*state.AppExecResult, error)
}

// Contracts groups compiled Eurium contracts.
type Contracts struct {
	Ledger         CommonDeployPrm
	ReserveManager CommonDeployPrm
	Treasury       CommonDeployPrm
}

// Roles groups initial role holders. A single account may hold several roles.
type Roles struct {
	Admin      util.Uint160
	Pauser     util.Uint160
	Minter     util.Uint160
	Upgrader   util.Uint160
	Auditor    util.Uint160
	Manager    util.Uint160
	Withdrawer util.Uint160
}

// Limits groups initial supply cap and daily limits in base units of the
// corresponding tokens. Nil values select contract defaults.
type Limits struct {
	MaxSupply            *big.Int
	DailyMintLimit       *big.Int
	DailyWithdrawalLimit *big.Int
}

// Prm groups all parameters of the Eurium deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	Blockchain Blockchain

	// Deploying account. It must be the Admin to grant MINTER role of the
	// ledger to the reserve manager.
	Actor Actor

	Contracts Contracts
	Roles     Roles
	Limits    Limits
}

// Result contains addresses of the deployed contracts.
type Result struct {
	Ledger         util.Uint160
	ReserveManager util.Uint160
	Treasury       util.Uint160
}

// Deploy deploys ledger, reserve manager and treasury contracts and grants
// MINTER role of the ledger to the reserve manager.
//
// Contracts already present on the chain are not redeployed, so Deploy may
// be called again after a partial failure.
func Deploy(ctx context.Context, prm Prm) (Result, error) {
	var res Result

	sender := prm.Actor.Sender()
	res.Ledger = prm.Contracts.Ledger.Hash(sender)
	res.ReserveManager = prm.Contracts.ReserveManager.Hash(sender)
	res.Treasury = prm.Contracts.Treasury.Hash(sender)

	steps := []struct {
		name    string
		address util.Uint160
		prm     CommonDeployPrm
		args    []any
	}{
		{
			name:    "ledger",
			address: res.Ledger,
			prm:     prm.Contracts.Ledger,
			args: []any{
				prm.Roles.Admin, prm.Roles.Pauser, prm.Roles.Minter,
				prm.Roles.Upgrader, prm.Roles.Auditor, orZero(prm.Limits.MaxSupply),
			},
		},
		{
			name:    "reserve manager",
			address: res.ReserveManager,
			prm:     prm.Contracts.ReserveManager,
			args: []any{
				res.Ledger, prm.Roles.Admin, prm.Roles.Manager, orZero(prm.Limits.DailyMintLimit),
			},
		},
		{
			name:    "treasury",
			address: res.Treasury,
			prm:     prm.Contracts.Treasury,
			args: []any{
				prm.Roles.Admin, prm.Roles.Withdrawer, orZero(prm.Limits.DailyWithdrawalLimit),
			},
		},
	}

	mgmt := management.New(prm.Actor)

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		l := prm.Logger.With(zap.String("contract", s.name), zap.Stringer("address", s.address))

		if _, err := prm.Blockchain.GetContractStateByHash(s.address); err == nil {
			l.Info("contract is already deployed, skip")
			continue
		}

		l.Info("deploying contract...")

		_, err := checkHalt(prm.Actor.Wait(mgmt.Deploy(s.prm.NEF, s.prm.Manifest, s.args)))
		if err != nil {
			return res, fmt.Errorf("deploy %s contract: %w", s.name, err)
		}

		l.Info("contract successfully deployed")
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	err := grantGatewayMinter(prm, res)
	if err != nil {
		return res, fmt.Errorf("grant %s role to reserve manager: %w", access.RoleMinter, err)
	}

	return res, nil
}

func grantGatewayMinter(prm Prm, res Result) error {
	ledger := eurium.New(prm.Actor, res.Ledger)

	ok, err := ledger.HasRole(access.RoleMinter, res.ReserveManager)
	if err != nil {
		return fmt.Errorf("check role: %w", err)
	}
	if ok {
		prm.Logger.Debug("reserve manager already holds MINTER role")
		return nil
	}

	if !prm.Actor.Sender().Equals(prm.Roles.Admin) {
		prm.Logger.Warn("deployer is not an ADMIN, MINTER role of the reserve manager must be granted manually",
			zap.Stringer("reserve manager", res.ReserveManager))
		return nil
	}

	_, err = checkHalt(prm.Actor.Wait(ledger.GrantRole(access.RoleMinter, res.ReserveManager)))
	if err != nil {
		return err
	}

	prm.Logger.Info("MINTER role granted to reserve manager", zap.Stringer("reserve manager", res.ReserveManager))

	return nil
}

// checkHalt returns an error if the transaction has not been executed
// successfully.
func checkHalt(r *state.AppExecResult, err error) (*state.AppExecResult, error) {
	if err != nil {
		return nil, err
	}
	if r.VMState != vmstate.Halt {
		if r.FaultException == "" {
			return nil, errors.New("transaction failed")
		}
		return nil, fmt.Errorf("transaction failed: %s", r.FaultException)
	}

	return r, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}

	return v
}
