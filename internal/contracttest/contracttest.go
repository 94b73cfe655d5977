// Package contracttest deploys Eurium contracts to a neotest chain.
package contracttest

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/eurium-labs/eurium-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// Contract directory names.
const (
	Ledger         = "eurium"
	ReserveManager = "reservemanager"
	Treasury       = "treasury"
)

// Path returns source directory of the named contract.
func Path(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "contracts", name)
}

// NewExecutor creates executor over a fresh single-node chain.
func NewExecutor(t testing.TB) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// Compile compiles the named contract with its config.yml.
func Compile(t testing.TB, e *neotest.Executor, name string) *neotest.Contract {
	p := Path(name)
	return neotest.CompileFile(t, e.CommitteeHash, p, filepath.Join(p, "config.yml"))
}

// Options holds deployment parameters, zero values select contract defaults.
type Options struct {
	MaxSupply            int64
	DailyMintLimit       int64
	DailyWithdrawalLimit int64
}

// Env is a chain with all Eurium contracts deployed and role holders as
// distinct accounts.
type Env struct {
	*neotest.Executor

	Ledger   util.Uint160
	Gateway  util.Uint160
	Treasury util.Uint160

	Admin      neotest.Signer
	Pauser     neotest.Signer
	Minter     neotest.Signer
	Upgrader   neotest.Signer
	Auditor    neotest.Signer
	Manager    neotest.Signer
	Withdrawer neotest.Signer
}

// NewEnv deploys ledger, reserve manager and treasury and grants MINTER role
// of the ledger to the reserve manager.
func NewEnv(t testing.TB, opts Options) *Env {
	e := NewExecutor(t)

	env := &Env{
		Executor:   e,
		Admin:      e.NewAccount(t),
		Pauser:     e.NewAccount(t),
		Minter:     e.NewAccount(t),
		Upgrader:   e.NewAccount(t),
		Auditor:    e.NewAccount(t),
		Manager:    e.NewAccount(t),
		Withdrawer: e.NewAccount(t),
	}

	ledger := Compile(t, e, Ledger)
	e.DeployContract(t, ledger, []any{
		env.Admin.ScriptHash(),
		env.Pauser.ScriptHash(),
		env.Minter.ScriptHash(),
		env.Upgrader.ScriptHash(),
		env.Auditor.ScriptHash(),
		opts.MaxSupply,
	})
	env.Ledger = ledger.Hash

	gateway := Compile(t, e, ReserveManager)
	e.DeployContract(t, gateway, []any{
		env.Ledger,
		env.Admin.ScriptHash(),
		env.Manager.ScriptHash(),
		opts.DailyMintLimit,
	})
	env.Gateway = gateway.Hash

	treasury := Compile(t, e, Treasury)
	e.DeployContract(t, treasury, []any{
		env.Admin.ScriptHash(),
		env.Withdrawer.ScriptHash(),
		opts.DailyWithdrawalLimit,
	})
	env.Treasury = treasury.Hash

	env.LedgerInvoker(env.Admin).Invoke(t, stackitem.Null{}, "grantRole", common.RoleMinter, env.Gateway)

	return env
}

// LedgerInvoker returns invoker of the ledger signed by the given accounts.
func (env *Env) LedgerInvoker(signers ...neotest.Signer) *neotest.ContractInvoker {
	return env.NewInvoker(env.Ledger, signers...)
}

// GatewayInvoker returns invoker of the reserve manager signed by the given accounts.
func (env *Env) GatewayInvoker(signers ...neotest.Signer) *neotest.ContractInvoker {
	return env.NewInvoker(env.Gateway, signers...)
}

// TreasuryInvoker returns invoker of the treasury signed by the given accounts.
func (env *Env) TreasuryInvoker(signers ...neotest.Signer) *neotest.ContractInvoker {
	return env.NewInvoker(env.Treasury, signers...)
}

// GASInvoker returns invoker of the native GAS contract signed by the given accounts.
func (env *Env) GASInvoker(t testing.TB, signers ...neotest.Signer) *neotest.ContractInvoker {
	return env.NewInvoker(env.NativeHash(t, nativenames.Gas), signers...)
}

// Mint issues tokens to the account on behalf of the MINTER.
func (env *Env) Mint(t testing.TB, to util.Uint160, amount int64) {
	env.LedgerInvoker(env.Minter).Invoke(t, stackitem.Null{}, "mint", to, amount)
}

// SkipDay adds a block one day after the current top block so that every
// daily limit window started before it expires.
func (env *Env) SkipDay(t testing.TB) {
	b := env.NewUnsignedBlock(t)
	b.Timestamp = env.TopBlock(t).Timestamp + common.DayMs
	require.NoError(t, env.Chain.AddBlock(env.SignBlock(b)))
}
