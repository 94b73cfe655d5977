package treasury_test

import (
	"testing"

	"github.com/eurium-labs/eurium-contract/common"
	"github.com/eurium-labs/eurium-contract/internal/contracttest"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	gasUnit    = 1_0000_0000
	dailyLimit = 5 * gasUnit

	// initialGAS is the balance of every account created by neotest.
	initialGAS = 100 * gasUnit
)

func newEnv(t *testing.T) *contracttest.Env {
	return contracttest.NewEnv(t, contracttest.Options{DailyWithdrawalLimit: dailyLimit})
}

func deposit(t *testing.T, env *contracttest.Env, amount int64) {
	from := env.NewAccount(t)
	env.GASInvoker(t, from).Invoke(t, true, "transfer", from.ScriptHash(), env.Treasury, amount, nil)
}

func remaining(t *testing.T, c *neotest.ContractInvoker) int64 {
	s, err := c.TestInvoke(t, "remainingDailyWithdrawal")
	require.NoError(t, err)
	return s.Pop().BigInt().Int64()
}

func TestTreasuryGeneric(t *testing.T) {
	env := newEnv(t)
	c := env.TreasuryInvoker(env.Admin)

	c.Invoke(t, dailyLimit, "dailyWithdrawalLimit")
	c.Invoke(t, dailyLimit, "remainingDailyWithdrawal")
	c.Invoke(t, 0, "getBalance", util.Uint160{})
	c.Invoke(t, 0, "getBalance", env.Ledger)
	c.Invoke(t, common.Version, "version")
	c.Invoke(t, true, "hasRole", common.RoleWithdrawer, env.Withdrawer.ScriptHash())
	c.Invoke(t, false, "hasRole", common.RoleWithdrawer, env.Admin.ScriptHash())
}

func TestTreasuryDefaultLimit(t *testing.T) {
	env := contracttest.NewEnv(t, contracttest.Options{})
	env.TreasuryInvoker(env.Admin).Invoke(t, 1_000*gasUnit, "dailyWithdrawalLimit")
}

func TestTreasuryDeposit(t *testing.T) {
	env := newEnv(t)
	c := env.TreasuryInvoker(env.Admin)
	gasHash := env.NativeHash(t, nativenames.Gas)

	from := env.NewAccount(t)
	h := env.GASInvoker(t, from).Invoke(t, true, "transfer", from.ScriptHash(), env.Treasury, 10*gasUnit, nil)

	res := env.GetTxExecResult(t, h)
	var found bool
	for _, ev := range res.Events {
		if ev.Name != "Deposit" {
			continue
		}
		found = true
		require.Equal(t, env.Treasury, ev.ScriptHash)

		params := ev.Item.Value().([]stackitem.Item)
		asset, err := params[0].TryBytes()
		require.NoError(t, err)
		require.Equal(t, gasHash.BytesBE(), asset)
		sender, err := params[1].TryBytes()
		require.NoError(t, err)
		require.Equal(t, from.ScriptHash().BytesBE(), sender)
	}
	require.True(t, found)

	c.Invoke(t, 10*gasUnit, "getBalance", util.Uint160{})
	c.Invoke(t, 10*gasUnit, "getBalance", gasHash)

	env.Mint(t, env.Treasury, 700)
	c.Invoke(t, 700, "getBalance", env.Ledger)
	c.Invoke(t, 10*gasUnit, "getBalance", util.Uint160{})

	t.Run("not from a contract", func(t *testing.T) {
		env.TreasuryInvoker(from).InvokeFail(t, "payment must come from a token contract",
			"onNEP17Payment", from.ScriptHash(), 10, nil)
		c.Invoke(t, 10*gasUnit, "getBalance", util.Uint160{})
	})
}

func TestTreasuryWithdraw(t *testing.T) {
	env := newEnv(t)
	withdrawer := env.TreasuryInvoker(env.Withdrawer)
	gas := env.GASInvoker(t, env.Admin)
	to := env.NewAccount(t)

	deposit(t, env, 10*gasUnit)

	t.Run("not a withdrawer", func(t *testing.T) {
		env.TreasuryInvoker(env.Admin).InvokeFail(t, common.ErrUnauthorized, "withdraw", util.Uint160{}, to.ScriptHash(), 1)
	})
	t.Run("invalid arguments", func(t *testing.T) {
		withdrawer.InvokeFail(t, common.ErrZeroAddress, "withdraw", util.Uint160{}, util.Uint160{}, 1)
		withdrawer.InvokeFail(t, common.ErrInvalidAmount, "withdraw", util.Uint160{}, to.ScriptHash(), 0)
	})

	h := withdrawer.Invoke(t, stackitem.Null{}, "withdraw", util.Uint160{}, to.ScriptHash(), 3*gasUnit)
	res := env.GetTxExecResult(t, h)
	require.Equal(t, "Withdrawal", res.Events[len(res.Events)-1].Name)

	gas.Invoke(t, initialGAS+3*gasUnit, "balanceOf", to.ScriptHash())
	withdrawer.Invoke(t, 7*gasUnit, "getBalance", util.Uint160{})
	require.EqualValues(t, 2*gasUnit, remaining(t, withdrawer))

	t.Run("daily limit", func(t *testing.T) {
		withdrawer.InvokeFail(t, common.ErrDailyWithdrawalLimitExceeded, "withdraw", util.Uint160{}, to.ScriptHash(), 3*gasUnit)
		withdrawer.Invoke(t, 7*gasUnit, "getBalance", util.Uint160{})
		require.EqualValues(t, 2*gasUnit, remaining(t, withdrawer))
	})
	t.Run("insufficient balance", func(t *testing.T) {
		withdrawer.InvokeFail(t, common.ErrInsufficientBalance, "withdraw", env.Ledger, to.ScriptHash(), 1)
		require.EqualValues(t, 2*gasUnit, remaining(t, withdrawer))
	})

	t.Run("shared across assets", func(t *testing.T) {
		env.Mint(t, env.Treasury, 3*gasUnit)

		withdrawer.InvokeFail(t, common.ErrDailyWithdrawalLimitExceeded, "withdraw", env.Ledger, to.ScriptHash(), 3*gasUnit)
		withdrawer.Invoke(t, stackitem.Null{}, "withdraw", env.Ledger, to.ScriptHash(), 2*gasUnit)
		env.LedgerInvoker(env.Admin).Invoke(t, 2*gasUnit, "balanceOf", to.ScriptHash())
		withdrawer.Invoke(t, gasUnit, "getBalance", env.Ledger)
		require.EqualValues(t, 0, remaining(t, withdrawer))
	})

	env.SkipDay(t)
	require.EqualValues(t, dailyLimit, remaining(t, withdrawer))

	withdrawer.Invoke(t, stackitem.Null{}, "withdraw", util.Uint160{}, to.ScriptHash(), 5*gasUnit)
	gas.Invoke(t, initialGAS+8*gasUnit, "balanceOf", to.ScriptHash())
	withdrawer.Invoke(t, 2*gasUnit, "getBalance", util.Uint160{})
}

func TestTreasuryEmergencyWithdraw(t *testing.T) {
	env := newEnv(t)
	admin := env.TreasuryInvoker(env.Admin)
	to := env.NewAccount(t)

	deposit(t, env, 10*gasUnit)

	env.TreasuryInvoker(env.Withdrawer).InvokeFail(t, common.ErrUnauthorized, "emergencyWithdraw", util.Uint160{}, to.ScriptHash(), 1)
	admin.InvokeFail(t, common.ErrInsufficientBalance, "emergencyWithdraw", util.Uint160{}, to.ScriptHash(), 11*gasUnit)

	h := admin.Invoke(t, stackitem.Null{}, "emergencyWithdraw", util.Uint160{}, to.ScriptHash(), 8*gasUnit)
	res := env.GetTxExecResult(t, h)
	require.Equal(t, "EmergencyWithdrawal", res.Events[len(res.Events)-1].Name)

	env.GASInvoker(t, env.Admin).Invoke(t, initialGAS+8*gasUnit, "balanceOf", to.ScriptHash())
	admin.Invoke(t, 2*gasUnit, "getBalance", util.Uint160{})

	// emergency withdrawals are not counted
	require.EqualValues(t, dailyLimit, remaining(t, admin))
}

func TestTreasurySetDailyWithdrawalLimit(t *testing.T) {
	env := newEnv(t)
	admin := env.TreasuryInvoker(env.Admin)
	withdrawer := env.TreasuryInvoker(env.Withdrawer)
	to := env.NewAccount(t)

	deposit(t, env, 20*gasUnit)

	withdrawer.InvokeFail(t, common.ErrUnauthorized, "setDailyWithdrawalLimit", 10*gasUnit)
	admin.InvokeFail(t, common.ErrInvalidAmount, "setDailyWithdrawalLimit", -1)

	withdrawer.Invoke(t, stackitem.Null{}, "withdraw", util.Uint160{}, to.ScriptHash(), 4*gasUnit)

	admin.Invoke(t, stackitem.Null{}, "setDailyWithdrawalLimit", 10*gasUnit)
	admin.Invoke(t, 10*gasUnit, "dailyWithdrawalLimit")
	require.EqualValues(t, 6*gasUnit, remaining(t, admin))

	withdrawer.Invoke(t, stackitem.Null{}, "withdraw", util.Uint160{}, to.ScriptHash(), 6*gasUnit)
	withdrawer.InvokeFail(t, common.ErrDailyWithdrawalLimitExceeded, "withdraw", util.Uint160{}, to.ScriptHash(), 1)

	admin.Invoke(t, stackitem.Null{}, "setDailyWithdrawalLimit", 0)
	require.EqualValues(t, 0, remaining(t, admin))
}
