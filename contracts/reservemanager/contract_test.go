package reservemanager_test

import (
	"math/big"
	"testing"

	"github.com/eurium-labs/eurium-contract/common"
	"github.com/eurium-labs/eurium-contract/internal/contracttest"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const dailyLimit = 1_000

func newEnv(t *testing.T) *contracttest.Env {
	return contracttest.NewEnv(t, contracttest.Options{DailyMintLimit: dailyLimit})
}

func authID(b byte) util.Uint256 {
	return util.Uint256{b, 0xaa, 0x55}
}

func remaining(t *testing.T, c *neotest.ContractInvoker) int64 {
	s, err := c.TestInvoke(t, "remainingDailyMint")
	require.NoError(t, err)
	return s.Pop().BigInt().Int64()
}

func TestReserveManagerGeneric(t *testing.T) {
	env := newEnv(t)
	c := env.GatewayInvoker(env.Admin)

	s, err := c.TestInvoke(t, "ledger")
	require.NoError(t, err)
	ledger, err := s.Pop().Item().TryBytes()
	require.NoError(t, err)
	require.Equal(t, env.Ledger.BytesBE(), ledger)

	c.Invoke(t, dailyLimit, "dailyMintLimit")
	c.Invoke(t, dailyLimit, "remainingDailyMint")
	c.Invoke(t, 0, "getCustodianCount")
	c.Invoke(t, common.Version, "version")
	c.Invoke(t, true, "hasRole", common.RoleAdmin, env.Admin.ScriptHash())
	c.Invoke(t, true, "hasRole", common.RoleManager, env.Manager.ScriptHash())
	c.Invoke(t, false, "hasRole", common.RoleManager, env.Admin.ScriptHash())
}

func TestReserveManagerDefaultLimit(t *testing.T) {
	env := contracttest.NewEnv(t, contracttest.Options{})

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)
	env.GatewayInvoker(env.Admin).Invoke(t, limit, "dailyMintLimit")
}

func TestReserveManagerCustodians(t *testing.T) {
	env := newEnv(t)
	manager := env.GatewayInvoker(env.Manager)
	a, b := env.NewAccount(t), env.NewAccount(t)

	env.GatewayInvoker(a).InvokeFail(t, common.ErrUnauthorized, "addCustodian", "Vault A", a.ScriptHash())
	manager.InvokeFail(t, common.ErrZeroAddress, "addCustodian", "Vault A", util.Uint160{})

	h := manager.Invoke(t, 1, "addCustodian", "Vault A", a.ScriptHash())
	res := env.GetTxExecResult(t, h)
	require.Len(t, res.Events, 1)
	require.Equal(t, "CustodianAdded", res.Events[0].Name)

	manager.Invoke(t, 2, "addCustodian", "Vault B", b.ScriptHash())
	manager.Invoke(t, 2, "getCustodianCount")

	checkCustodian := func(t *testing.T, index int64, name string, addr util.Uint160, active bool) {
		s, err := manager.TestInvoke(t, "custodians", index)
		require.NoError(t, err)

		fields := s.Pop().Array()
		require.Len(t, fields, 3)

		n, err := fields[0].TryBytes()
		require.NoError(t, err)
		require.Equal(t, name, string(n))

		h, err := fields[1].TryBytes()
		require.NoError(t, err)
		require.Equal(t, addr.BytesBE(), h)

		ok, err := fields[2].TryBool()
		require.NoError(t, err)
		require.Equal(t, active, ok)
	}

	checkCustodian(t, 0, "Vault A", a.ScriptHash(), true)
	checkCustodian(t, 1, "Vault B", b.ScriptHash(), true)

	env.GatewayInvoker(env.Admin).InvokeFail(t, common.ErrUnauthorized, "updateCustodianStatus", 1, false)
	manager.Invoke(t, stackitem.Null{}, "updateCustodianStatus", 1, false)
	checkCustodian(t, 1, "Vault B", b.ScriptHash(), false)
	checkCustodian(t, 0, "Vault A", a.ScriptHash(), true)

	manager.Invoke(t, stackitem.Null{}, "updateCustodianStatus", 1, true)
	checkCustodian(t, 1, "Vault B", b.ScriptHash(), true)

	manager.InvokeFail(t, common.ErrCustodianNotFound, "updateCustodianStatus", 2, false)
	manager.InvokeFail(t, common.ErrCustodianNotFound, "custodians", 2)
	manager.InvokeFail(t, common.ErrCustodianNotFound, "custodians", -1)

	s, err := manager.TestInvoke(t, "listCustodians")
	require.NoError(t, err)
	require.Len(t, s.Pop().Array(), 2)

	// custodians are append-only
	manager.Invoke(t, 2, "getCustodianCount")
}

func TestReserveManagerAuthorizeAndMint(t *testing.T) {
	env := newEnv(t)
	manager := env.GatewayInvoker(env.Manager)
	ledger := env.LedgerInvoker(env.Admin)
	u := env.NewAccount(t)

	t.Run("not a manager", func(t *testing.T) {
		env.GatewayInvoker(env.Admin).InvokeFail(t, common.ErrUnauthorized, "authorizeAndMint", u.ScriptHash(), 10, authID(1))
	})
	t.Run("invalid arguments", func(t *testing.T) {
		manager.InvokeFail(t, common.ErrZeroAddress, "authorizeAndMint", util.Uint160{}, 10, authID(1))
		manager.InvokeFail(t, common.ErrInvalidAmount, "authorizeAndMint", u.ScriptHash(), 0, authID(1))
		manager.InvokeFail(t, common.ErrInvalidAuthorizationID, "authorizeAndMint", u.ScriptHash(), 10, util.Uint256{})
		manager.InvokeFail(t, common.ErrInvalidAuthorizationID, "authorizeAndMint", u.ScriptHash(), 10, []byte{1, 2})
	})

	h := manager.Invoke(t, stackitem.Null{}, "authorizeAndMint", u.ScriptHash(), 600, authID(1))

	res := env.GetTxExecResult(t, h)
	names := make([]string, 0, len(res.Events))
	for _, ev := range res.Events {
		names = append(names, ev.Name)
	}
	require.Equal(t, []string{"Transfer", "Mint", "AuthorizedMint"}, names)
	require.Equal(t, env.Ledger, res.Events[0].ScriptHash)
	require.Equal(t, env.Gateway, res.Events[2].ScriptHash)

	ledger.Invoke(t, 600, "balanceOf", u.ScriptHash())
	ledger.Invoke(t, 600, "totalSupply")
	manager.Invoke(t, true, "isAuthorizationUsed", authID(1))
	manager.Invoke(t, false, "isAuthorizationUsed", authID(2))
	require.EqualValues(t, 400, remaining(t, manager))

	t.Run("daily limit", func(t *testing.T) {
		manager.InvokeFail(t, common.ErrDailyMintLimitExceeded, "authorizeAndMint", u.ScriptHash(), 401, authID(2))
		manager.Invoke(t, false, "isAuthorizationUsed", authID(2))
		require.EqualValues(t, 400, remaining(t, manager))
	})
	t.Run("replay", func(t *testing.T) {
		manager.InvokeFail(t, common.ErrAuthorizationUsed, "authorizeAndMint", u.ScriptHash(), 400, authID(1))
		require.EqualValues(t, 400, remaining(t, manager))
	})

	manager.Invoke(t, stackitem.Null{}, "authorizeAndMint", u.ScriptHash(), 400, authID(2))
	require.EqualValues(t, 0, remaining(t, manager))
	manager.InvokeFail(t, common.ErrDailyMintLimitExceeded, "authorizeAndMint", u.ScriptHash(), 1, authID(3))

	env.SkipDay(t)
	require.EqualValues(t, dailyLimit, remaining(t, manager))

	manager.Invoke(t, stackitem.Null{}, "authorizeAndMint", u.ScriptHash(), dailyLimit, authID(3))
	require.EqualValues(t, 0, remaining(t, manager))
	ledger.Invoke(t, 2_000, "balanceOf", u.ScriptHash())

	t.Run("replay after window reset", func(t *testing.T) {
		env.SkipDay(t)
		manager.InvokeFail(t, common.ErrAuthorizationUsed, "authorizeAndMint", u.ScriptHash(), 1, authID(1))
	})
}

func TestReserveManagerMintFailureRollback(t *testing.T) {
	env := newEnv(t)
	manager := env.GatewayInvoker(env.Manager)
	ledger := env.LedgerInvoker(env.Admin)
	u := env.NewAccount(t)

	t.Run("gateway is not a minter", func(t *testing.T) {
		ledger.Invoke(t, stackitem.Null{}, "revokeRole", common.RoleMinter, env.Gateway)

		manager.InvokeFail(t, common.ErrUnauthorized, "authorizeAndMint", u.ScriptHash(), 100, authID(1))
		manager.Invoke(t, false, "isAuthorizationUsed", authID(1))
		require.EqualValues(t, dailyLimit, remaining(t, manager))

		ledger.Invoke(t, stackitem.Null{}, "grantRole", common.RoleMinter, env.Gateway)
	})

	t.Run("ledger is paused", func(t *testing.T) {
		env.LedgerInvoker(env.Pauser).Invoke(t, stackitem.Null{}, "pause")

		manager.InvokeFail(t, common.ErrPaused, "authorizeAndMint", u.ScriptHash(), 100, authID(1))
		manager.Invoke(t, false, "isAuthorizationUsed", authID(1))
		require.EqualValues(t, dailyLimit, remaining(t, manager))

		env.LedgerInvoker(env.Pauser).Invoke(t, stackitem.Null{}, "unpause")
	})

	manager.Invoke(t, stackitem.Null{}, "authorizeAndMint", u.ScriptHash(), 100, authID(1))
	ledger.Invoke(t, 100, "totalSupply")
}

func TestReserveManagerSetDailyMintLimit(t *testing.T) {
	env := newEnv(t)
	admin := env.GatewayInvoker(env.Admin)
	manager := env.GatewayInvoker(env.Manager)
	u := env.NewAccount(t)

	manager.InvokeFail(t, common.ErrUnauthorized, "setDailyMintLimit", 5_000)
	admin.InvokeFail(t, common.ErrInvalidAmount, "setDailyMintLimit", -1)

	manager.Invoke(t, stackitem.Null{}, "authorizeAndMint", u.ScriptHash(), 800, authID(1))

	h := admin.Invoke(t, stackitem.Null{}, "setDailyMintLimit", 500)
	res := env.GetTxExecResult(t, h)
	require.Len(t, res.Events, 1)
	require.Equal(t, "DailyLimitChanged", res.Events[0].Name)

	params := res.Events[0].Item.Value().([]stackitem.Item)
	require.EqualValues(t, dailyLimit, params[0].Value().(*big.Int).Int64())
	require.EqualValues(t, 500, params[1].Value().(*big.Int).Int64())

	// usage of the current window is kept
	admin.Invoke(t, 500, "dailyMintLimit")
	require.EqualValues(t, 0, remaining(t, manager))
	manager.InvokeFail(t, common.ErrDailyMintLimitExceeded, "authorizeAndMint", u.ScriptHash(), 1, authID(2))

	env.SkipDay(t)
	manager.Invoke(t, stackitem.Null{}, "authorizeAndMint", u.ScriptHash(), 500, authID(2))
	manager.InvokeFail(t, common.ErrDailyMintLimitExceeded, "authorizeAndMint", u.ScriptHash(), 1, authID(3))
}
