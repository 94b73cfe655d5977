package treasury

import (
	"github.com/eurium-labs/eurium-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// defaultDailyWithdrawalLimitGAS is the daily withdrawal volume in whole
	// GAS used when deployment does not specify one.
	defaultDailyWithdrawalLimitGAS = 1_000
	gasDecimals                    = 8

	dailyLimitKey = 'w'
	assetPrefix   = 'b'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		admin                interop.Hash160
		withdrawer           interop.Hash160
		dailyWithdrawalLimit int
	})

	common.SetupRole(ctx, common.RoleAdmin, args.admin)
	common.SetupRole(ctx, common.RoleWithdrawer, args.withdrawer)

	limit := args.dailyWithdrawalLimit
	if limit == 0 {
		limit = defaultDailyWithdrawalLimitGAS * common.Pow10(gasDecimals)
	}
	common.InitDailyLimit(ctx, []byte{dailyLimitKey}, limit)

	runtime.Log("treasury contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by an ADMIN.
func Update(nefFile, manifest []byte, data any) {
	common.UpdateByRole(common.RoleAdmin, nefFile, manifest, data)
	runtime.Log("treasury contract updated")
}

// OnNEP17Payment accepts deposits of any NEP-17 asset. Asset is the contract
// calling the method, its tracked balance grows by amount.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	if amount < 0 {
		panic(common.ErrInvalidAmount)
	}

	asset := runtime.GetCallingScriptHash()
	if management.GetContract(asset) == nil {
		panic("payment must come from a token contract")
	}

	ctx := storage.GetContext()
	key := common.AccountKey(assetPrefix, asset)
	storage.Put(ctx, key, common.GetInt(ctx, key)+amount)

	runtime.Notify("Deposit", asset, from, amount)
}

// Withdraw sends tracked funds of the asset within the rolling daily
// withdrawal limit. It can be invoked only by a WITHDRAWER. Zero asset
// hash stands for GAS.
func Withdraw(asset, to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleWithdrawer)
	asset = resolveAsset(asset)
	common.CheckAddress(to)
	common.CheckAmount(amount)

	common.ConsumeDailyLimit(ctx, []byte{dailyLimitKey}, amount, common.ErrDailyWithdrawalLimitExceeded)
	disburse(ctx, asset, to, amount)

	runtime.Notify("Withdrawal", asset, to, amount)
}

// EmergencyWithdraw sends tracked funds of the asset bypassing the daily
// withdrawal limit. It can be invoked only by an ADMIN. Withdrawn volume is
// not counted in the daily limit.
func EmergencyWithdraw(asset, to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleAdmin)
	asset = resolveAsset(asset)
	common.CheckAddress(to)
	common.CheckAmount(amount)

	disburse(ctx, asset, to, amount)

	runtime.Notify("EmergencyWithdrawal", asset, to, amount)
}

// SetDailyWithdrawalLimit changes the daily withdrawal limit starting from
// the current window. It can be invoked only by an ADMIN.
func SetDailyWithdrawalLimit(limit int) {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleAdmin)

	old := common.SetDailyLimitValue(ctx, []byte{dailyLimitKey}, limit)
	runtime.Notify("DailyLimitChanged", old, limit)
}

// DailyWithdrawalLimit returns maximum volume that can be withdrawn per day.
func DailyWithdrawalLimit() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetDailyLimit(ctx, []byte{dailyLimitKey}).Limit
}

// RemainingDailyWithdrawal returns volume that can still be withdrawn in the
// current window.
func RemainingDailyWithdrawal() int {
	ctx := storage.GetReadOnlyContext()
	l := common.GetDailyLimit(ctx, []byte{dailyLimitKey})

	return common.Remaining(l.Used, l.Limit)
}

// GetBalance returns tracked balance of the asset. Zero asset hash stands
// for GAS.
func GetBalance(asset interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, common.AccountKey(assetPrefix, resolveAsset(asset)))
}

// GrantRole adds account to the role. It can be invoked only by an ADMIN.
func GrantRole(role string, account interop.Hash160) {
	common.GrantRole(storage.GetContext(), role, account)
}

// RevokeRole removes account from the role. It can be invoked only by an ADMIN.
func RevokeRole(role string, account interop.Hash160) {
	common.RevokeRole(storage.GetContext(), role, account)
}

// RenounceRole removes account from the role. It must be witnessed by the account.
func RenounceRole(role string, account interop.Hash160) {
	common.RenounceRole(storage.GetContext(), role, account)
}

// HasRole checks role membership of the account.
func HasRole(role string, account interop.Hash160) bool {
	return common.HasRole(storage.GetReadOnlyContext(), role, account)
}

// GetRoleAdmin returns role that manages the given one.
func GetRoleAdmin(role string) string {
	return common.RoleAdminOf(role)
}

// GetRoleMembers returns accounts holding the role.
func GetRoleMembers(role string) []interop.Hash160 {
	return common.RoleMembers(storage.GetReadOnlyContext(), role)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// resolveAsset maps zero hash to GAS.
func resolveAsset(asset interop.Hash160) interop.Hash160 {
	if len(asset) != interop.Hash160Len {
		panic(common.ErrInvalidAddress)
	}
	if common.IsZero(asset) {
		return interop.Hash160(gas.Hash)
	}

	return asset
}

// disburse decreases tracked balance of the asset and transfers it out.
func disburse(ctx storage.Context, asset, to interop.Hash160, amount int) {
	key := common.AccountKey(assetPrefix, asset)

	balance := common.GetInt(ctx, key)
	if balance < amount {
		panic(common.ErrInsufficientBalance)
	}
	if balance == amount {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, balance-amount)
	}

	ok := contract.Call(asset, "transfer", contract.All,
		runtime.GetExecutingScriptHash(), to, amount, nil).(bool)
	if !ok {
		panic(common.ErrTransferFailed)
	}
}
