package reservemanager

import (
	"github.com/eurium-labs/eurium-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Custodian is a registered holder of collateral backing the issued tokens.
type Custodian struct {
	Name    string
	Address interop.Hash160
	Active  bool
}

const (
	// defaultDailyMintLimitTokens is the daily mint volume in whole tokens
	// used when deployment does not specify one.
	defaultDailyMintLimitTokens = 1_000_000
	ledgerDecimals              = 18

	ledgerKey         = 'l'
	dailyLimitKey     = 'w'
	custodianCountKey = 'k'
	custodianPrefix   = 'u'
	authorizationKey  = 'z'
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
		ledger         interop.Hash160
		admin          interop.Hash160
		manager        interop.Hash160
		dailyMintLimit int
	})

	common.CheckAddress(args.ledger)
	storage.Put(ctx, ledgerKey, args.ledger)

	common.SetupRole(ctx, common.RoleAdmin, args.admin)
	common.SetupRole(ctx, common.RoleManager, args.manager)

	limit := args.dailyMintLimit
	if limit == 0 {
		limit = defaultDailyMintLimitTokens * common.Pow10(ledgerDecimals)
	}
	common.InitDailyLimit(ctx, []byte{dailyLimitKey}, limit)

	runtime.Log("reserve manager contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by an ADMIN.
func Update(nefFile, manifest []byte, data any) {
	common.UpdateByRole(common.RoleAdmin, nefFile, manifest, data)
	runtime.Log("reserve manager contract updated")
}

// Ledger returns address of the token ledger the contract mints on.
func Ledger() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, ledgerKey).(interop.Hash160)
}

// AddCustodian appends an active custodian to the registry and returns the
// new number of custodians. It can be invoked only by a MANAGER.
func AddCustodian(name string, addr interop.Hash160) int {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleManager)
	common.CheckAddress(addr)

	index := common.GetInt(ctx, custodianCountKey)
	common.SetSerialized(ctx, common.IndexKey(custodianPrefix, index), Custodian{
		Name:    name,
		Address: addr,
		Active:  true,
	})
	storage.Put(ctx, custodianCountKey, index+1)

	runtime.Notify("CustodianAdded", index, name, addr)

	return index + 1
}

// UpdateCustodianStatus activates or deactivates the custodian. Custodians
// are never removed so their indices stay stable. It can be invoked only by
// a MANAGER.
func UpdateCustodianStatus(index int, active bool) {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleManager)

	c := getCustodian(ctx, index)
	c.Active = active
	common.SetSerialized(ctx, common.IndexKey(custodianPrefix, index), c)

	runtime.Notify("CustodianStatusUpdated", index, active)
}

// Custodians returns the custodian registered under the index.
func Custodians(index int) Custodian {
	ctx := storage.GetReadOnlyContext()
	return getCustodian(ctx, index)
}

// GetCustodianCount returns number of registered custodians.
func GetCustodianCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, custodianCountKey)
}

// ListCustodians returns all registered custodians in registration order.
func ListCustodians() []Custodian {
	ctx := storage.GetReadOnlyContext()
	n := common.GetInt(ctx, custodianCountKey)

	res := []Custodian{}
	for i := 0; i < n; i++ {
		res = append(res, getCustodian(ctx, i))
	}

	return res
}

// AuthorizeAndMint mints tokens on the ledger once per authorization
// identifier within the rolling daily mint limit. It can be invoked only by
// a MANAGER. The contract must hold MINTER role of the ledger.
func AuthorizeAndMint(to interop.Hash160, amount int, authorizationID interop.Hash256) {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleManager)
	common.CheckAddress(to)
	common.CheckAmount(amount)

	if len(authorizationID) != interop.Hash256Len || common.IsZero(authorizationID) {
		panic(common.ErrInvalidAuthorizationID)
	}

	common.ConsumeDailyLimit(ctx, []byte{dailyLimitKey}, amount, common.ErrDailyMintLimitExceeded)

	key := append([]byte{authorizationKey}, authorizationID...)
	if storage.Get(ctx, key) != nil {
		panic(common.ErrAuthorizationUsed)
	}
	storage.Put(ctx, key, runtime.GetTime())

	ledger := storage.Get(ctx, ledgerKey).(interop.Hash160)
	contract.Call(ledger, "mint", contract.All, to, amount)

	runtime.Notify("AuthorizedMint", authorizationID, to, amount)
}

// IsAuthorizationUsed checks whether the authorization identifier has
// already been consumed by a mint.
func IsAuthorizationUsed(authorizationID interop.Hash256) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, append([]byte{authorizationKey}, authorizationID...)) != nil
}

// SetDailyMintLimit changes the daily mint limit starting from the current
// window. It can be invoked only by an ADMIN.
func SetDailyMintLimit(limit int) {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleAdmin)

	old := common.SetDailyLimitValue(ctx, []byte{dailyLimitKey}, limit)
	runtime.Notify("DailyLimitChanged", old, limit)
}

// DailyMintLimit returns maximum volume that can be minted per day.
func DailyMintLimit() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetDailyLimit(ctx, []byte{dailyLimitKey}).Limit
}

// RemainingDailyMint returns volume that can still be minted in the current
// window.
func RemainingDailyMint() int {
	ctx := storage.GetReadOnlyContext()
	l := common.GetDailyLimit(ctx, []byte{dailyLimitKey})

	return common.Remaining(l.Used, l.Limit)
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

func getCustodian(ctx storage.Context, index int) Custodian {
	if index < 0 || index >= common.GetInt(ctx, custodianCountKey) {
		panic(common.ErrCustodianNotFound)
	}

	data := storage.Get(ctx, common.IndexKey(custodianPrefix, index))
	return std.Deserialize(data.([]byte)).(Custodian)
}
