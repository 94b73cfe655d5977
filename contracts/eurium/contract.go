package eurium

import (
	"github.com/eurium-labs/eurium-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	symbol   = "EUI"
	decimals = 18

	// defaultMaxSupplyTokens is the supply cap in whole tokens used when
	// deployment does not specify one.
	defaultMaxSupplyTokens = 1_000_000_000

	accPrefix       = 'a'
	supplyKey       = 's'
	maxSupplyKey    = 'm'
	pausedKey       = 'p'
	redemptionKey   = 'q'
	redemptionIDKey = 'n'
	reserveRootKey  = 'v'
	reserveTimeKey  = 't'
	snapshotIDKey   = 'c'
	snapSupplyKey   = 'S'
	snapBalanceKey  = 'B'
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
		admin     interop.Hash160
		pauser    interop.Hash160
		minter    interop.Hash160
		upgrader  interop.Hash160
		auditor   interop.Hash160
		maxSupply int
	})

	common.SetupRole(ctx, common.RoleAdmin, args.admin)
	common.SetupRole(ctx, common.RolePauser, args.pauser)
	common.SetupRole(ctx, common.RoleMinter, args.minter)
	common.SetupRole(ctx, common.RoleUpgrader, args.upgrader)
	common.SetupRole(ctx, common.RoleAuditor, args.auditor)

	maxSupply := args.maxSupply
	if maxSupply < 0 {
		panic(common.ErrInvalidAmount)
	}
	if maxSupply == 0 {
		maxSupply = defaultMaxSupplyTokens * common.Pow10(decimals)
	}
	storage.Put(ctx, maxSupplyKey, maxSupply)

	runtime.Log("eurium contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by an UPGRADER. Balances, redemptions and roles are kept.
func Update(nefFile, manifest []byte, data any) {
	common.UpdateByRole(common.RoleUpgrader, nefFile, manifest, data)
	runtime.Log("eurium contract updated")
}

// Symbol is a NEP-17 standard method that returns EUI token symbol.
func Symbol() string {
	return symbol
}

// Decimals is a NEP-17 standard method that returns precision of EUI
// balances.
func Decimals() int {
	return decimals
}

// TotalSupply is a NEP-17 standard method that returns amount of EUI in
// circulation including escrowed redemptions.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, supplyKey)
}

// MaxSupply returns the supply cap fixed at deployment.
func MaxSupply() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, maxSupplyKey)
}

// BalanceOf is a NEP-17 standard method that returns EUI balance of the
// specified account.
func BalanceOf(account interop.Hash160) int {
	if len(account) != interop.Hash160Len {
		panic(common.ErrInvalidAddress)
	}

	ctx := storage.GetReadOnlyContext()
	return balanceOf(ctx, account)
}

// Transfer is a NEP-17 standard method that moves EUI from one account to
// another. It returns false if the sender did not witness the invocation or
// has insufficient funds. Transfers are rejected while the token is paused.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	if amount < 0 {
		panic(common.ErrInvalidAmount)
	}
	if len(from) != interop.Hash160Len {
		panic(common.ErrInvalidAddress)
	}
	common.CheckAddress(to)

	ctx := storage.GetContext()
	checkNotPaused(ctx)

	if !isUsableAddress(from) {
		runtime.Log("bad script hashes")
		return false
	}

	if balanceOf(ctx, from) < amount {
		runtime.Log("not enough assets")
		return false
	}

	move(ctx, from, to, amount)
	postTransfer(from, to, amount, data)

	return true
}

// Mint issues new EUI to the account. It can be invoked only by a MINTER.
// Total supply must stay within the cap.
//
// Produces Transfer and Mint notifications.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleMinter)
	common.CheckAddress(to)
	common.CheckAmount(amount)
	checkNotPaused(ctx)

	supply := common.GetInt(ctx, supplyKey)
	if supply+amount > common.GetInt(ctx, maxSupplyKey) {
		panic(common.ErrSupplyCapExceeded)
	}

	credit(ctx, to, amount)
	storage.Put(ctx, supplyKey, supply+amount)

	notifyTransfer(nil, to, amount)
	runtime.Notify("Mint", to, amount)
	postTransfer(nil, to, amount, nil)
}

// Pause stops every balance movement. It can be invoked only by a PAUSER.
func Pause() {
	setPaused(true)
}

// Unpause resumes balance movements. It can be invoked only by a PAUSER.
func Unpause() {
	setPaused(false)
}

// Paused returns true while balance movements are stopped.
func Paused() bool {
	ctx := storage.GetReadOnlyContext()
	return isPaused(ctx)
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

func setPaused(paused bool) {
	ctx := storage.GetContext()
	sender := common.Authorize(ctx, common.RolePauser)

	if isPaused(ctx) == paused {
		panic(common.ErrInvalidPauseState)
	}

	storage.Put(ctx, pausedKey, paused)
	if paused {
		runtime.Notify("Paused", sender)
	} else {
		runtime.Notify("Unpaused", sender)
	}
}

func isPaused(ctx storage.Context) bool {
	v := storage.Get(ctx, pausedKey)
	if v == nil {
		return false
	}

	return v.(bool)
}

func checkNotPaused(ctx storage.Context) {
	if isPaused(ctx) {
		panic(common.ErrPaused)
	}
}

func balanceOf(ctx storage.Context, account interop.Hash160) int {
	return common.GetInt(ctx, common.AccountKey(accPrefix, account))
}

// credit increases balance of the account. Supply is maintained by callers.
func credit(ctx storage.Context, account interop.Hash160, amount int) {
	if amount == 0 {
		return
	}

	key := common.AccountKey(accPrefix, account)
	storage.Put(ctx, key, common.GetInt(ctx, key)+amount)
}

// debit decreases balance of the account removing empty records. Supply is
// maintained by callers.
func debit(ctx storage.Context, account interop.Hash160, amount int) {
	if amount == 0 {
		return
	}

	key := common.AccountKey(accPrefix, account)

	balance := common.GetInt(ctx, key)
	if balance < amount {
		panic(common.ErrInsufficientBalance)
	}

	if balance == amount {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, balance-amount)
	}
}

// move transfers funds between accounts keeping total supply.
func move(ctx storage.Context, from, to interop.Hash160, amount int) {
	debit(ctx, from, amount)
	credit(ctx, to, amount)
	notifyTransfer(from, to, amount)
}

// burn destroys funds of the account decreasing total supply.
func burn(ctx storage.Context, from interop.Hash160, amount int) {
	debit(ctx, from, amount)

	supply := common.GetInt(ctx, supplyKey)
	if supply < amount {
		panic("negative supply after burn")
	}
	storage.Put(ctx, supplyKey, supply-amount)

	notifyTransfer(from, nil, amount)
	runtime.Notify("Burn", from, amount)
}

func notifyTransfer(from, to interop.Hash160, amount int) {
	runtime.Notify("Transfer", from, to, amount)
}

// postTransfer calls onNEP17Payment of the receiving contract.
func postTransfer(from, to interop.Hash160, amount int, data any) {
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

// isUsableAddress checks if the sender is either a correct NEO address or SC address.
func isUsableAddress(addr interop.Hash160) bool {
	if runtime.CheckWitness(addr) {
		return true
	}

	// Check if a smart contract is calling script hash
	callingScriptHash := runtime.GetCallingScriptHash()
	return callingScriptHash.Equals(addr)
}
