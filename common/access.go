package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Role identifiers shared by the contracts.
const (
	RoleAdmin      = "ADMIN"
	RolePauser     = "PAUSER"
	RoleMinter     = "MINTER"
	RoleUpgrader   = "UPGRADER"
	RoleAuditor    = "AUDITOR"
	RoleManager    = "MANAGER"
	RoleWithdrawer = "WITHDRAWER"
)

// rolePrefix is a storage prefix for role membership. Membership record key
// is rolePrefix | role | member and holds a marker byte.
const rolePrefix = 'r'

func roleKey(role string, member interop.Hash160) []byte {
	return append(append([]byte{rolePrefix}, []byte(role)...), member...)
}

func checkRole(role string) {
	if len(role) == 0 {
		panic(ErrInvalidRole)
	}
}

// HasRole checks whether account is a member of the role.
func HasRole(ctx storage.Context, role string, account interop.Hash160) bool {
	if len(role) == 0 || len(account) != interop.Hash160Len {
		return false
	}

	return storage.Get(ctx, roleKey(role, account)) != nil
}

// RoleAdminOf returns role which members manage the given role. ADMIN manages
// every role including itself.
func RoleAdminOf(role string) string {
	return RoleAdmin
}

// RoleMembers returns all current members of the role.
func RoleMembers(ctx storage.Context, role string) []interop.Hash160 {
	checkRole(role)

	var res []interop.Hash160

	it := storage.Find(ctx, append([]byte{rolePrefix}, []byte(role)...), storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		member := iterator.Value(it).([]byte)
		// longer keys belong to roles sharing the same prefix
		if len(member) != interop.Hash160Len {
			continue
		}
		res = append(res, interop.Hash160(member))
	}

	return res
}

// Authorize finds a member of the role which witnessed the invocation and
// returns it. It panics with ErrUnauthorized if there is none. Contract
// members are witnessed when they are the calling contract.
func Authorize(ctx storage.Context, role string) interop.Hash160 {
	members := RoleMembers(ctx, role)
	for i := range members {
		if runtime.CheckWitness(members[i]) {
			return members[i]
		}
	}

	panic(ErrUnauthorized)
}

// SetupRole adds account to the role without any witness check. It is meant
// for contract initialization only.
func SetupRole(ctx storage.Context, role string, account interop.Hash160) {
	checkRole(role)
	CheckAddress(account)

	if HasRole(ctx, role, account) {
		return
	}

	storage.Put(ctx, roleKey(role, account), []byte{1})
	notifyRoleGranted(role, account, runtime.GetExecutingScriptHash())
}

// GrantRole adds account to the role. The invocation must be witnessed by
// a member of the role's admin role. Granting the role to its member is
// a no-op.
func GrantRole(ctx storage.Context, role string, account interop.Hash160) {
	checkRole(role)
	sender := Authorize(ctx, RoleAdminOf(role))
	CheckAddress(account)

	if HasRole(ctx, role, account) {
		return
	}

	storage.Put(ctx, roleKey(role, account), []byte{1})
	notifyRoleGranted(role, account, sender)
}

// RevokeRole removes account from the role. The invocation must be
// witnessed by a member of the role's admin role. Revoking missing
// membership is a no-op.
func RevokeRole(ctx storage.Context, role string, account interop.Hash160) {
	checkRole(role)
	sender := Authorize(ctx, RoleAdminOf(role))

	if !HasRole(ctx, role, account) {
		return
	}

	storage.Delete(ctx, roleKey(role, account))
	notifyRoleRevoked(role, account, sender)
}

// RenounceRole removes account from the role. The invocation must be
// witnessed by account itself.
func RenounceRole(ctx storage.Context, role string, account interop.Hash160) {
	checkRole(role)
	if len(account) != interop.Hash160Len || !runtime.CheckWitness(account) {
		panic(ErrUnauthorized)
	}

	if !HasRole(ctx, role, account) {
		return
	}

	storage.Delete(ctx, roleKey(role, account))
	notifyRoleRevoked(role, account, account)
}

func notifyRoleGranted(role string, account, sender interop.Hash160) {
	runtime.Notify("RoleGranted", role, account, sender)
}

func notifyRoleRevoked(role string, account, sender interop.Hash160) {
	runtime.Notify("RoleRevoked", role, account, sender)
}
