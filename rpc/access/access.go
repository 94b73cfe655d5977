// Package access contains RPC wrappers for the role-based access control
// methods shared by all Eurium contracts.
package access

import (
	"fmt"

	"github.com/eurium-labs/eurium-contract/internal/rpcevent"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Role names recognized by the contracts.
const (
	RoleAdmin      = "ADMIN"
	RolePauser     = "PAUSER"
	RoleMinter     = "MINTER"
	RoleUpgrader   = "UPGRADER"
	RoleAuditor    = "AUDITOR"
	RoleManager    = "MANAGER"
	RoleWithdrawer = "WITHDRAWER"
)

// Invoker is used by RoleReader to call safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by RoleWriter to call state-changing methods.
type Actor interface {
	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// RoleReader implements safe role methods.
type RoleReader struct {
	invoker Invoker
	hash    util.Uint160
}

// RoleWriter implements role management methods.
type RoleWriter struct {
	actor Actor
	hash  util.Uint160
}

// RoleGrantedEvent represents "RoleGranted" event emitted by the contracts.
type RoleGrantedEvent struct {
	Role    string
	Account util.Uint160
	Sender  util.Uint160
}

// RoleRevokedEvent represents "RoleRevoked" event emitted by the contracts.
type RoleRevokedEvent struct {
	Role    string
	Account util.Uint160
	Sender  util.Uint160
}

// NewRoleReader creates an instance of RoleReader using provided contract
// hash and the given Invoker.
func NewRoleReader(invoker Invoker, hash util.Uint160) *RoleReader {
	return &RoleReader{invoker, hash}
}

// NewRoleWriter creates an instance of RoleWriter using provided contract
// hash and the given Actor.
func NewRoleWriter(actor Actor, hash util.Uint160) *RoleWriter {
	return &RoleWriter{actor, hash}
}

// HasRole invokes `hasRole` method of contract.
func (c *RoleReader) HasRole(role string, account util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "hasRole", role, account))
}

// GetRoleAdmin invokes `getRoleAdmin` method of contract.
func (c *RoleReader) GetRoleAdmin(role string) (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "getRoleAdmin", role))
}

// GetRoleMembers invokes `getRoleMembers` method of contract.
func (c *RoleReader) GetRoleMembers(role string) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "getRoleMembers", role))
}

// GrantRole creates a transaction invoking `grantRole` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *RoleWriter) GrantRole(role string, account util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "grantRole", role, account)
}

// GrantRoleTransaction creates a transaction invoking `grantRole` method of
// the contract. This transaction is signed, but not sent to the network.
func (c *RoleWriter) GrantRoleTransaction(role string, account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "grantRole", role, account)
}

// GrantRoleUnsigned creates an unsigned transaction invoking `grantRole`
// method of the contract.
func (c *RoleWriter) GrantRoleUnsigned(role string, account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "grantRole", nil, role, account)
}

// RevokeRole creates a transaction invoking `revokeRole` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *RoleWriter) RevokeRole(role string, account util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "revokeRole", role, account)
}

// RevokeRoleTransaction creates a transaction invoking `revokeRole` method of
// the contract. This transaction is signed, but not sent to the network.
func (c *RoleWriter) RevokeRoleTransaction(role string, account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "revokeRole", role, account)
}

// RevokeRoleUnsigned creates an unsigned transaction invoking `revokeRole`
// method of the contract.
func (c *RoleWriter) RevokeRoleUnsigned(role string, account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "revokeRole", nil, role, account)
}

// RenounceRole creates a transaction invoking `renounceRole` method of the
// contract. This transaction is signed and immediately sent to the network.
func (c *RoleWriter) RenounceRole(role string, account util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "renounceRole", role, account)
}

// RenounceRoleTransaction creates a transaction invoking `renounceRole`
// method of the contract. This transaction is signed, but not sent to the
// network.
func (c *RoleWriter) RenounceRoleTransaction(role string, account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "renounceRole", role, account)
}

// RenounceRoleUnsigned creates an unsigned transaction invoking
// `renounceRole` method of the contract.
func (c *RoleWriter) RenounceRoleUnsigned(role string, account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "renounceRole", nil, role, account)
}

// RoleGrantedEventsFromApplicationLog retrieves a set of all emitted events
// with "RoleGranted" name from the provided [result.ApplicationLog].
func RoleGrantedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RoleGrantedEvent, error) {
	return rpcevent.FromApplicationLog[RoleGrantedEvent](log, "RoleGranted")
}

// FromStackItem converts provided [stackitem.Array] to RoleGrantedEvent or
// returns an error if it's not possible to do to so.
func (e *RoleGrantedEvent) FromStackItem(item *stackitem.Array) error {
	role, account, sender, err := roleEventFields(item)
	if err != nil {
		return err
	}

	e.Role, e.Account, e.Sender = role, account, sender
	return nil
}

// RoleRevokedEventsFromApplicationLog retrieves a set of all emitted events
// with "RoleRevoked" name from the provided [result.ApplicationLog].
func RoleRevokedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RoleRevokedEvent, error) {
	return rpcevent.FromApplicationLog[RoleRevokedEvent](log, "RoleRevoked")
}

// FromStackItem converts provided [stackitem.Array] to RoleRevokedEvent or
// returns an error if it's not possible to do to so.
func (e *RoleRevokedEvent) FromStackItem(item *stackitem.Array) error {
	role, account, sender, err := roleEventFields(item)
	if err != nil {
		return err
	}

	e.Role, e.Account, e.Sender = role, account, sender
	return nil
}

func roleEventFields(item *stackitem.Array) (string, util.Uint160, util.Uint160, error) {
	arr, err := rpcevent.Fields(item, 3)
	if err != nil {
		return "", util.Uint160{}, util.Uint160{}, err
	}

	role, err := rpcevent.String(arr[0])
	if err != nil {
		return "", util.Uint160{}, util.Uint160{}, fmt.Errorf("field Role: %w", err)
	}
	account, err := rpcevent.Uint160(arr[1])
	if err != nil {
		return "", util.Uint160{}, util.Uint160{}, fmt.Errorf("field Account: %w", err)
	}
	sender, err := rpcevent.Uint160(arr[2])
	if err != nil {
		return "", util.Uint160{}, util.Uint160{}, fmt.Errorf("field Sender: %w", err)
	}

	return role, account, sender, nil
}
