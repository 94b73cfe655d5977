// Package reservemanager contains RPC wrappers for the Eurium reserve manager
// contract which registers custodians and authorizes mints.
package reservemanager

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/eurium-labs/eurium-contract/internal/rpcevent"
	"github.com/eurium-labs/eurium-contract/rpc/access"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Custodian is a contract-specific reservemanager.Custodian type used by its methods.
type Custodian struct {
	Name    string
	Address util.Uint160
	Active  bool
}

// CustodianAddedEvent represents "CustodianAdded" event emitted by the contract.
type CustodianAddedEvent struct {
	Index   *big.Int
	Name    string
	Address util.Uint160
}

// CustodianStatusUpdatedEvent represents "CustodianStatusUpdated" event emitted by the contract.
type CustodianStatusUpdatedEvent struct {
	Index  *big.Int
	Active bool
}

// AuthorizedMintEvent represents "AuthorizedMint" event emitted by the contract.
type AuthorizedMintEvent struct {
	AuthorizationID util.Uint256
	To              util.Uint160
	Amount          *big.Int
}

// DailyLimitChangedEvent represents "DailyLimitChanged" event emitted by the contract.
type DailyLimitChangedEvent struct {
	OldLimit *big.Int
	NewLimit *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	access.RoleReader
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	access.RoleWriter
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{*access.NewRoleReader(invoker, hash), invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{*NewReader(actor, hash), *access.NewRoleWriter(actor, hash), actor, hash}
}

// Ledger invokes `ledger` method of contract.
func (c *ContractReader) Ledger() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "ledger"))
}

// Custodians invokes `custodians` method of contract.
func (c *ContractReader) Custodians(index *big.Int) (*Custodian, error) {
	return itemToCustodian(unwrap.Item(c.invoker.Call(c.hash, "custodians", index)))
}

// GetCustodianCount invokes `getCustodianCount` method of contract.
func (c *ContractReader) GetCustodianCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getCustodianCount"))
}

// ListCustodians invokes `listCustodians` method of contract.
func (c *ContractReader) ListCustodians() ([]*Custodian, error) {
	items, err := unwrap.Array(c.invoker.Call(c.hash, "listCustodians"))
	if err != nil {
		return nil, err
	}

	res := make([]*Custodian, len(items))
	for i := range items {
		res[i], err = itemToCustodian(items[i], nil)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	return res, nil
}

// IsAuthorizationUsed invokes `isAuthorizationUsed` method of contract.
func (c *ContractReader) IsAuthorizationUsed(authorizationID util.Uint256) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isAuthorizationUsed", authorizationID))
}

// DailyMintLimit invokes `dailyMintLimit` method of contract.
func (c *ContractReader) DailyMintLimit() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "dailyMintLimit"))
}

// RemainingDailyMint invokes `remainingDailyMint` method of contract.
func (c *ContractReader) RemainingDailyMint() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "remainingDailyMint"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AddCustodian creates a transaction invoking `addCustodian` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddCustodian(name string, addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addCustodian", name, addr)
}

// AddCustodianTransaction creates a transaction invoking `addCustodian` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) AddCustodianTransaction(name string, addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addCustodian", name, addr)
}

// AddCustodianUnsigned creates a transaction invoking `addCustodian` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) AddCustodianUnsigned(name string, addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addCustodian", nil, name, addr)
}

// UpdateCustodianStatus creates a transaction invoking `updateCustodianStatus` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) UpdateCustodianStatus(index *big.Int, active bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateCustodianStatus", index, active)
}

// UpdateCustodianStatusTransaction creates a transaction invoking `updateCustodianStatus` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) UpdateCustodianStatusTransaction(index *big.Int, active bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateCustodianStatus", index, active)
}

// UpdateCustodianStatusUnsigned creates a transaction invoking `updateCustodianStatus` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) UpdateCustodianStatusUnsigned(index *big.Int, active bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateCustodianStatus", nil, index, active)
}

// AuthorizeAndMint creates a transaction invoking `authorizeAndMint` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) AuthorizeAndMint(to util.Uint160, amount *big.Int, authorizationID util.Uint256) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "authorizeAndMint", to, amount, authorizationID)
}

// AuthorizeAndMintTransaction creates a transaction invoking `authorizeAndMint` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) AuthorizeAndMintTransaction(to util.Uint160, amount *big.Int, authorizationID util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "authorizeAndMint", to, amount, authorizationID)
}

// AuthorizeAndMintUnsigned creates a transaction invoking `authorizeAndMint` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) AuthorizeAndMintUnsigned(to util.Uint160, amount *big.Int, authorizationID util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "authorizeAndMint", nil, to, amount, authorizationID)
}

// SetDailyMintLimit creates a transaction invoking `setDailyMintLimit` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) SetDailyMintLimit(limit *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setDailyMintLimit", limit)
}

// SetDailyMintLimitTransaction creates a transaction invoking `setDailyMintLimit` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) SetDailyMintLimitTransaction(limit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setDailyMintLimit", limit)
}

// SetDailyMintLimitUnsigned creates a transaction invoking `setDailyMintLimit` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) SetDailyMintLimitUnsigned(limit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setDailyMintLimit", nil, limit)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToCustodian converts stack item into *Custodian.
func itemToCustodian(item stackitem.Item, err error) (*Custodian, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Custodian)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Custodian from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Custodian) FromStackItem(item stackitem.Item) error {
	arr, err := rpcevent.Struct(item, 3)
	if err != nil {
		return err
	}

	res.Name, err = rpcevent.String(arr[0])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}
	res.Address, err = rpcevent.Uint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Address: %w", err)
	}
	res.Active, err = arr[2].TryBool()
	if err != nil {
		return fmt.Errorf("field Active: %w", err)
	}

	return nil
}

// CustodianAddedEventsFromApplicationLog retrieves a set of all emitted
// events with "CustodianAdded" name from the provided [result.ApplicationLog].
func CustodianAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*CustodianAddedEvent, error) {
	return rpcevent.FromApplicationLog[CustodianAddedEvent](log, "CustodianAdded")
}

// FromStackItem converts provided [stackitem.Array] to CustodianAddedEvent or
// returns an error if it's not possible to do to so.
func (e *CustodianAddedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 3)
	if err != nil {
		return err
	}

	e.Index, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Index: %w", err)
	}
	e.Name, err = rpcevent.String(arr[1])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}
	e.Address, err = rpcevent.Uint160(arr[2])
	if err != nil {
		return fmt.Errorf("field Address: %w", err)
	}

	return nil
}

// CustodianStatusUpdatedEventsFromApplicationLog retrieves a set of all
// emitted events with "CustodianStatusUpdated" name from the provided
// [result.ApplicationLog].
func CustodianStatusUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*CustodianStatusUpdatedEvent, error) {
	return rpcevent.FromApplicationLog[CustodianStatusUpdatedEvent](log, "CustodianStatusUpdated")
}

// FromStackItem converts provided [stackitem.Array] to
// CustodianStatusUpdatedEvent or returns an error if it's not possible to do to so.
func (e *CustodianStatusUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 2)
	if err != nil {
		return err
	}

	e.Index, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Index: %w", err)
	}
	e.Active, err = arr[1].TryBool()
	if err != nil {
		return fmt.Errorf("field Active: %w", err)
	}

	return nil
}

// AuthorizedMintEventsFromApplicationLog retrieves a set of all emitted
// events with "AuthorizedMint" name from the provided [result.ApplicationLog].
func AuthorizedMintEventsFromApplicationLog(log *result.ApplicationLog) ([]*AuthorizedMintEvent, error) {
	return rpcevent.FromApplicationLog[AuthorizedMintEvent](log, "AuthorizedMint")
}

// FromStackItem converts provided [stackitem.Array] to AuthorizedMintEvent or
// returns an error if it's not possible to do to so.
func (e *AuthorizedMintEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 3)
	if err != nil {
		return err
	}

	e.AuthorizationID, err = rpcevent.Uint256(arr[0])
	if err != nil {
		return fmt.Errorf("field AuthorizationID: %w", err)
	}
	e.To, err = rpcevent.Uint160(arr[1])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}
	e.Amount, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// DailyLimitChangedEventsFromApplicationLog retrieves a set of all emitted
// events with "DailyLimitChanged" name from the provided [result.ApplicationLog].
func DailyLimitChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DailyLimitChangedEvent, error) {
	return rpcevent.FromApplicationLog[DailyLimitChangedEvent](log, "DailyLimitChanged")
}

// FromStackItem converts provided [stackitem.Array] to DailyLimitChangedEvent
// or returns an error if it's not possible to do to so.
func (e *DailyLimitChangedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 2)
	if err != nil {
		return err
	}

	e.OldLimit, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field OldLimit: %w", err)
	}
	e.NewLimit, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field NewLimit: %w", err)
	}
	if e.NewLimit.Sign() < 0 {
		return errors.New("field NewLimit: negative limit")
	}

	return nil
}
