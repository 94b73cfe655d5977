// Package treasury contains RPC wrappers for the Eurium treasury contract.
package treasury

import (
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

// NativeAsset is an alias of the GAS contract accepted by asset parameters.
var NativeAsset = util.Uint160{}

// DepositEvent represents "Deposit" event emitted by the contract.
type DepositEvent struct {
	Asset  util.Uint160
	From   util.Uint160
	Amount *big.Int
}

// WithdrawalEvent represents "Withdrawal" event emitted by the contract.
type WithdrawalEvent struct {
	Asset  util.Uint160
	To     util.Uint160
	Amount *big.Int
}

// EmergencyWithdrawalEvent represents "EmergencyWithdrawal" event emitted by the contract.
type EmergencyWithdrawalEvent struct {
	Asset  util.Uint160
	To     util.Uint160
	Amount *big.Int
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

// GetBalance invokes `getBalance` method of contract.
func (c *ContractReader) GetBalance(asset util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getBalance", asset))
}

// DailyWithdrawalLimit invokes `dailyWithdrawalLimit` method of contract.
func (c *ContractReader) DailyWithdrawalLimit() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "dailyWithdrawalLimit"))
}

// RemainingDailyWithdrawal invokes `remainingDailyWithdrawal` method of contract.
func (c *ContractReader) RemainingDailyWithdrawal() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "remainingDailyWithdrawal"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Withdraw creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Withdraw(asset util.Uint160, to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", asset, to, amount)
}

// WithdrawTransaction creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) WithdrawTransaction(asset util.Uint160, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdraw", asset, to, amount)
}

// WithdrawUnsigned creates a transaction invoking `withdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) WithdrawUnsigned(asset util.Uint160, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdraw", nil, asset, to, amount)
}

// EmergencyWithdraw creates a transaction invoking `emergencyWithdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) EmergencyWithdraw(asset util.Uint160, to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "emergencyWithdraw", asset, to, amount)
}

// EmergencyWithdrawTransaction creates a transaction invoking `emergencyWithdraw` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) EmergencyWithdrawTransaction(asset util.Uint160, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "emergencyWithdraw", asset, to, amount)
}

// EmergencyWithdrawUnsigned creates a transaction invoking `emergencyWithdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) EmergencyWithdrawUnsigned(asset util.Uint160, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "emergencyWithdraw", nil, asset, to, amount)
}

// SetDailyWithdrawalLimit creates a transaction invoking `setDailyWithdrawalLimit` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) SetDailyWithdrawalLimit(limit *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setDailyWithdrawalLimit", limit)
}

// SetDailyWithdrawalLimitTransaction creates a transaction invoking `setDailyWithdrawalLimit` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) SetDailyWithdrawalLimitTransaction(limit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setDailyWithdrawalLimit", limit)
}

// SetDailyWithdrawalLimitUnsigned creates a transaction invoking `setDailyWithdrawalLimit` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) SetDailyWithdrawalLimitUnsigned(limit *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setDailyWithdrawalLimit", nil, limit)
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

// DepositEventsFromApplicationLog retrieves a set of all emitted events
// with "Deposit" name from the provided [result.ApplicationLog].
func DepositEventsFromApplicationLog(log *result.ApplicationLog) ([]*DepositEvent, error) {
	return rpcevent.FromApplicationLog[DepositEvent](log, "Deposit")
}

// FromStackItem converts provided [stackitem.Array] to DepositEvent or
// returns an error if it's not possible to do to so.
func (e *DepositEvent) FromStackItem(item *stackitem.Array) error {
	asset, from, amount, err := movementFields(item, "From")
	if err != nil {
		return err
	}

	e.Asset, e.From, e.Amount = asset, from, amount
	return nil
}

// WithdrawalEventsFromApplicationLog retrieves a set of all emitted events
// with "Withdrawal" name from the provided [result.ApplicationLog].
func WithdrawalEventsFromApplicationLog(log *result.ApplicationLog) ([]*WithdrawalEvent, error) {
	return rpcevent.FromApplicationLog[WithdrawalEvent](log, "Withdrawal")
}

// FromStackItem converts provided [stackitem.Array] to WithdrawalEvent or
// returns an error if it's not possible to do to so.
func (e *WithdrawalEvent) FromStackItem(item *stackitem.Array) error {
	asset, to, amount, err := movementFields(item, "To")
	if err != nil {
		return err
	}

	e.Asset, e.To, e.Amount = asset, to, amount
	return nil
}

// EmergencyWithdrawalEventsFromApplicationLog retrieves a set of all emitted
// events with "EmergencyWithdrawal" name from the provided [result.ApplicationLog].
func EmergencyWithdrawalEventsFromApplicationLog(log *result.ApplicationLog) ([]*EmergencyWithdrawalEvent, error) {
	return rpcevent.FromApplicationLog[EmergencyWithdrawalEvent](log, "EmergencyWithdrawal")
}

// FromStackItem converts provided [stackitem.Array] to
// EmergencyWithdrawalEvent or returns an error if it's not possible to do to so.
func (e *EmergencyWithdrawalEvent) FromStackItem(item *stackitem.Array) error {
	asset, to, amount, err := movementFields(item, "To")
	if err != nil {
		return err
	}

	e.Asset, e.To, e.Amount = asset, to, amount
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

	return nil
}

func movementFields(item *stackitem.Array, party string) (util.Uint160, util.Uint160, *big.Int, error) {
	arr, err := rpcevent.Fields(item, 3)
	if err != nil {
		return util.Uint160{}, util.Uint160{}, nil, err
	}

	asset, err := rpcevent.Uint160(arr[0])
	if err != nil {
		return util.Uint160{}, util.Uint160{}, nil, fmt.Errorf("field Asset: %w", err)
	}
	account, err := rpcevent.Uint160(arr[1])
	if err != nil {
		return util.Uint160{}, util.Uint160{}, nil, fmt.Errorf("field %s: %w", party, err)
	}
	amount, err := arr[2].TryInteger()
	if err != nil {
		return util.Uint160{}, util.Uint160{}, nil, fmt.Errorf("field Amount: %w", err)
	}

	return asset, account, amount, nil
}
