// Package eurium contains RPC wrappers for the Eurium token ledger contract.
package eurium

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/eurium-labs/eurium-contract/internal/rpcevent"
	"github.com/eurium-labs/eurium-contract/rpc/access"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep17"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Redemption request states.
const (
	StatusPending   = 0
	StatusFinalized = 1
	StatusCancelled = 2
)

// RedemptionRequest is a contract-specific eurium.RedemptionRequest type used by its methods.
type RedemptionRequest struct {
	ID        *big.Int
	Requester util.Uint160
	Amount    *big.Int
	Reference string
	Status    *big.Int
}

// TransferEvent represents "Transfer" event emitted by the contract. From is
// nil for mints and To is nil for burns.
type TransferEvent struct {
	From   *util.Uint160
	To     *util.Uint160
	Amount *big.Int
}

// MintEvent represents "Mint" event emitted by the contract.
type MintEvent struct {
	To     util.Uint160
	Amount *big.Int
}

// BurnEvent represents "Burn" event emitted by the contract.
type BurnEvent struct {
	From   util.Uint160
	Amount *big.Int
}

// PausedEvent represents "Paused" event emitted by the contract.
type PausedEvent struct {
	Account util.Uint160
}

// UnpausedEvent represents "Unpaused" event emitted by the contract.
type UnpausedEvent struct {
	Account util.Uint160
}

// RedemptionRequestedEvent represents "RedemptionRequested" event emitted by the contract.
type RedemptionRequestedEvent struct {
	InternalID        *big.Int
	Requester         util.Uint160
	Amount            *big.Int
	ExternalReference string
}

// RedemptionCancelledEvent represents "RedemptionCancelled" event emitted by the contract.
type RedemptionCancelledEvent struct {
	InternalID *big.Int
	Requester  util.Uint160
	Amount     *big.Int
}

// RedemptionFinalizedEvent represents "RedemptionFinalized" event emitted by the contract.
type RedemptionFinalizedEvent struct {
	InternalID *big.Int
	Requester  util.Uint160
	Amount     *big.Int
}

// ReserveProofUpdatedEvent represents "ReserveProofUpdated" event emitted by the contract.
type ReserveProofUpdatedEvent struct {
	Root      util.Uint256
	Timestamp *big.Int
}

// SnapshotEvent represents "Snapshot" event emitted by the contract.
type SnapshotEvent struct {
	ID *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	nep17.Invoker
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	nep17.Actor

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	nep17.TokenReader
	access.RoleReader
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	nep17.TokenWriter
	access.RoleWriter
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{*nep17.NewReader(invoker, hash), *access.NewRoleReader(invoker, hash), invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	var nep17t = nep17.New(actor, hash)
	return &Contract{
		ContractReader{nep17t.TokenReader, *access.NewRoleReader(actor, hash), actor, hash},
		nep17t.TokenWriter,
		*access.NewRoleWriter(actor, hash),
		actor,
		hash,
	}
}

// MaxSupply invokes `maxSupply` method of contract.
func (c *ContractReader) MaxSupply() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxSupply"))
}

// Paused invokes `paused` method of contract.
func (c *ContractReader) Paused() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "paused"))
}

// GetRedemption invokes `getRedemption` method of contract.
func (c *ContractReader) GetRedemption(id *big.Int) (*RedemptionRequest, error) {
	return itemToRedemptionRequest(unwrap.Item(c.invoker.Call(c.hash, "getRedemption", id)))
}

// GetRedemptionCount invokes `getRedemptionCount` method of contract.
func (c *ContractReader) GetRedemptionCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getRedemptionCount"))
}

// CurrentReserveRoot invokes `currentReserveRoot` method of contract. The
// second value is false if no reserve proof has been published yet.
func (c *ContractReader) CurrentReserveRoot() (util.Uint256, bool, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "currentReserveRoot"))
	if err != nil {
		return util.Uint256{}, false, err
	}
	if _, ok := item.(stackitem.Null); ok {
		return util.Uint256{}, false, nil
	}

	root, err := rpcevent.Uint256(item)
	if err != nil {
		return util.Uint256{}, false, err
	}

	return root, true, nil
}

// LastReserveUpdate invokes `lastReserveUpdate` method of contract.
func (c *ContractReader) LastReserveUpdate() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "lastReserveUpdate"))
}

// GetCurrentSnapshotID invokes `getCurrentSnapshotId` method of contract.
func (c *ContractReader) GetCurrentSnapshotID() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getCurrentSnapshotId"))
}

// TotalSupplyAt invokes `totalSupplyAt` method of contract.
func (c *ContractReader) TotalSupplyAt(id *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSupplyAt", id))
}

// BalanceOfAt invokes `balanceOfAt` method of contract.
func (c *ContractReader) BalanceOfAt(account util.Uint160, id *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "balanceOfAt", account, id))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Mint creates a transaction invoking `mint` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Mint(to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "mint", to, amount)
}

// MintTransaction creates a transaction invoking `mint` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) MintTransaction(to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "mint", to, amount)
}

// MintUnsigned creates a transaction invoking `mint` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) MintUnsigned(to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "mint", nil, to, amount)
}

// Pause creates a transaction invoking `pause` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) Pause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "pause")
}

// PauseTransaction creates a transaction invoking `pause` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) PauseTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "pause")
}

// PauseUnsigned creates a transaction invoking `pause` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) PauseUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "pause", nil)
}

// Unpause creates a transaction invoking `unpause` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) Unpause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unpause")
}

// UnpauseTransaction creates a transaction invoking `unpause` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) UnpauseTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unpause")
}

// UnpauseUnsigned creates a transaction invoking `unpause` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) UnpauseUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unpause", nil)
}

// RedeemRequest creates a transaction invoking `redeemRequest` method of the contract.
// This transaction is signed and immediately sent to the network. Identifier
// of the new request is available from the RedemptionRequested event once the
// transaction is accepted.
func (c *Contract) RedeemRequest(from util.Uint160, amount *big.Int, reference string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "redeemRequest", from, amount, reference)
}

// RedeemRequestTransaction creates a transaction invoking `redeemRequest` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) RedeemRequestTransaction(from util.Uint160, amount *big.Int, reference string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "redeemRequest", from, amount, reference)
}

// RedeemRequestUnsigned creates a transaction invoking `redeemRequest` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) RedeemRequestUnsigned(from util.Uint160, amount *big.Int, reference string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "redeemRequest", nil, from, amount, reference)
}

// CancelRedemption creates a transaction invoking `cancelRedemption` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) CancelRedemption(id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "cancelRedemption", id)
}

// CancelRedemptionTransaction creates a transaction invoking `cancelRedemption` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) CancelRedemptionTransaction(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "cancelRedemption", id)
}

// CancelRedemptionUnsigned creates a transaction invoking `cancelRedemption` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) CancelRedemptionUnsigned(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "cancelRedemption", nil, id)
}

// FinalizeRedemption creates a transaction invoking `finalizeRedemption` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) FinalizeRedemption(id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "finalizeRedemption", id)
}

// FinalizeRedemptionTransaction creates a transaction invoking `finalizeRedemption` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) FinalizeRedemptionTransaction(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "finalizeRedemption", id)
}

// FinalizeRedemptionUnsigned creates a transaction invoking `finalizeRedemption` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) FinalizeRedemptionUnsigned(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "finalizeRedemption", nil, id)
}

// UpdateReserveProof creates a transaction invoking `updateReserveProof` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) UpdateReserveProof(root util.Uint256) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateReserveProof", root)
}

// UpdateReserveProofTransaction creates a transaction invoking `updateReserveProof` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) UpdateReserveProofTransaction(root util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateReserveProof", root)
}

// UpdateReserveProofUnsigned creates a transaction invoking `updateReserveProof` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) UpdateReserveProofUnsigned(root util.Uint256) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateReserveProof", nil, root)
}

// Snapshot creates a transaction invoking `snapshot` method of the contract.
// This transaction is signed and immediately sent to the network.
func (c *Contract) Snapshot() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "snapshot")
}

// SnapshotTransaction creates a transaction invoking `snapshot` method of the contract.
// This transaction is signed, but not sent to the network.
func (c *Contract) SnapshotTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "snapshot")
}

// SnapshotUnsigned creates a transaction invoking `snapshot` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) SnapshotUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "snapshot", nil)
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

// itemToRedemptionRequest converts stack item into *RedemptionRequest.
func itemToRedemptionRequest(item stackitem.Item, err error) (*RedemptionRequest, error) {
	if err != nil {
		return nil, err
	}
	var res = new(RedemptionRequest)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RedemptionRequest from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RedemptionRequest) FromStackItem(item stackitem.Item) error {
	arr, err := rpcevent.Struct(item, 5)
	if err != nil {
		return err
	}

	res.ID, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}
	res.Requester, err = rpcevent.Uint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Requester: %w", err)
	}
	res.Amount, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}
	res.Reference, err = rpcevent.String(arr[3])
	if err != nil {
		return fmt.Errorf("field Reference: %w", err)
	}
	res.Status, err = arr[4].TryInteger()
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	return nil
}

// TransferEventsFromApplicationLog retrieves a set of all emitted events
// with "Transfer" name from the provided [result.ApplicationLog].
func TransferEventsFromApplicationLog(log *result.ApplicationLog) ([]*TransferEvent, error) {
	return rpcevent.FromApplicationLog[TransferEvent](log, "Transfer")
}

// FromStackItem converts provided [stackitem.Array] to TransferEvent or
// returns an error if it's not possible to do to so.
func (e *TransferEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 3)
	if err != nil {
		return err
	}

	e.From, err = rpcevent.OptionalUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}
	e.To, err = rpcevent.OptionalUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}
	e.Amount, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// MintEventsFromApplicationLog retrieves a set of all emitted events
// with "Mint" name from the provided [result.ApplicationLog].
func MintEventsFromApplicationLog(log *result.ApplicationLog) ([]*MintEvent, error) {
	return rpcevent.FromApplicationLog[MintEvent](log, "Mint")
}

// FromStackItem converts provided [stackitem.Array] to MintEvent or
// returns an error if it's not possible to do to so.
func (e *MintEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 2)
	if err != nil {
		return err
	}

	e.To, err = rpcevent.Uint160(arr[0])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}
	e.Amount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// BurnEventsFromApplicationLog retrieves a set of all emitted events
// with "Burn" name from the provided [result.ApplicationLog].
func BurnEventsFromApplicationLog(log *result.ApplicationLog) ([]*BurnEvent, error) {
	return rpcevent.FromApplicationLog[BurnEvent](log, "Burn")
}

// FromStackItem converts provided [stackitem.Array] to BurnEvent or
// returns an error if it's not possible to do to so.
func (e *BurnEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 2)
	if err != nil {
		return err
	}

	e.From, err = rpcevent.Uint160(arr[0])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}
	e.Amount, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// PausedEventsFromApplicationLog retrieves a set of all emitted events
// with "Paused" name from the provided [result.ApplicationLog].
func PausedEventsFromApplicationLog(log *result.ApplicationLog) ([]*PausedEvent, error) {
	return rpcevent.FromApplicationLog[PausedEvent](log, "Paused")
}

// FromStackItem converts provided [stackitem.Array] to PausedEvent or
// returns an error if it's not possible to do to so.
func (e *PausedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 1)
	if err != nil {
		return err
	}

	e.Account, err = rpcevent.Uint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	return nil
}

// UnpausedEventsFromApplicationLog retrieves a set of all emitted events
// with "Unpaused" name from the provided [result.ApplicationLog].
func UnpausedEventsFromApplicationLog(log *result.ApplicationLog) ([]*UnpausedEvent, error) {
	return rpcevent.FromApplicationLog[UnpausedEvent](log, "Unpaused")
}

// FromStackItem converts provided [stackitem.Array] to UnpausedEvent or
// returns an error if it's not possible to do to so.
func (e *UnpausedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 1)
	if err != nil {
		return err
	}

	e.Account, err = rpcevent.Uint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	return nil
}

// RedemptionRequestedEventsFromApplicationLog retrieves a set of all emitted
// events with "RedemptionRequested" name from the provided [result.ApplicationLog].
func RedemptionRequestedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RedemptionRequestedEvent, error) {
	return rpcevent.FromApplicationLog[RedemptionRequestedEvent](log, "RedemptionRequested")
}

// FromStackItem converts provided [stackitem.Array] to
// RedemptionRequestedEvent or returns an error if it's not possible to do to so.
func (e *RedemptionRequestedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 4)
	if err != nil {
		return err
	}

	e.InternalID, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field InternalID: %w", err)
	}
	e.Requester, err = rpcevent.Uint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Requester: %w", err)
	}
	e.Amount, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}
	e.ExternalReference, err = rpcevent.String(arr[3])
	if err != nil {
		return fmt.Errorf("field ExternalReference: %w", err)
	}

	return nil
}

// RedemptionCancelledEventsFromApplicationLog retrieves a set of all emitted
// events with "RedemptionCancelled" name from the provided [result.ApplicationLog].
func RedemptionCancelledEventsFromApplicationLog(log *result.ApplicationLog) ([]*RedemptionCancelledEvent, error) {
	return rpcevent.FromApplicationLog[RedemptionCancelledEvent](log, "RedemptionCancelled")
}

// FromStackItem converts provided [stackitem.Array] to
// RedemptionCancelledEvent or returns an error if it's not possible to do to so.
func (e *RedemptionCancelledEvent) FromStackItem(item *stackitem.Array) error {
	id, requester, amount, err := redemptionSettlementFields(item)
	if err != nil {
		return err
	}

	e.InternalID, e.Requester, e.Amount = id, requester, amount
	return nil
}

// RedemptionFinalizedEventsFromApplicationLog retrieves a set of all emitted
// events with "RedemptionFinalized" name from the provided [result.ApplicationLog].
func RedemptionFinalizedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RedemptionFinalizedEvent, error) {
	return rpcevent.FromApplicationLog[RedemptionFinalizedEvent](log, "RedemptionFinalized")
}

// FromStackItem converts provided [stackitem.Array] to
// RedemptionFinalizedEvent or returns an error if it's not possible to do to so.
func (e *RedemptionFinalizedEvent) FromStackItem(item *stackitem.Array) error {
	id, requester, amount, err := redemptionSettlementFields(item)
	if err != nil {
		return err
	}

	e.InternalID, e.Requester, e.Amount = id, requester, amount
	return nil
}

func redemptionSettlementFields(item *stackitem.Array) (*big.Int, util.Uint160, *big.Int, error) {
	arr, err := rpcevent.Fields(item, 3)
	if err != nil {
		return nil, util.Uint160{}, nil, err
	}

	id, err := arr[0].TryInteger()
	if err != nil {
		return nil, util.Uint160{}, nil, fmt.Errorf("field InternalID: %w", err)
	}
	requester, err := rpcevent.Uint160(arr[1])
	if err != nil {
		return nil, util.Uint160{}, nil, fmt.Errorf("field Requester: %w", err)
	}
	amount, err := arr[2].TryInteger()
	if err != nil {
		return nil, util.Uint160{}, nil, fmt.Errorf("field Amount: %w", err)
	}

	return id, requester, amount, nil
}

// ReserveProofUpdatedEventsFromApplicationLog retrieves a set of all emitted
// events with "ReserveProofUpdated" name from the provided [result.ApplicationLog].
func ReserveProofUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReserveProofUpdatedEvent, error) {
	return rpcevent.FromApplicationLog[ReserveProofUpdatedEvent](log, "ReserveProofUpdated")
}

// FromStackItem converts provided [stackitem.Array] to
// ReserveProofUpdatedEvent or returns an error if it's not possible to do to so.
func (e *ReserveProofUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 2)
	if err != nil {
		return err
	}

	e.Root, err = rpcevent.Uint256(arr[0])
	if err != nil {
		return fmt.Errorf("field Root: %w", err)
	}
	e.Timestamp, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	return nil
}

// SnapshotEventsFromApplicationLog retrieves a set of all emitted events
// with "Snapshot" name from the provided [result.ApplicationLog].
func SnapshotEventsFromApplicationLog(log *result.ApplicationLog) ([]*SnapshotEvent, error) {
	return rpcevent.FromApplicationLog[SnapshotEvent](log, "Snapshot")
}

// FromStackItem converts provided [stackitem.Array] to SnapshotEvent or
// returns an error if it's not possible to do to so.
func (e *SnapshotEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := rpcevent.Fields(item, 1)
	if err != nil {
		return err
	}

	e.ID, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}
	if e.ID.Sign() <= 0 {
		return errors.New("field ID: non-positive snapshot id")
	}

	return nil
}
