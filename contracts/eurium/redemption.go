package eurium

import (
	"github.com/eurium-labs/eurium-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Redemption request states.
const (
	StatusPending   = 0
	StatusFinalized = 1
	StatusCancelled = 2
)

// RedemptionRequest is an escrowed request to take tokens out of circulation.
type RedemptionRequest struct {
	ID        int
	Requester interop.Hash160
	Amount    int
	// Off-chain reference supplied by the requester, e.g. a bank transfer id.
	Reference string
	Status    int
}

// RedeemRequest moves amount from the account into the contract escrow and
// registers a pending redemption. The invocation must be witnessed by the
// account. It returns identifier of the new request which is also announced
// in the RedemptionRequested notification.
func RedeemRequest(from interop.Hash160, amount int, reference string) int {
	common.CheckAddress(from)
	if !runtime.CheckWitness(from) {
		panic(common.ErrUnauthorized)
	}
	if len(reference) == 0 {
		panic(common.ErrEmptyRedemptionID)
	}
	common.CheckAmount(amount)

	ctx := storage.GetContext()
	checkNotPaused(ctx)

	if balanceOf(ctx, from) < amount {
		panic(common.ErrInsufficientBalance)
	}

	id := common.GetInt(ctx, redemptionIDKey) + 1
	storage.Put(ctx, redemptionIDKey, id)

	move(ctx, from, runtime.GetExecutingScriptHash(), amount)

	putRedemption(ctx, RedemptionRequest{
		ID:        id,
		Requester: from,
		Amount:    amount,
		Reference: reference,
		Status:    StatusPending,
	})

	runtime.Notify("RedemptionRequested", id, from, amount, reference)

	return id
}

// CancelRedemption returns escrowed funds of the pending request back to its
// requester. The invocation must be witnessed by the requester.
func CancelRedemption(id int) {
	ctx := storage.GetContext()
	req := getRedemption(ctx, id)

	if !runtime.CheckWitness(req.Requester) {
		panic(common.ErrUnauthorized)
	}
	if req.Status != StatusPending {
		panic(common.ErrRedemptionNotPending)
	}
	checkNotPaused(ctx)

	move(ctx, runtime.GetExecutingScriptHash(), req.Requester, req.Amount)

	req.Status = StatusCancelled
	putRedemption(ctx, req)

	runtime.Notify("RedemptionCancelled", id, req.Requester, req.Amount)
	postTransfer(runtime.GetExecutingScriptHash(), req.Requester, req.Amount, nil)
}

// FinalizeRedemption burns escrowed funds of the pending request. It can be
// invoked only by an ADMIN once the off-chain payout is settled.
func FinalizeRedemption(id int) {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleAdmin)

	req := getRedemption(ctx, id)
	if req.Status != StatusPending {
		panic(common.ErrRedemptionNotPending)
	}
	checkNotPaused(ctx)

	burn(ctx, runtime.GetExecutingScriptHash(), req.Amount)

	req.Status = StatusFinalized
	putRedemption(ctx, req)

	runtime.Notify("RedemptionFinalized", id, req.Requester, req.Amount)
}

// GetRedemption returns redemption request by its identifier.
func GetRedemption(id int) RedemptionRequest {
	ctx := storage.GetReadOnlyContext()
	return getRedemption(ctx, id)
}

// GetRedemptionCount returns number of redemption requests ever made, which
// is also the identifier of the latest one.
func GetRedemptionCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, redemptionIDKey)
}

func getRedemption(ctx storage.Context, id int) RedemptionRequest {
	if id <= 0 {
		panic(common.ErrRedemptionNotFound)
	}

	data := storage.Get(ctx, common.IndexKey(redemptionKey, id))
	if data == nil {
		panic(common.ErrRedemptionNotFound)
	}

	return std.Deserialize(data.([]byte)).(RedemptionRequest)
}

func putRedemption(ctx storage.Context, req RedemptionRequest) {
	common.SetSerialized(ctx, common.IndexKey(redemptionKey, req.ID), req)
}
