package eurium

import (
	"github.com/eurium-labs/eurium-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// UpdateReserveProof publishes commitment to the off-chain reserve report.
// It can be invoked only by an AUDITOR. The previous commitment is
// overwritten.
func UpdateReserveProof(root interop.Hash256) {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleAuditor)

	if len(root) != interop.Hash256Len {
		panic(common.ErrInvalidReserveRoot)
	}
	if common.IsZero(root) {
		panic(common.ErrZeroReserveRoot)
	}

	now := runtime.GetTime()
	storage.Put(ctx, reserveRootKey, root)
	storage.Put(ctx, reserveTimeKey, now)

	runtime.Notify("ReserveProofUpdated", root, now)
}

// CurrentReserveRoot returns the latest reserve commitment or nothing if it
// has never been published.
func CurrentReserveRoot() interop.Hash256 {
	ctx := storage.GetReadOnlyContext()
	v := storage.Get(ctx, reserveRootKey)
	if v == nil {
		return nil
	}

	return v.(interop.Hash256)
}

// LastReserveUpdate returns block time of the latest reserve commitment.
func LastReserveUpdate() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, reserveTimeKey)
}
