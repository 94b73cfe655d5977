package eurium

import (
	"github.com/eurium-labs/eurium-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Snapshot captures total supply and every non-zero balance under a new
// identifier. It can be invoked only by an ADMIN.
func Snapshot() int {
	ctx := storage.GetContext()
	common.Authorize(ctx, common.RoleAdmin)

	id := common.GetInt(ctx, snapshotIDKey) + 1
	storage.Put(ctx, snapshotIDKey, id)
	storage.Put(ctx, common.IndexKey(snapSupplyKey, id), common.GetInt(ctx, supplyKey))

	prefix := common.IndexKey(snapBalanceKey, id)

	it := storage.Find(ctx, []byte{accPrefix}, storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		acc := iterator.Value(it).(interop.Hash160) // it MUST BE `storage.KeysOnly`
		balance := balanceOf(ctx, acc)
		if balance != 0 {
			storage.Put(ctx, append(prefix, acc...), balance)
		}
	}

	runtime.Notify("Snapshot", id)

	return id
}

// GetCurrentSnapshotId returns identifier of the latest snapshot, 0 if none
// was taken.
func GetCurrentSnapshotId() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, snapshotIDKey)
}

// TotalSupplyAt returns total supply captured by the snapshot.
func TotalSupplyAt(id int) int {
	ctx := storage.GetReadOnlyContext()
	checkSnapshot(ctx, id)

	return common.GetInt(ctx, common.IndexKey(snapSupplyKey, id))
}

// BalanceOfAt returns balance of the account captured by the snapshot.
func BalanceOfAt(account interop.Hash160, id int) int {
	if len(account) != interop.Hash160Len {
		panic(common.ErrInvalidAddress)
	}

	ctx := storage.GetReadOnlyContext()
	checkSnapshot(ctx, id)

	return common.GetInt(ctx, append(common.IndexKey(snapBalanceKey, id), account...))
}

func checkSnapshot(ctx storage.Context, id int) {
	if id <= 0 || id > common.GetInt(ctx, snapshotIDKey) {
		panic(common.ErrSnapshotNotFound)
	}
}
