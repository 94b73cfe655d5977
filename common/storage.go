package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key any, value any) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// GetInt returns integer stored by the key or 0 if there is no such key.
func GetInt(ctx storage.Context, key any) int {
	v := storage.Get(ctx, key)
	if v != nil {
		return v.(int)
	}

	return 0
}

// IndexKey returns storage key made of the prefix and a numeric index.
func IndexKey(prefix byte, index int) []byte {
	return append([]byte{prefix}, convert.ToBytes(index)...)
}

// AccountKey returns storage key made of the prefix and an account.
func AccountKey(prefix byte, account interop.Hash160) []byte {
	return append([]byte{prefix}, account...)
}

// IsZero checks that every byte of b is zero.
func IsZero(b []byte) bool {
	for i := 0; i < len(b); i++ {
		if b[i] != 0 {
			return false
		}
	}

	return true
}

// CheckAddress panics if addr is not a script hash or is the zero hash.
func CheckAddress(addr interop.Hash160) {
	if len(addr) != interop.Hash160Len {
		panic(ErrInvalidAddress)
	}
	if IsZero(addr) {
		panic(ErrZeroAddress)
	}
}

// CheckAmount panics if amount is not positive.
func CheckAmount(amount int) {
	if amount <= 0 {
		panic(ErrInvalidAmount)
	}
}

// Pow10 returns 10^n. It is used for token-denominated defaults which do not
// fit into a Go constant.
func Pow10(n int) int {
	r := 1
	for i := 0; i < n; i++ {
		r *= 10
	}

	return r
}
