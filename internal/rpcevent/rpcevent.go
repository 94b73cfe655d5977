// Package rpcevent converts contract notifications and stack items into Go
// values for the RPC bindings.
package rpcevent

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Decoder is implemented by pointers to notification types.
type Decoder[T any] interface {
	*T
	FromStackItem(item *stackitem.Array) error
}

// FromApplicationLog retrieves all events with the given name from the
// provided [result.ApplicationLog]. Events of every contract are taken, the
// caller filters them by emitter if needed.
func FromApplicationLog[T any, P Decoder[T]](log *result.ApplicationLog, name string) ([]*T, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*T
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != name {
				continue
			}
			event := P(new(T))
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize %s event from stackitem (execution #%d, event #%d): %w", name, i, j, err)
			}
			res = append(res, (*T)(event))
		}
	}

	return res, nil
}

// Fields checks that notification carries exactly n parameters and returns
// them.
func Fields(item *stackitem.Array, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}

	return arr, nil
}

// Struct checks that item is a structure of n fields and returns them.
func Struct(item stackitem.Item, n int) ([]stackitem.Item, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}

	return arr, nil
}

// Uint160 decodes big-endian script hash.
func Uint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}

	return util.Uint160DecodeBytesBE(b)
}

// OptionalUint160 decodes script hash which is Null for mints and burns.
func OptionalUint160(item stackitem.Item) (*util.Uint160, error) {
	if _, ok := item.(stackitem.Null); ok {
		return nil, nil
	}

	u, err := Uint160(item)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Uint256 decodes big-endian 32-byte hash.
func Uint256(item stackitem.Item) (util.Uint256, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint256{}, err
	}

	return util.Uint256DecodeBytesBE(b)
}

// String decodes UTF-8 string.
func String(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}

	return string(b), nil
}
