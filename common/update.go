package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// UpdateByRole replaces contract code and manifest keeping its storage. The
// invocation must be witnessed by a member of the role. Current version is
// appended to data so that the new code can check it in _deploy.
func UpdateByRole(role string, nefFile, manifest []byte, data any) {
	Authorize(storage.GetReadOnlyContext(), role)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, AppendVersion(data))
}
