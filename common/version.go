package common

import "github.com/nspcc-dev/neo-go/pkg/interop/native/std"

// Semantic version of the Eurium contracts. All contracts share it.
const (
	Major = 1
	Minor = 0
	Patch = 0

	// Oldest deployed version the contracts can be upgraded from.
	minUpgradeMajor = 0
	minUpgradeMinor = 9
	minUpgradePatch = 0

	// Version is the numeric form of the version returned by the contracts'
	// version method.
	Version = Major*1_000_000 + Minor*1_000 + Patch

	MinUpgradeVersion = minUpgradeMajor*1_000_000 + minUpgradeMinor*1_000 + minUpgradePatch

	ErrVersionMismatch = "upgrade from unsupported version"
	ErrAlreadyUpdated  = "contract is already of the latest version"
)

// CheckVersion panics if the contract of the given numeric version can't be
// upgraded to the current one.
func CheckVersion(from int) {
	if from < MinUpgradeVersion {
		panic(ErrVersionMismatch + ": expected >=" + std.Itoa(MinUpgradeVersion, 10))
	}
	if from >= Version {
		panic(ErrAlreadyUpdated + ": " + std.Itoa(Version, 10))
	}
}

// AppendVersion appends the version of the running contract to the data
// passed to the management contract on update, so the new code can check
// where it is upgraded from.
func AppendVersion(data any) []any {
	if data == nil {
		return []any{Version}
	}
	return append(data.([]any), Version)
}
