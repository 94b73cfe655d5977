package common

// Exception messages thrown by the contracts. Off-chain callers match FAULT
// exceptions against these values.
const (
	// ErrUnauthorized is thrown when no holder of the required role
	// witnessed the invocation.
	ErrUnauthorized = "unauthorized"
	// ErrZeroAddress is thrown when an account argument is the zero hash.
	ErrZeroAddress = "zero address"
	// ErrInvalidAddress is thrown when an account argument is not a script hash.
	ErrInvalidAddress = "invalid address"
	// ErrInvalidAmount is thrown on zero or negative amounts.
	ErrInvalidAmount = "invalid amount"
	// ErrInvalidRole is thrown on an empty role identifier.
	ErrInvalidRole = "invalid role"

	ErrPaused            = "token is paused"
	ErrInvalidPauseState = "invalid pause state"

	ErrSupplyCapExceeded            = "exceeds maximum supply"
	ErrDailyMintLimitExceeded       = "exceeds daily mint limit"
	ErrDailyWithdrawalLimitExceeded = "exceeds daily withdrawal limit"
	ErrInsufficientBalance          = "insufficient balance"

	ErrEmptyRedemptionID    = "redemption id cannot be empty"
	ErrRedemptionNotFound   = "redemption not found"
	ErrRedemptionNotPending = "redemption is not pending"

	ErrInvalidReserveRoot = "invalid reserve root"
	ErrZeroReserveRoot    = "reserve root cannot be zero"

	ErrSnapshotNotFound = "snapshot not found"

	ErrCustodianNotFound      = "custodian not found"
	ErrInvalidAuthorizationID = "invalid authorization id"
	ErrAuthorizationUsed      = "authorization already used"

	// ErrTransferFailed is thrown when an outgoing NEP-17 transfer returns false.
	ErrTransferFailed = "transfer failed"
)
