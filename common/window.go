package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// DayMs is the length of a daily limit window in milliseconds of block time.
const DayMs = 24 * 60 * 60 * 1000

// DailyLimit is a rolling daily volume counter.
type DailyLimit struct {
	// Block time the current window started at.
	WindowStart int
	// Volume consumed in the current window.
	Used int
	// Maximum volume per window.
	Limit int
}

// EffectiveUsage returns the window start and the used volume that apply at
// the moment now. The window restarts with zero usage once a day has passed
// since windowStart.
func EffectiveUsage(now, windowStart, used int) (int, int) {
	if now >= windowStart+DayMs {
		return now, 0
	}

	return windowStart, used
}

// Remaining returns volume that can still be consumed within the limit.
func Remaining(used, limit int) int {
	if used >= limit {
		return 0
	}

	return limit - used
}

// InitDailyLimit stores a fresh counter starting at the current block time.
func InitDailyLimit(ctx storage.Context, key []byte, limit int) {
	if limit < 0 {
		panic(ErrInvalidAmount)
	}

	SetSerialized(ctx, key, DailyLimit{
		WindowStart: runtime.GetTime(),
		Used:        0,
		Limit:       limit,
	})
}

// GetDailyLimit returns the counter with lazily applied window reset.
func GetDailyLimit(ctx storage.Context, key []byte) DailyLimit {
	data := storage.Get(ctx, key)
	if data == nil {
		return DailyLimit{}
	}

	l := std.Deserialize(data.([]byte)).(DailyLimit)
	start, used := EffectiveUsage(runtime.GetTime(), l.WindowStart, l.Used)
	l.WindowStart = start
	l.Used = used

	return l
}

// ConsumeDailyLimit adds amount to the counter. It panics with errMsg when
// the counter would exceed its limit.
func ConsumeDailyLimit(ctx storage.Context, key []byte, amount int, errMsg string) {
	l := GetDailyLimit(ctx, key)
	if l.Used+amount > l.Limit {
		panic(errMsg)
	}

	l.Used += amount
	SetSerialized(ctx, key, l)
}

// SetDailyLimitValue changes the limit of the current window and returns
// the previous one.
func SetDailyLimitValue(ctx storage.Context, key []byte, limit int) int {
	if limit < 0 {
		panic(ErrInvalidAmount)
	}

	l := GetDailyLimit(ctx, key)
	old := l.Limit
	l.Limit = limit
	SetSerialized(ctx, key, l)

	return old
}
