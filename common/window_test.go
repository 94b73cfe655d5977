package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEffectiveUsage(t *testing.T) {
	const start = 1_700_000_000_000

	for _, tc := range []struct {
		name      string
		start     int
		now       int
		used      int
		wantStart int
		wantUsed  int
	}{
		{name: "same moment", start: start, now: start, used: 10, wantStart: start, wantUsed: 10},
		{name: "inside window", start: start, now: start + DayMs - 1, used: 10, wantStart: start, wantUsed: 10},
		{name: "window boundary", start: start, now: start + DayMs, used: 10, wantStart: start + DayMs, wantUsed: 0},
		{name: "long after", start: start, now: start + 3*DayMs + 5, used: 10, wantStart: start + 3*DayMs + 5, wantUsed: 0},
		{name: "zero start", now: DayMs, used: 7, wantStart: DayMs, wantUsed: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, u := EffectiveUsage(tc.now, tc.start, tc.used)
			require.Equal(t, tc.wantStart, s)
			require.Equal(t, tc.wantUsed, u)
		})
	}
}

func TestRemaining(t *testing.T) {
	require.Equal(t, 5, Remaining(5, 10))
	require.Equal(t, 0, Remaining(10, 10))
	require.Equal(t, 0, Remaining(12, 10))
}

func TestPow10(t *testing.T) {
	require.Equal(t, 1, Pow10(0))
	require.Equal(t, 1_000_000_000_000_000_000, Pow10(18))
}

func TestIsZero(t *testing.T) {
	require.True(t, IsZero(nil))
	require.True(t, IsZero(make([]byte, 20)))

	b := make([]byte, 20)
	b[19] = 1
	require.False(t, IsZero(b))
}
