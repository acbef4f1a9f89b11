package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampScan(t *testing.T) {
	want := time.Date(2026, 10, 19, 8, 15, 0, 250000000, time.UTC)
	jst := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name string
		src  any
	}{
		{name: "time.Time from mysql", src: want.In(jst)},
		{name: "stored layout string", src: "2026-10-19 08:15:00.250000"},
		{name: "stored layout bytes", src: []byte("2026-10-19 08:15:00.250000")},
		{name: "RFC 3339", src: "2026-10-19T17:15:00.25+09:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ts timestamp
			require.NoError(t, ts.Scan(tc.src))
			assert.True(t, want.Equal(ts.Time), "got %v", ts.Time)
			assert.Equal(t, time.UTC, ts.Location())
		})
	}

	t.Run("nil is zero", func(t *testing.T) {
		var ts timestamp
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("garbage is an error", func(t *testing.T) {
		var ts timestamp
		assert.Error(t, ts.Scan("yesterday"))
		assert.Error(t, ts.Scan(42))
	})
}

func TestFormatTimestamp(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 6000, time.FixedZone("JST", 9*60*60))
	assert.Equal(t, "2026-01-01 18:04:05.000006", formatTimestamp(at))
}
