package kst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMidnightOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "afternoon UTC is already the next KST day",
			in:   time.Date(2026, 3, 10, 16, 30, 0, 0, time.UTC), // 01:30 KST on the 11th
			want: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "morning UTC stays on the same KST day",
			in:   time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC), // 11:00 KST on the 10th
			want: time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "exact KST midnight maps to itself",
			in:   time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "one nanosecond before KST midnight",
			in:   time.Date(2026, 3, 9, 14, 59, 59, 999999999, time.UTC),
			want: time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MidnightOf(tt.in)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestFormatAndParseISO(t *testing.T) {
	in := time.Date(2026, 3, 10, 9, 15, 0, 0, Location)
	assert.Equal(t, "2026-03-10T00:15:00.000Z", FormatISO(in))

	parsed, err := ParseISO("2026-03-10T09:15:00+09:00")
	require.NoError(t, err)
	assert.True(t, in.Equal(parsed))
	assert.Equal(t, time.UTC, parsed.Location())

	parsed, err = ParseISO("2026-03-10T00:15:00.000Z")
	require.NoError(t, err)
	assert.True(t, in.Equal(parsed))

	_, err = ParseISO("10 March 2026")
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.February, Day: 28}, d)
	assert.Equal(t, "2026-02-28", d.String())

	next := d.AddDays(1)
	assert.Equal(t, "2026-03-01", next.String())
	assert.True(t, d.Before(next))
	assert.False(t, next.Before(d))

	assert.True(t, time.Date(2026, 2, 27, 15, 0, 0, 0, time.UTC).Equal(d.Midnight()))
	assert.True(t, time.Date(2026, 2, 28, 14, 59, 59, int(999*time.Millisecond), time.UTC).Equal(d.End()))

	assert.Equal(t, d, DateOf(d.Midnight()))
	assert.Equal(t, d, DateOf(d.End()))

	_, err = ParseDate("2026/02/28")
	assert.Error(t, err)
	assert.True(t, Date{}.IsZero())
}
