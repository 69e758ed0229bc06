package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineDateTime(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		clock   string
		want    string
		wantErr bool
	}{
		{name: "valid", date: "2024-01-10", clock: "09:00", want: "2024-01-10 09:00:00"},
		{name: "valid evening", date: "2023-10-01", clock: "14:30", want: "2023-10-01 14:30:00"},
		{name: "empty date", date: "", clock: "09:00", wantErr: true},
		{name: "empty time", date: "2024-01-10", clock: "", wantErr: true},
		{name: "malformed date", date: "10/01/2024", clock: "09:00", wantErr: true},
		{name: "malformed time", date: "2024-01-10", clock: "9am", wantErr: true},
		{name: "impossible date", date: "2024-02-31", clock: "09:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineDateTime(tt.date, tt.clock)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(datetimeLayout))
		})
	}
}

func TestSplitDateTime(t *testing.T) {
	ts, err := time.Parse(datetimeLayout, "2024-01-10 09:00:00")
	require.NoError(t, err)

	date, clock, err := SplitDateTime(ts)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", date)
	assert.Equal(t, "09:00", clock)
}

func TestSplitDateTimeZero(t *testing.T) {
	_, _, err := SplitDateTime(time.Time{})
	assert.Error(t, err)
}

func TestCombineSplitRoundTrip(t *testing.T) {
	ts, err := CombineDateTime("2025-06-15", "18:45")
	require.NoError(t, err)

	date, clock, err := SplitDateTime(ts)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", date)
	assert.Equal(t, "18:45", clock)
}
