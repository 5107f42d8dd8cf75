package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "short form", input: "09:30", want: "09:30:00"},
		{name: "long form", input: "17:45:10", want: "17:45:10"},
		{name: "end of day", input: "24:00:00", want: "24:00:00"},
		{name: "garbage", input: "9am", wantErr: true},
		{name: "out of range", input: "25:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2025, 3, 10, 18, 22, 0, 0, time.UTC)

	got, err := TimeString("09:15:00").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC), got)

	end, err := TimeString("24:00:00").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), end)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("23:30:00").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00:00"), got)

	_, err = TimeString("23:30:00").AddMinutes(31)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("08:00:00.000000")))
	assert.Equal(t, TimeString("08:00:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
