package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExpression(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{"weekly", "0 9 * * 1", false},
		{"weekdays", "30 8 * * 1-5", false},
		{"steps and lists", "*/15 9-17 1,15 * *", false},
		{"extra spaces", "0  9 * *  1", false},
		{"four fields", "0 9 * *", true},
		{"six fields", "0 0 9 * * 1", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpression(tt.expr)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "5 fields")
			var exprErr *ExpressionError
			assert.ErrorAs(t, err, &exprErr)
		})
	}
}

func TestEncode(t *testing.T) {
	got, err := Encode("Europe/Warsaw", "0 9 * * 1")
	require.NoError(t, err)
	assert.Equal(t, "CRON_TZ=Europe/Warsaw 0 9 * * 1", got)

	_, err = Encode("UTC", "0 9 * *")
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		combined string
		expr     string
		tz       string
	}{
		{"CRON_TZ=Europe/Warsaw 0 9 * * 1", "0 9 * * 1", "Europe/Warsaw"},
		{"CRON_TZ=America/New_York 30 8 * * 1-5", "30 8 * * 1-5", "America/New_York"},
		{"0 9 * * 1", "0 9 * * 1", "UTC"},
		{"", "", "UTC"},
		{"CRON_TZ= 0 9 * * 1", "0 9 * * 1", "UTC"},
		{"CRON_TZ=Asia/Tokyo", "", "Asia/Tokyo"},
	}

	for _, tt := range tests {
		t.Run(tt.combined, func(t *testing.T) {
			expr, tz := Decode(tt.combined)
			assert.Equal(t, tt.expr, expr)
			assert.Equal(t, tt.tz, tz)
		})
	}
}

func TestCodecRoundTrip(t *testing.T) {
	zones := []string{"UTC", "Europe/Warsaw", "America/Los_Angeles", "Australia/Sydney"}
	exprs := []string{"0 9 * * 1", "30 8 * * 1-5", "0 0 1 1 *", "*/5 * * * *"}

	for _, tz := range zones {
		for _, expr := range exprs {
			combined, err := Encode(tz, expr)
			require.NoError(t, err)

			gotExpr, gotTZ := Decode(combined)
			assert.Equal(t, expr, gotExpr)
			assert.Equal(t, tz, gotTZ)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("Europe/Warsaw"))

	err := ValidateTimezone("Mars/Olympus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid timezone")
}

func TestNextFire(t *testing.T) {
	// Wednesday 2026-01-21 12:00 UTC, 13:00 in Warsaw.
	now := time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)

	next, err := NextFire("Europe/Warsaw", "0 9 * * 1", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 26, 8, 0, 0, 0, time.UTC), next.UTC())
	assert.Equal(t, "Europe/Warsaw", next.Location().String())

	next, err = NextFire("UTC", "0 0 1 1 *", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), next.UTC())

	_, err = NextFire("UTC", "not a cron", now)
	assert.Error(t, err)

	_, err = NextFire("Nowhere/City", "0 9 * * 1", now)
	assert.Error(t, err)
}

func TestParseable(t *testing.T) {
	assert.True(t, Parseable("0 9 * * 1-5"))
	assert.True(t, Parseable("@daily"))
	assert.False(t, Parseable("0 9 * *"))
}
