package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

func TestFormatNominal(t *testing.T) {
	cases := map[string]string{
		"1500000000000": "Rp 1.500 triliun",
		"2345678901":    "Rp 2.346 miliar",
		"85000000":      "Rp 85.0 juta",
		"1000000":       "Rp 1.0 juta",
		"12345":         "Rp 12.345",
		"999":           "Rp 999",
		"0":             "Rp 0",
	}

	for in, want := range cases {
		assert.Equal(t, want, FormatNominal(decimal.RequireFromString(in)), in)
	}
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 1.250.000", FormatRupiah(decimal.RequireFromString("1250000.75")))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "85.00%", FormatPercent(decimal.RequireFromString("0.85")))
	assert.Equal(t, "33.33%", FormatPercent(decimal.NewFromInt(1).Div(decimal.NewFromInt(3))))
}

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("abc", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseSessionToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.SessionID)
}

func TestSessionToken_Rejected(t *testing.T) {
	token, err := GenerateSessionToken("abc", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "other")
	assert.True(t, errors.Is(err, constants.ErrUnauthorized))

	expired, err := GenerateSessionToken("abc", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseSessionToken(expired, "secret")
	assert.True(t, errors.Is(err, constants.ErrUnauthorized))

	_, err = ParseSessionToken("garbage", "secret")
	assert.True(t, errors.Is(err, constants.ErrUnauthorized))
}
