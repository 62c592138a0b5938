package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatKip(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 LAK"},
		{500, "500 LAK"},
		{1500, "1,500 LAK"},
		{150000, "150,000 LAK"},
		{4500000, "4,500,000 LAK"},
		{-225000, "-225,000 LAK"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatKip(tc.in))
	}
}

func TestParseKipToInt(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"4,500,000 LAK", 4500000},
		{"4.500.000", 4500000},
		{" 150000 ", 150000},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := ParseKipToInt(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseKipToIntRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "LAK", "abc"} {
		_, err := ParseKipToInt(in)
		assert.Error(t, err, in)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 7, 999, 1000, 4500000, 987654321} {
		got, err := ParseKipToInt(FormatKip(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}
