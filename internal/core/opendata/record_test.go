package opendata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	padded := "  ACME S.A.  "
	blank := "   "
	empty := ""

	require.Equal(t, "", Text(nil))
	require.Equal(t, "", Text(&empty))
	require.Equal(t, "", Text(&blank))
	require.Equal(t, "ACME S.A.", Text(&padded))
}

func TestNormalizeBrand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  nike ", "NIKE"},
		{"NIKE", "NIKE"},
		{"Nike", "NIKE"},
		{"", ""},
		{"   ", ""},
		{"3m", "3M"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, NormalizeBrand(tc.input), "input %q", tc.input)
	}
}

func TestMonthKey(t *testing.T) {
	require.Equal(t, "2026-03", MonthKey(time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)))
	require.Equal(t, "2025-12", MonthKey(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
}
