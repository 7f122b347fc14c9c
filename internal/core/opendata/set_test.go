package opendata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringSet(t *testing.T) {
	s := NewStringSet()
	require.Equal(t, 0, s.Len())

	s.Add("a")
	s.Add("b")
	s.Add("a") // idempotent
	s.Add("")  // blanks never count
	require.Equal(t, 2, s.Len())
	require.True(t, s.Has("a"))
	require.False(t, s.Has(""))

	require.Equal(t, []string{"a", "b"}, s.Values())
}
