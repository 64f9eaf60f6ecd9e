package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func never(string) (bool, error) { return false, nil }

func TestNewShape(t *testing.T) {
	s, err := New(never)
	require.NoError(t, err)
	assert.Len(t, s, Length)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
	}
}

func TestNewRetriesOnCollision(t *testing.T) {
	attempts := 0
	s, err := New(func(string) (bool, error) {
		attempts++
		return attempts <= 3, nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, s)
	assert.Equal(t, 4, attempts)
}

func TestNewAttemptCap(t *testing.T) {
	attempts := 0
	_, err := New(func(string) (bool, error) {
		attempts++
		return true, nil
	})
	assert.ErrorIs(t, err, ErrSpaceExhausted)
	assert.Equal(t, maxAttempts, attempts)
}

func TestNoPersistedCollisions(t *testing.T) {
	taken := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		s, err := New(func(c string) (bool, error) { return taken[c], nil })
		require.NoError(t, err)
		require.False(t, taken[s], "collision persisted for %q", s)
		taken[s] = true
	}
}
