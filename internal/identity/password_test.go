package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword()
		require.NoError(t, err)

		assert.Len(t, pw, 16)
		assert.True(t, strings.ContainsAny(pw, lowerChars), "missing lowercase in %q", pw)
		assert.True(t, strings.ContainsAny(pw, upperChars), "missing uppercase in %q", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "missing digit in %q", pw)
		assert.True(t, strings.ContainsAny(pw, symbolChars), "missing symbol in %q", pw)
		assert.False(t, seen[pw], "duplicate password")
		seen[pw] = true
	}
}
