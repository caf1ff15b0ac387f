package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	for _, algorithm := range []string{"bcrypt", "argon2"} {
		t.Run(algorithm, func(t *testing.T) {
			h := NewPasswordHasher(algorithm)

			hash, err := h.Hash("correct horse")
			require.NoError(t, err)
			assert.NotEqual(t, "correct horse", hash)

			ok, err := h.Verify("correct horse", hash)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = h.Verify("wrong horse", hash)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestPasswordHasherVerifiesEitherEncoding(t *testing.T) {
	argonHash, err := NewPasswordHasher("argon2").Hash("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(argonHash, "$argon2"))

	ok, err := NewPasswordHasher("bcrypt").Verify("pw", argonHash)
	require.NoError(t, err)
	assert.True(t, ok)
}
