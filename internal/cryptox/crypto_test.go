package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	a := GenerateSalt(16)
	b := GenerateSalt(16)
	require.Len(t, a, 16)
	require.Len(t, b, 16)
	assert.NotEqual(t, a, b)
}

func TestVerifyUnlock(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := GenerateSalt(16)
	verifier := MakeVerifier(DeriveUnlockKey(password, salt))

	assert.True(t, VerifyUnlock(password, salt, verifier))
	assert.False(t, VerifyUnlock([]byte("wrong"), salt, verifier))
	assert.False(t, VerifyUnlock(password, GenerateSalt(16), verifier))
}

func TestDeriveUnlockKeyIsDeterministic(t *testing.T) {
	password := []byte("pw")
	salt := []byte("0123456789abcdef")

	k1 := DeriveUnlockKey(password, salt)
	k2 := DeriveUnlockKey(password, salt)
	require.Len(t, k1, 32)
	assert.Equal(t, k1, k2)
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3}
	Wipe(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
}
