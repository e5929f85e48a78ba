package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestGeneratePassword(t *testing.T) {
	p, err := GeneratePassword(12)
	require.NoError(t, err)
	assert.Len(t, p, 12)
	for _, r := range p {
		assert.Contains(t, passwordAlphabet, string(r))
	}

	// Non-positive lengths fall back to the default.
	p, err = GeneratePassword(0)
	require.NoError(t, err)
	assert.Len(t, p, 10)

	a, err := GeneratePassword(16)
	require.NoError(t, err)
	b, err := GeneratePassword(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBuildUsername(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"CARLOS", "GOMEZ", "cgomez"},
		{"Ana María", "Santos-Ruiz", "asantosruiz"},
		{"  Luis ", " DEL RIO ", "ldelrio"},
		{"", "GOMEZ", "gomez"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BuildUsername(tc.first, tc.last), "%s %s", tc.first, tc.last)
	}
}

func TestBuildUsernameStripsSymbols(t *testing.T) {
	u := BuildUsername("Jo", "O'Neil 2")
	assert.False(t, strings.ContainsAny(u, "' "))
	assert.Equal(t, "joneil2", u)
}
