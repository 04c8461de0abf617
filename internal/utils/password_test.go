package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := VerifyPassword(hash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "secret2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyCorruptHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-bcrypt-hash", "secret1")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCorruptCredential)
}

func TestDummyHashIsStable(t *testing.T) {
	h := DummyHash(bcrypt.MinCost)
	require.NotEmpty(t, h)
	assert.Equal(t, h, DummyHash(bcrypt.MinCost))

	ok, err := VerifyPassword(h, "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDummyHashFollowsCost(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost, bcrypt.MinCost + 2} {
		got, err := bcrypt.Cost([]byte(DummyHash(cost)))
		require.NoError(t, err)
		assert.Equal(t, cost, got)
	}

	got, err := bcrypt.Cost([]byte(DummyHash(0)))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, got)
}
