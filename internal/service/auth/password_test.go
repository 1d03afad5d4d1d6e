package auth_test

import (
	"strings"
	"testing"

	"github.com/gabinete-digital/gabinete-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherAndVerifier(t *testing.T) {
	t.Parallel()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	verifier := auth.NewBcryptVerifier()

	hashed, err := hasher.Hash("s3nh@-Forte")
	require.NoError(t, err)
	assert.NotEqual(t, "s3nh@-Forte", hashed)

	assert.NoError(t, verifier.Compare(hashed, "s3nh@-Forte"))
	assert.ErrorIs(t, verifier.Compare(hashed, "errada"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestBcryptHasherErrors(t *testing.T) {
	t.Parallel()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	_, err := hasher.Hash("")
	assert.ErrorIs(t, err, auth.ErrEmptyPassword)

	_, err = hasher.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	t.Parallel()

	hashed, err := auth.NewBcryptHasher(1000).Hash("x")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
