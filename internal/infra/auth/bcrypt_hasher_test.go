package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("Str0ng!Password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Str0ng!Password", hash)

	assert.True(t, hasher.Check("Str0ng!Password", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("Str0ng!Password")
	require.NoError(t, err)
	second, err := hasher.Hash("Str0ng!Password")
	require.NoError(t, err)

	// Same plaintext, different salts.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("Str0ng!Password", first))
	assert.True(t, hasher.Check("Str0ng!Password", second))
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	assert.False(t, hasher.Check("Str0ng!Password", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("Str0ng!Password", ""))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{name: "valid", password: "Str0ng!Secret"},
		{name: "too short", password: "Ab1!", wantErr: "at least 8 characters"},
		{name: "missing lowercase", password: "STR0NG!SECRET", wantErr: "lowercase letter"},
		{name: "missing uppercase", password: "str0ng!secret", wantErr: "uppercase letter"},
		{name: "missing number", password: "Strong!Secret", wantErr: "number"},
		{name: "missing special", password: "Str0ngSecret", wantErr: "special character"},
		{name: "forbidden word", password: "MyPassword1!", wantErr: "forbidden words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
