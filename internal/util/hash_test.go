package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordDeterministic(t *testing.T) {
	first := HashPassword("secret-password")
	second := HashPassword("secret-password")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestHashPasswordKnownVector(t *testing.T) {
	// sha256("password") hex digest
	assert.Equal(t,
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
		HashPassword("password"),
	)
}

func TestHashPasswordDistinguishesInputs(t *testing.T) {
	assert.NotEqual(t, HashPassword("password"), HashPassword("Password"))
	assert.NotEqual(t, HashPassword("password"), HashPassword("password "))
}
