package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortRef(t *testing.T) {
	id := "3f2a9c1b-77aa-4e0e-9d55-0a1b2c3d4e5f"
	assert.Equal(t, "#3F2A9C1B", ShortRef(id, 8))
	assert.Equal(t, "#3F2A9C1B77AA4E0E9D550A1B2C3D4E5F", ShortRef(id, 0))
}

func TestNilIfBlank(t *testing.T) {
	assert.Nil(t, NilIfBlank(" \t "))
	if got := NilIfBlank("  hello "); assert.NotNil(t, got) {
		assert.Equal(t, "hello", *got)
	}
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct-horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Email  string `validate:"required,email"`
		Status string `validate:"required,oneof=pending shipped"`
	}

	assert.Nil(t, ValidateStruct(form{Email: "a@b.co", Status: "pending"}))

	errs := ValidateStruct(form{Email: "nope", Status: "lost"})
	assert.Equal(t, "Invalid email format", errs["Email"])
	assert.Equal(t, "Must be one of: pending, shipped", errs["Status"])
	assert.Equal(t, "Email: Invalid email format; Status: Must be one of: pending, shipped", FormatValidationErrors(errs))
}
