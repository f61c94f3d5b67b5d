package validator_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fieldkit/pkg/validator"
)

func TestUUID(t *testing.T) {
	t.Parallel()
	v := validator.UUID()

	t.Run("accepts uuid values", func(t *testing.T) {
		assert.NoError(t, v.Validate(uuid.New()))
	})

	t.Run("accepts canonical strings", func(t *testing.T) {
		assert.NoError(t, v.Validate("550e8400-e29b-41d4-a716-446655440000"))
	})

	t.Run("rejects nil uuid", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(uuid.Nil), validator.ErrValidationFailed)
		assert.Error(t, v.Validate(uuid.Nil.String()))
	})

	t.Run("rejects malformed strings", func(t *testing.T) {
		assert.Error(t, v.Validate("not-a-uuid"))
		assert.Error(t, v.Validate("{550e8400-e29b-41d4-a716-446655440000}"))
		assert.Error(t, v.Validate("550e8400-e29b-41d4-a716-44665544000g"))
	})

	t.Run("rejects other types", func(t *testing.T) {
		assert.Error(t, v.Validate(42))
		assert.Error(t, v.Validate(nil))
	})
}
