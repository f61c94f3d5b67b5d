package validator

import (
	"fmt"

	"github.com/google/uuid"
)

// UUIDValidator accepts uuid.UUID values other than uuid.Nil and strings in
// canonical UUID form.
type UUIDValidator struct{}

// UUID returns a validator for identifiers.
func UUID() UUIDValidator {
	return UUIDValidator{}
}

func (UUIDValidator) Validate(value any) error {
	switch v := value.(type) {
	case uuid.UUID:
		if v != uuid.Nil {
			return nil
		}
	case string:
		// Fast rejection before parsing: uuid.Parse also accepts urn and
		// braced forms which are not stored as-is.
		if len(v) == 36 {
			if id, err := uuid.Parse(v); err == nil && id != uuid.Nil {
				return nil
			}
		}
	}
	return newError("validation.uuid",
		fmt.Sprintf("Not a valid UUID: <%v>", value),
		map[string]any{"value": value},
	)
}
