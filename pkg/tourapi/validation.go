package tourapi

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// Validate checks a request payload against its validate struct tags.
// Failures wrap ErrInvalidPayload.
func Validate(payload interface{}) error {
	err := validate.Struct(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return nil
}
