package ids

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Required rejects an unset ID. validation.Required can't be used because it
// treats every struct value as present.
var Required validation.Rule = requiredRule{}

type requiredRule struct{}

func (requiredRule) Validate(value interface{}) error {
	if id, ok := value.(interface{ IsZero() bool }); ok && id.IsZero() {
		return errors.New("is required")
	}
	return nil
}
