package patch

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type stater interface {
	State() State
}

type valuer interface {
	anyValue() (interface{}, bool)
}

// NotClear rejects Clear for fields whose entity type is not optional.
var NotClear validation.Rule = notClearRule{}

type notClearRule struct{}

func (notClearRule) Validate(value interface{}) error {
	if p, ok := value.(stater); ok && p.State() == StateClear {
		return errors.New("cannot be cleared")
	}
	return nil
}

// Each applies rules to the assigned value of a Set patch and is a no-op for
// Ignore and Clear.
func Each(rules ...validation.Rule) validation.Rule {
	return setRule{rules: rules}
}

type setRule struct {
	rules []validation.Rule
}

func (r setRule) Validate(value interface{}) error {
	p, ok := value.(valuer)
	if !ok {
		return nil
	}
	v, ok := p.anyValue()
	if !ok {
		return nil
	}
	return validation.Validate(v, r.rules...)
}
