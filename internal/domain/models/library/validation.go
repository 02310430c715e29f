package library

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lotuslab/internal/domain"
	"lotuslab/internal/domain/patch"
)

// The Validate methods check the shape of a patch: fields whose entity type is
// not optional can't be cleared. Services layer their own content rules on
// top (name length, colour format).

func (p PatchFolder) Validate() error {
	return invalid(validation.ValidateStruct(&p,
		validation.Field(&p.Name, patch.NotClear),
		// Only the root has no parent, and the root is provisioned by the schema.
		validation.Field(&p.Parent, patch.NotClear),
	))
}

func (p PatchProject) Validate() error {
	return invalid(validation.ValidateStruct(&p,
		validation.Field(&p.Name, patch.NotClear),
		validation.Field(&p.Folder, patch.NotClear),
	))
}

func (p PatchList) Validate() error {
	return invalid(validation.ValidateStruct(&p,
		validation.Field(&p.Name, patch.NotClear),
		validation.Field(&p.Project, patch.NotClear),
	))
}

func (p PatchListItem) Validate() error {
	return invalid(validation.ValidateStruct(&p,
		validation.Field(&p.Quantity, patch.NotClear, patch.Each(validation.By(positive))),
	))
}

func (p PatchTag) Validate() error {
	return invalid(validation.ValidateStruct(&p,
		validation.Field(&p.Name, patch.NotClear),
	))
}

func positive(value interface{}) error {
	if q, ok := value.(int); ok && q < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}
