package library

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/unicode/norm"

	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	repo "lotuslab/internal/domain/repositories/library"
)

var (
	noSlash    = regexp.MustCompile(`^[^/]+$`)
	colorValue = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// normalizeName trims surrounding space and composes the name to NFC, so
// visually identical names compare equal.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func nameRules(maxLength int) []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.RuneLength(1, maxLength),
		validation.Match(noSlash).Error("name cannot contain slashes"),
	}
}

var colorRules = []validation.Rule{
	validation.Match(colorValue).Error("color must be #RRGGBB"),
}

// invalid tags a validation failure with ErrInvalidInput.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

// ResourceValidator checks that the container a request points at exists.
// A missing container is ErrTargetNotFound, distinct from the ErrNotFound
// of the resource being operated on.
type ResourceValidator struct {
	store *repo.Store
}

func NewResourceValidator(store *repo.Store) *ResourceValidator {
	return &ResourceValidator{store: store}
}

// ValidateFolder ensures a destination folder exists
func (v *ResourceValidator) ValidateFolder(ctx context.Context, id ids.FolderID) error {
	_, err := v.store.Folders.Get(ctx, id)
	return target(err, id)
}

// ValidateProject ensures a destination project exists
func (v *ResourceValidator) ValidateProject(ctx context.Context, id ids.ProjectID) error {
	_, err := v.store.Projects.Get(ctx, id)
	return target(err, id)
}

// ValidateList ensures a destination list exists
func (v *ResourceValidator) ValidateList(ctx context.Context, id ids.ListID) error {
	_, err := v.store.Lists.Get(ctx, id)
	return target(err, id)
}

func target(err error, ref fmt.Stringer) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", ref, domain.ErrTargetNotFound)
	}
	return err
}
