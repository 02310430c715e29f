// Package ids defines the typed record identifiers used across the library.
//
// Every entity kind has its own nominal ID type. All of them share one generic
// implementation, ID[K], where K is an unexported marker type naming the
// table the key belongs to. The compiler therefore rejects a ProjectID where a
// FolderID is expected, and the only place a kind check happens at runtime is
// where an untyped string enters the system (Parse*, UnmarshalText).
//
// The wire form of an ID is "kind:key", e.g. "folder:root".
package ids

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"lotuslab/internal/domain"
)

// Kind is implemented by the marker types that tag an ID with its table.
type Kind interface {
	Table() string
}

type (
	folderKind       struct{}
	projectKind      struct{}
	listKind         struct{}
	listItemKind     struct{}
	tagKind          struct{}
	cardCoreKind     struct{}
	cardPrintingKind struct{}
	setKind          struct{}
	artistKind       struct{}
)

func (folderKind) Table() string       { return "folder" }
func (projectKind) Table() string      { return "project" }
func (listKind) Table() string         { return "list" }
func (listItemKind) Table() string     { return "list_item" }
func (tagKind) Table() string          { return "tag" }
func (cardCoreKind) Table() string     { return "card_core" }
func (cardPrintingKind) Table() string { return "card_printing" }
func (setKind) Table() string          { return "set" }
func (artistKind) Table() string       { return "artist" }

type (
	FolderID       = ID[folderKind]
	ProjectID      = ID[projectKind]
	ListID         = ID[listKind]
	ListItemID     = ID[listItemKind]
	TagID          = ID[tagKind]
	CardCoreID     = ID[cardCoreKind]
	CardPrintingID = ID[cardPrintingKind]
	SetID          = ID[setKind]
	ArtistID       = ID[artistKind]
)

// RootKey is the reserved key of the root folder.
const RootKey = "root"

// MaxKeyLength bounds the key part of an ID.
const MaxKeyLength = 64

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ID is a record reference whose table is fixed by K.
// The zero value is not a valid ID; see IsZero.
type ID[K Kind] struct {
	key string
}

// Key returns the table-local key.
func (id ID[K]) Key() string { return id.key }

// Table returns the table (kind) name of the ID.
func (id ID[K]) Table() string {
	var k K
	return k.Table()
}

// String renders the canonical "kind:key" wire form.
func (id ID[K]) String() string {
	if id.key == "" {
		return ""
	}
	return id.Table() + ":" + id.key
}

// IsZero reports whether the ID is unset.
func (id ID[K]) IsZero() bool { return id.key == "" }

// MarshalText implements encoding.TextMarshaler.
func (id ID[K]) MarshalText() ([]byte, error) {
	if id.key == "" {
		return nil, fmt.Errorf("%w: empty %s id", domain.ErrInvalidInput, id.Table())
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It performs the same
// kind check as the Parse functions.
func (id *ID[K]) UnmarshalText(text []byte) error {
	parsed, err := parse[K](string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func parse[K Kind](raw string) (ID[K], error) {
	var k K
	table, key, ok := strings.Cut(raw, ":")
	if !ok {
		return ID[K]{}, fmt.Errorf("%w: %q is not a %s id", domain.ErrInvalidInput, raw, k.Table())
	}
	if table != k.Table() {
		return ID[K]{}, fmt.Errorf("%w: %q is not a %s id", domain.ErrInvalidInput, raw, k.Table())
	}
	return fromKey[K](key)
}

func fromKey[K Kind](key string) (ID[K], error) {
	var k K
	if err := validateKey(key); err != nil {
		return ID[K]{}, fmt.Errorf("%w: %s key %q: %v", domain.ErrInvalidInput, k.Table(), key, err)
	}
	return ID[K]{key: key}, nil
}

func validateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("empty key")
	case len(key) > MaxKeyLength:
		return fmt.Errorf("key longer than %d bytes", MaxKeyLength)
	case !keyPattern.MatchString(key):
		return fmt.Errorf("key may only contain letters, digits, '-' and '_'")
	}
	return nil
}

// NewKey returns a fresh time-ordered key for stores that have no auto-id
// facility of their own.
func NewKey() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RootFolderID returns the reserved root folder reference. It is the only
// constructor that skips validation.
func RootFolderID() FolderID {
	return FolderID{key: RootKey}
}

// IsRoot reports whether id is the root folder.
func IsRoot(id FolderID) bool {
	return id.key == RootKey
}
