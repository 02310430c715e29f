package library

import (
	"time"

	"lotuslab/internal/domain/ids"
	"lotuslab/internal/domain/patch"
)

type Tag struct {
	ID        ids.TagID `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"` // "#RRGGBB"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewTag struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

type PatchTag struct {
	Name  patch.Patch[string] `json:"name,omitzero"`
	Color patch.Patch[string] `json:"color,omitzero"`
}

func (p PatchTag) IsEmpty() bool {
	return p.Name.IsIgnore() && p.Color.IsIgnore()
}
