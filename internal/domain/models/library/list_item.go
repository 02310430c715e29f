package library

import (
	"time"

	"lotuslab/internal/domain/ids"
	"lotuslab/internal/domain/patch"
)

// ListItem references a catalog card, and optionally one printing of it,
// from inside a list. The catalog itself lives outside this service.
type ListItem struct {
	ID               ids.ListItemID      `json:"id"`
	List             ids.ListID          `json:"list"`
	CardCore         ids.CardCoreID      `json:"card_core"`
	SelectedPrinting *ids.CardPrintingID `json:"selected_printing"`
	Quantity         int                 `json:"quantity"`
	Notes            *string             `json:"notes"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// DefaultQuantity is used when a new item does not specify one.
const DefaultQuantity = 1

type NewListItem struct {
	List             ids.ListID          `json:"list"`
	CardCore         ids.CardCoreID      `json:"card_core"`
	SelectedPrinting *ids.CardPrintingID `json:"selected_printing,omitempty"`
	Quantity         *int                `json:"quantity,omitempty"`
	Notes            *string             `json:"notes,omitempty"`
}

type PatchListItem struct {
	SelectedPrinting patch.Patch[ids.CardPrintingID] `json:"selected_printing,omitzero"`
	Quantity         patch.Patch[int]                `json:"quantity,omitzero"`
	Notes            patch.Patch[string]             `json:"notes,omitzero"`
}

func (p PatchListItem) IsEmpty() bool {
	return p.SelectedPrinting.IsIgnore() && p.Quantity.IsIgnore() && p.Notes.IsIgnore()
}
