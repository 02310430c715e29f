package library

import (
	"time"

	"lotuslab/internal/domain/ids"
	"lotuslab/internal/domain/patch"
)

type Folder struct {
	ID        ids.FolderID  `json:"id"`
	Name      string        `json:"name"`
	Parent    *ids.FolderID `json:"parent"` // nil only for the root folder
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsRoot reports whether f is the root folder.
func (f *Folder) IsRoot() bool {
	return ids.IsRoot(f.ID)
}

type NewFolder struct {
	Name   string        `json:"name"`
	Parent *ids.FolderID `json:"parent,omitempty"` // nil means root
}

type PatchFolder struct {
	Name   patch.Patch[string]       `json:"name,omitzero"`
	Parent patch.Patch[ids.FolderID] `json:"parent,omitzero"`
}

// IsEmpty reports whether every field is Ignore.
func (p PatchFolder) IsEmpty() bool {
	return p.Name.IsIgnore() && p.Parent.IsIgnore()
}

// FolderChildren is the derived view of a folder's direct children.
type FolderChildren struct {
	Folders  []Folder  `json:"folders"`
	Projects []Project `json:"projects"`
}
