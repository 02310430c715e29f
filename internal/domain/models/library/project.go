package library

import (
	"time"

	"lotuslab/internal/domain/ids"
	"lotuslab/internal/domain/patch"
)

type Project struct {
	ID        ids.ProjectID `json:"id"`
	Name      string        `json:"name"`
	Folder    ids.FolderID  `json:"folder"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type NewProject struct {
	Name   string        `json:"name"`
	Folder *ids.FolderID `json:"folder,omitempty"` // nil means root
}

type PatchProject struct {
	Name   patch.Patch[string]       `json:"name,omitzero"`
	Folder patch.Patch[ids.FolderID] `json:"folder,omitzero"`
}

func (p PatchProject) IsEmpty() bool {
	return p.Name.IsIgnore() && p.Folder.IsIgnore()
}
