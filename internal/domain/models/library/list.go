package library

import (
	"time"

	"lotuslab/internal/domain/ids"
	"lotuslab/internal/domain/patch"
)

type List struct {
	ID        ids.ListID    `json:"id"`
	Name      string        `json:"name"`
	Project   ids.ProjectID `json:"project"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type NewList struct {
	Name    string        `json:"name"`
	Project ids.ProjectID `json:"project"`
}

type PatchList struct {
	Name    patch.Patch[string]        `json:"name,omitzero"`
	Project patch.Patch[ids.ProjectID] `json:"project,omitzero"`
}

func (p PatchList) IsEmpty() bool {
	return p.Name.IsIgnore() && p.Project.IsIgnore()
}
