package sqlutil

import (
	"fmt"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
)

// Scanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Column lists, in the order the Scan* functions expect them.
const (
	FolderColumns   = "id, name, parent_id, created_at, updated_at"
	ProjectColumns  = "id, name, folder_id, created_at, updated_at"
	ListColumns     = "id, name, project_id, created_at, updated_at"
	ListItemColumns = "id, list_id, card_core, selected_printing, quantity, notes, created_at, updated_at"
	TagColumns      = "id, name, color, created_at, updated_at"
)

func ScanFolder(s Scanner) (*models.Folder, error) {
	var (
		f         models.Folder
		key       string
		parentKey *string
	)
	if err := s.Scan(&key, &f.Name, &parentKey, Time(&f.CreatedAt), Time(&f.UpdatedAt)); err != nil {
		return nil, err
	}
	var err error
	if f.ID, err = ids.FolderIDFromKey(key); err != nil {
		return nil, corrupt("folder", err)
	}
	if f.Parent, err = optional(parentKey, ids.FolderIDFromKey); err != nil {
		return nil, corrupt("folder", err)
	}
	return &f, nil
}

func ScanProject(s Scanner) (*models.Project, error) {
	var (
		p         models.Project
		key       string
		folderKey string
	)
	if err := s.Scan(&key, &p.Name, &folderKey, Time(&p.CreatedAt), Time(&p.UpdatedAt)); err != nil {
		return nil, err
	}
	var err error
	if p.ID, err = ids.ProjectIDFromKey(key); err != nil {
		return nil, corrupt("project", err)
	}
	if p.Folder, err = ids.FolderIDFromKey(folderKey); err != nil {
		return nil, corrupt("project", err)
	}
	return &p, nil
}

func ScanList(s Scanner) (*models.List, error) {
	var (
		l          models.List
		key        string
		projectKey string
	)
	if err := s.Scan(&key, &l.Name, &projectKey, Time(&l.CreatedAt), Time(&l.UpdatedAt)); err != nil {
		return nil, err
	}
	var err error
	if l.ID, err = ids.ListIDFromKey(key); err != nil {
		return nil, corrupt("list", err)
	}
	if l.Project, err = ids.ProjectIDFromKey(projectKey); err != nil {
		return nil, corrupt("list", err)
	}
	return &l, nil
}

func ScanListItem(s Scanner) (*models.ListItem, error) {
	var (
		item        models.ListItem
		key         string
		listKey     string
		cardKey     string
		printingKey *string
		quantity    int64
	)
	if err := s.Scan(&key, &listKey, &cardKey, &printingKey, &quantity, &item.Notes, Time(&item.CreatedAt), Time(&item.UpdatedAt)); err != nil {
		return nil, err
	}
	item.Quantity = int(quantity)
	var err error
	if item.ID, err = ids.ListItemIDFromKey(key); err != nil {
		return nil, corrupt("list_item", err)
	}
	if item.List, err = ids.ListIDFromKey(listKey); err != nil {
		return nil, corrupt("list_item", err)
	}
	if item.CardCore, err = ids.CardCoreIDFromKey(cardKey); err != nil {
		return nil, corrupt("list_item", err)
	}
	if item.SelectedPrinting, err = optional(printingKey, ids.CardPrintingIDFromKey); err != nil {
		return nil, corrupt("list_item", err)
	}
	return &item, nil
}

func ScanTag(s Scanner) (*models.Tag, error) {
	var (
		t   models.Tag
		key string
	)
	if err := s.Scan(&key, &t.Name, &t.Color, Time(&t.CreatedAt), Time(&t.UpdatedAt)); err != nil {
		return nil, err
	}
	var err error
	if t.ID, err = ids.TagIDFromKey(key); err != nil {
		return nil, corrupt("tag", err)
	}
	return &t, nil
}

// OptionalKey returns the key of id, or nil for a nil id.
func OptionalKey[K ids.Kind](id *ids.ID[K]) *string {
	if id == nil {
		return nil
	}
	k := id.Key()
	return &k
}

func optional[K ids.Kind](key *string, from func(string) (ids.ID[K], error)) (*ids.ID[K], error) {
	if key == nil {
		return nil, nil
	}
	id, err := from(*key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// A stored key failing validation means the row was not written by us.
func corrupt(table string, err error) error {
	return fmt.Errorf("corrupt %s row: %v", table, err)
}
