package database

import (
	"log/slog"

	repo "lotuslab/internal/domain/repositories/library"
)

// NewStore wires every SQLite repository around db.
func NewStore(db *DB, logger *slog.Logger) *repo.Store {
	tx := NewTransactionManager(db, logger)
	return &repo.Store{
		Folders:   &FolderRepository{db: db, tx: tx},
		Projects:  &ProjectRepository{db: db},
		Lists:     &ListRepository{db: db},
		ListItems: &ListItemRepository{db: db},
		Tags:      &TagRepository{db: db},
		Tx:        tx,
	}
}
