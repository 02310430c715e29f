package postgres

import (
	repo "lotuslab/internal/domain/repositories/library"
)

// NewStore wires every PostgreSQL repository around one pool.
func NewStore(config *RepositoryConfig) *repo.Store {
	return &repo.Store{
		Folders:   NewFolderRepository(config),
		Projects:  NewProjectRepository(config),
		Lists:     NewListRepository(config),
		ListItems: NewListItemRepository(config),
		Tags:      NewTagRepository(config),
		Tx:        NewTransactionManager(config),
	}
}
