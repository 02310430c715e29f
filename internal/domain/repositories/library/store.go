package library

import "lotuslab/internal/domain/repositories"

// Store bundles every repository a persistence backend provides, plus the
// transaction manager that groups their calls.
type Store struct {
	Folders   FolderRepository
	Projects  ProjectRepository
	Lists     ListRepository
	ListItems ListItemRepository
	Tags      TagRepository
	Tx        repositories.TransactionManager
}
