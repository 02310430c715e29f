// Package memory is an in-process store backed by maps. It enforces the same
// references and cascades as the SQL schema and is used by tests and by
// DB_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lotuslab/internal/domain"
	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	"lotuslab/internal/domain/repositories"
	repo "lotuslab/internal/domain/repositories/library"
)

type state struct {
	folders   map[string]models.Folder
	projects  map[string]models.Project
	lists     map[string]models.List
	listItems map[string]models.ListItem
	tags      map[string]models.Tag
}

func newState(now time.Time) state {
	root := ids.RootFolderID()
	return state{
		folders: map[string]models.Folder{
			root.Key(): {ID: root, Name: "Library", CreatedAt: now, UpdatedAt: now},
		},
		projects:  map[string]models.Project{},
		lists:     map[string]models.List{},
		listItems: map[string]models.ListItem{},
		tags:      map[string]models.Tag{},
	}
}

// clone copies every map. Entity values are copied on read and write, so a
// shallow copy of each map is enough.
func (s state) clone() state {
	return state{
		folders:   cloneMap(s.folders),
		projects:  cloneMap(s.projects),
		lists:     cloneMap(s.lists),
		listItems: cloneMap(s.listItems),
		tags:      cloneMap(s.tags),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DB holds the shared state behind every memory repository.
type DB struct {
	mu    sync.RWMutex
	state state

	// txMu serializes transactions; a transaction restores its snapshot on
	// failure, so two of them must not overlap.
	txMu sync.Mutex

	now func() time.Time
}

// New returns an empty database containing only the root folder.
func New() *DB {
	now := func() time.Time { return time.Now().UTC() }
	return &DB{state: newState(now()), now: now}
}

// NewStore wires every memory repository around db.
func NewStore(db *DB) *repo.Store {
	return &repo.Store{
		Folders:   &FolderRepository{db: db},
		Projects:  &ProjectRepository{db: db},
		Lists:     &ListRepository{db: db},
		ListItems: &ListItemRepository{db: db},
		Tags:      &TagRepository{db: db},
		Tx:        db,
	}
}

type txKey struct{}

var _ repositories.TransactionManager = (*DB)(nil)

// ExecTx runs fn as one unit. If fn fails, every change made since the
// transaction began is reverted. Writes from outside the transaction are not
// isolated from it; callers serialize writers.
func (db *DB) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.RLock()
	snapshot := db.state.clone()
	db.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		db.mu.Lock()
		db.state = snapshot
		db.mu.Unlock()
		return err
	}
	return nil
}

func missingRef(resource string, ref fmt.Stringer) error {
	return fmt.Errorf("%s: referenced record %s does not exist: %w", resource, ref, domain.ErrInvalidInput)
}

func stillReferenced(resource string, ref, by fmt.Stringer) error {
	return fmt.Errorf("%s %s is still referenced by %s: %w", resource, ref, by, domain.ErrInvalidInput)
}

func notFound(resource string, ref fmt.Stringer) error {
	return fmt.Errorf("%s %s: %w", resource, ref, domain.ErrNotFound)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Reset discards every record, leaving only the root folder.
func (db *DB) Reset() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state = newState(db.now())
}
