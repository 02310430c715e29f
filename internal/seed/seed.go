// Package seed builds a library tree from a YAML description through the
// library services, so seeded data passes the same validation as RPC input.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"lotuslab/internal/domain/ids"
	models "lotuslab/internal/domain/models/library"
	"lotuslab/internal/service/library"
)

//go:embed default.yaml
var defaultTree []byte

// Tree is the root of a seed file. Top-level projects go in the root folder.
type Tree struct {
	Tags     []Tag     `yaml:"tags"`
	Folders  []Folder  `yaml:"folders"`
	Projects []Project `yaml:"projects"`
}

type Tag struct {
	Name  string  `yaml:"name"`
	Color *string `yaml:"color"`
}

type Folder struct {
	Name     string    `yaml:"name"`
	Folders  []Folder  `yaml:"folders"`
	Projects []Project `yaml:"projects"`
}

type Project struct {
	Name  string `yaml:"name"`
	Lists []List `yaml:"lists"`
}

type List struct {
	Name  string `yaml:"name"`
	Items []Item `yaml:"items"`
}

type Item struct {
	Card     string  `yaml:"card"`     // card_core key
	Printing string  `yaml:"printing"` // card_printing key, optional
	Quantity *int    `yaml:"quantity"`
	Notes    *string `yaml:"notes"`
}

// Stats counts what a seed run created.
type Stats struct {
	Folders   int
	Projects  int
	Lists     int
	ListItems int
	Tags      int
}

// Parse decodes a seed file. Unknown keys are rejected.
func Parse(r io.Reader) (*Tree, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var tree Tree
	if err := decoder.Decode(&tree); err != nil {
		if errors.Is(err, io.EOF) {
			return &tree, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &tree, nil
}

// Default returns the built-in sample library.
func Default() (*Tree, error) {
	var tree Tree
	if err := yaml.Unmarshal(defaultTree, &tree); err != nil {
		return nil, fmt.Errorf("parse default seed: %w", err)
	}
	return &tree, nil
}

// Seeder creates seed trees through the library services
type Seeder struct {
	services *library.Services
	logger   *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(services *library.Services, logger *slog.Logger) *Seeder {
	return &Seeder{services: services, logger: logger}
}

// Seed creates every tag, folder, project, list and item in tree. It stops
// at the first failure; what was created before it stays.
func (s *Seeder) Seed(ctx context.Context, tree *Tree) (Stats, error) {
	var stats Stats

	for _, tag := range tree.Tags {
		if _, err := s.services.Tags.NewTag(ctx, models.NewTag{Name: tag.Name, Color: tag.Color}); err != nil {
			return stats, fmt.Errorf("tag %q: %w", tag.Name, err)
		}
		stats.Tags++
	}

	root := ids.RootFolderID()
	for _, folder := range tree.Folders {
		if err := s.seedFolder(ctx, root, folder, &stats); err != nil {
			return stats, err
		}
	}
	for _, project := range tree.Projects {
		if err := s.seedProject(ctx, root, project, &stats); err != nil {
			return stats, err
		}
	}

	s.logger.Info("seed complete",
		"folders", stats.Folders,
		"projects", stats.Projects,
		"lists", stats.Lists,
		"list_items", stats.ListItems,
		"tags", stats.Tags,
	)
	return stats, nil
}

func (s *Seeder) seedFolder(ctx context.Context, parent ids.FolderID, f Folder, stats *Stats) error {
	folder, err := s.services.Folders.NewFolder(ctx, models.NewFolder{Name: f.Name, Parent: &parent})
	if err != nil {
		return fmt.Errorf("folder %q: %w", f.Name, err)
	}
	stats.Folders++

	for _, child := range f.Folders {
		if err := s.seedFolder(ctx, folder.ID, child, stats); err != nil {
			return fmt.Errorf("%s/%w", f.Name, err)
		}
	}
	for _, project := range f.Projects {
		if err := s.seedProject(ctx, folder.ID, project, stats); err != nil {
			return fmt.Errorf("%s/%w", f.Name, err)
		}
	}
	return nil
}

func (s *Seeder) seedProject(ctx context.Context, folder ids.FolderID, p Project, stats *Stats) error {
	project, err := s.services.Projects.NewProject(ctx, models.NewProject{Name: p.Name, Folder: &folder})
	if err != nil {
		return fmt.Errorf("project %q: %w", p.Name, err)
	}
	stats.Projects++

	for _, l := range p.Lists {
		list, err := s.services.Lists.NewList(ctx, models.NewList{Name: l.Name, Project: project.ID})
		if err != nil {
			return fmt.Errorf("project %q: list %q: %w", p.Name, l.Name, err)
		}
		stats.Lists++

		for _, item := range l.Items {
			req, err := item.request(list.ID)
			if err != nil {
				return fmt.Errorf("list %q: %w", l.Name, err)
			}
			if _, err := s.services.ListItems.NewListItem(ctx, req); err != nil {
				return fmt.Errorf("list %q: card %q: %w", l.Name, item.Card, err)
			}
			stats.ListItems++
		}
	}
	return nil
}

func (i Item) request(list ids.ListID) (models.NewListItem, error) {
	card, err := ids.CardCoreIDFromKey(i.Card)
	if err != nil {
		return models.NewListItem{}, err
	}
	req := models.NewListItem{
		List:     list,
		CardCore: card,
		Quantity: i.Quantity,
		Notes:    i.Notes,
	}
	if i.Printing != "" {
		printing, err := ids.CardPrintingIDFromKey(i.Printing)
		if err != nil {
			return models.NewListItem{}, err
		}
		req.SelectedPrinting = &printing
	}
	return req, nil
}
