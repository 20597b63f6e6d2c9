package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Meta describes a dataset file in a store.
type Meta struct {
	Name    string
	Path    string
	Columns int
	Records int
}

// Store keeps dataset files in a directory.
type Store struct {
	basePath string
}

// NewStore creates a store over basePath, creating the directory if needed.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create dataset directory: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Save writes a dataset as YAML under its name. Records without an ID get
// one first.
func (s *Store) Save(ctx context.Context, ds *Dataset) error {
	if ds.Name == "" {
		return fmt.Errorf("failed to save dataset: empty name")
	}
	ds.AssignIDs()
	content, err := Encode(ds, FormatYAML)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.datasetPath(ds.Name), content, 0644); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	return nil
}

// Get loads a dataset by name. YAML files take precedence over JSON.
func (s *Store) Get(ctx context.Context, name string) (*Dataset, error) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(s.basePath, name+ext)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, fmt.Errorf("dataset not found: %s", name)
}

// List returns every readable dataset file, ordered by name.
func (s *Store) List(ctx context.Context) ([]Meta, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory: %w", err)
	}

	var out []Meta
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := FormatOf(entry.Name()); err != nil {
			continue
		}
		path := filepath.Join(s.basePath, entry.Name())
		ds, err := Load(path)
		if err != nil {
			continue // Skip invalid files
		}
		out = append(out, Meta{
			Name:    ds.Name,
			Path:    path,
			Columns: len(ds.Columns),
			Records: countRecords(ds.Records),
		})
	}
	slices.SortFunc(out, func(a, b Meta) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Delete removes the YAML file of a dataset.
func (s *Store) Delete(ctx context.Context, name string) error {
	path := s.datasetPath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("dataset not found: %s", name)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	return nil
}

func (s *Store) datasetPath(name string) string {
	return filepath.Join(s.basePath, name+".yaml")
}

func countRecords(records []*Record) int {
	count := len(records)
	for _, r := range records {
		count += countRecords(r.Children)
	}
	return count
}
