package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/validation"
)

// DefaultDir is used when New is called with an empty directory.
var DefaultDir = filepath.Join(".automata", "store")

// Store implements ports.AutomatonStore on the local filesystem.
// Each automaton is one document named "<name>.json" (or ".yaml").
type Store struct {
	BasePath string
	format   codec.Format
}

// Option configures a Store.
type Option func(*Store)

// WithFormat selects the document format used by Save. Load accepts both.
func WithFormat(f codec.Format) Option {
	return func(s *Store) {
		s.format = f
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to DefaultDir.
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = DefaultDir
	}
	s := &Store{BasePath: basePath, format: codec.JSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func extension(f codec.Format) string {
	if f == codec.YAML {
		return ".yaml"
	}
	return ".json"
}

var extensions = []string{".json", ".yaml", ".yml"}

// Path returns the file Save writes for name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.BasePath, name+extension(s.format))
}

// find returns the existing document for name, in extension priority order.
func (s *Store) find(name string) (string, bool) {
	for _, ext := range extensions {
		path := filepath.Join(s.BasePath, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Save writes the automaton atomically.
// A document of the same name in another format is removed.
func (s *Store) Save(ctx context.Context, name string, a *domain.Automaton) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	dest := s.Path(name)
	if err := codec.Save(a, dest); err != nil {
		return fmt.Errorf("failed to save automaton %s: %w", name, err)
	}
	for _, ext := range extensions {
		other := filepath.Join(s.BasePath, name+ext)
		if other == dest {
			continue
		}
		if err := os.Remove(other); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale document %s: %w", other, err)
		}
	}
	return nil
}

// Load reads the automaton document.
func (s *Store) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}
	path, ok := s.find(name)
	if !ok {
		return nil, domain.ErrAutomatonNotFound
	}
	a, err := codec.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrAutomatonNotFound
		}
		return nil, err
	}
	return a, nil
}

// Delete removes every document stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	for _, ext := range extensions {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete automaton file: %w", err)
		}
	}
	return nil
}

// List returns the names of all documents in the directory, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list automata: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !slices.Contains(extensions, ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if domain.ValidateName(name) != nil || slices.Contains(names, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Info describes a stored document without handing out the automaton.
type Info struct {
	Name string `json:"name"`
	Path string `json:"path"`
	validation.Summary
}

// Info loads name and summarizes it.
func (s *Store) Info(ctx context.Context, name string) (Info, error) {
	a, err := s.Load(ctx, name)
	if err != nil {
		return Info{}, err
	}
	path, _ := s.find(name)
	return Info{Name: name, Path: path, Summary: validation.Summarize(a)}, nil
}
