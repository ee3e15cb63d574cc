package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.AutomatonStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Automaton
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Automaton),
	}
}

// NewStoreWith creates a store pre-populated with the given automata.
func NewStoreWith(seed map[string]*domain.Automaton) (*Store, error) {
	s := NewStore()
	for name, a := range seed {
		if err := s.Save(context.Background(), name, a); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save stores a deep copy of the automaton.
func (s *Store) Save(ctx context.Context, name string, a *domain.Automaton) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	copied := a.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load returns a deep copy so callers can't mutate the stored value.
func (s *Store) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[name]
	if !ok {
		return nil, domain.ErrAutomatonNotFound
	}
	return a.Clone(), nil
}

// Delete removes the automaton.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
