package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// AutomatonStore persists named automata.
//
// Implementations hand out independent copies: mutating an automaton returned
// by Load, or one passed to Save, never affects the stored value.
type AutomatonStore interface {
	// Save persists the automaton under name, replacing any previous value.
	Save(ctx context.Context, name string, a *domain.Automaton) error

	// Load retrieves the automaton stored under name.
	// Returns domain.ErrAutomatonNotFound if it does not exist.
	Load(ctx context.Context, name string) (*domain.Automaton, error)

	// Delete removes the automaton. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in sorted order.
	List(ctx context.Context) ([]string, error)
}
