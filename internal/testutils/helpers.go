package testutils

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/require"
)

// WriteModel saves a into a fresh temporary directory under name and returns
// the absolute path. The extension of name selects the format.
// It fails the test immediately on error.
func WriteModel(t *testing.T, name string, a *domain.Automaton) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	require.NoError(t, codec.Save(a, absPath), "Failed to write model")
	return absPath
}
