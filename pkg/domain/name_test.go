package domain_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"binary_ending_one", "v1.2", "A-b"} {
		assert.NoError(t, domain.ValidateName(ok), ok)
	}
	for _, bad := range []string{"", ".hidden", "../etc", "a b", "a/b", "ação"} {
		assert.ErrorIs(t, domain.ValidateName(bad), domain.ErrInvalidName, bad)
	}
}
