package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewInTest creates arena state closed when test finishes.
func NewInTest(t *testing.T, config Config) *State {
	state, err := NewState(config)
	require.NoError(t, err)
	t.Cleanup(state.Close)
	return state
}
