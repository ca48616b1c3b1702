package idgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerator_Increasing(t *testing.T) {
	gen, err := New(1)
	require.NoError(t, err)

	prev := gen.NextID()
	for i := 0; i < 1000; i++ {
		next := gen.NextID()
		require.Greater(t, next, prev)
		prev = next
	}
}

func TestNew_InvalidNode(t *testing.T) {
	_, err := New(5000)
	require.Error(t, err)
}
