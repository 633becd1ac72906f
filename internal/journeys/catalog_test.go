package journeys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogMatchesShippedClient(t *testing.T) {
	// The client ships three journeys with these ids and step counts.
	expected := map[int]struct {
		title string
		steps int
	}{
		1: {"Finding Inner Peace (Sakinah)", 6},
		2: {"The Prayer Journey (Salah)", 5},
		3: {"Prophetic Character (Akhlaq)", 4},
	}

	require.Len(t, All(), len(expected))
	for id, want := range expected {
		journey, ok := Lookup(id)
		require.True(t, ok, "journey %d missing", id)
		require.Equal(t, want.title, journey.Title)
		require.Equal(t, want.steps, journey.TotalSteps)
	}
}

func TestValidStepBounds(t *testing.T) {
	require.True(t, ValidStep(1, 1))
	require.True(t, ValidStep(1, 6))
	require.False(t, ValidStep(1, 7))
	require.False(t, ValidStep(1, 0))
	require.False(t, ValidStep(4, 1))
}
