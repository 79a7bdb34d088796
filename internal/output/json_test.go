package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	_, b := branchedTree(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, b.Root()))

	var root jsonNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))

	// Root sentinel carries no sha, only the backbone ancestor below it.
	require.Empty(t, root.Sha)
	require.Len(t, root.Children, 1)

	ancestor := root.Children[0]
	require.Equal(t, "a1", ancestor.Sha)
	require.Equal(t, "initial", ancestor.Subject)
	require.True(t, ancestor.OnPrimaryBranch)
	require.False(t, ancestor.DirectChild)
	require.Len(t, ancestor.Children, 2)

	// Backbone child first, then the feature leg.
	require.Equal(t, "c1", ancestor.Children[0].Sha)
	require.False(t, ancestor.Children[0].DirectChild)
	require.Equal(t, "d1", ancestor.Children[1].Sha)
	require.True(t, ancestor.Children[1].DirectChild)
}
