package datastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetisRoundTrip(t *testing.T) {
	g := NewMutableGraph()
	g.StartConstruction(4)
	g.NewEdgeOrder(0, 1, 3)
	g.NewEdgeOrder(1, 2, 5)
	g.NewEdgeOrder(2, 3, 2)
	g.NewEdgeOrder(0, 3, 1)

	for _, name := range []string{"graph.metis", "graph.metis.bz2"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteMetisGraph(g, path))

			read, err := ReadMetisGraph(path)
			require.NoError(t, err)

			require.Equal(t, g.NumberOfNodes(), read.NumberOfNodes())
			require.Equal(t, g.NumberOfEdges(), read.NumberOfEdges())
			for n := Index(0); n < g.NumberOfNodes(); n++ {
				require.Equal(t, g.GetWeightedNodeDegree(n), read.GetWeightedNodeDegree(n))
			}
		})
	}
}

func TestReadMetisGraphUnweightedAndComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.metis")
	content := "% a triangle\n3 3\n2 3\n1 3\n1 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	g, err := ReadMetisGraph(path)
	require.NoError(t, err)
	require.Equal(t, Index(3), g.NumberOfNodes())
	require.Equal(t, 3, g.NumberOfEdges())
	require.Equal(t, EdgeWeight(2), g.GetWeightedNodeDegree(0))
}

func TestReadTerminals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terminals.txt")
	require.NoError(t, os.WriteFile(path, []byte("% terminals\n0\n4\n7\n"), 0644))

	terminals, err := ReadTerminals(path)
	require.NoError(t, err)
	require.Equal(t, []Index{0, 4, 7}, terminals)
}
