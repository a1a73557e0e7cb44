package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeo4jRows(t *testing.T) {
	graph := &Graph{
		Nodes: []*Node{
			{ID: "1", Position: Position{X: 0, Y: 0}, Data: NodeData{Label: "create", Main: true, Metadata: &Metadata{Code: "function create() {}"}}},
			{ID: "2", Position: Position{X: 0, Y: 150}, Data: NodeData{Label: "Self.validate", Metadata: &Metadata{Code: notAvailable}}},
		},
		Edges: []*Edge{{ID: EdgeID("1", "2"), Source: "1", Target: "2", Label: "calls #1", CallNumber: 1}},
	}
	nodes, edges := neo4jRows("wallet", graph)
	require.Len(t, nodes, 2)
	require.Len(t, edges, 1)
	assert.Equal(t, "wallet/1", nodes[0]["key"])
	assert.Equal(t, true, nodes[0]["main"])
	assert.Equal(t, "function create() {}", nodes[0]["code"])
	assert.Equal(t, 150.0, nodes[1]["y"])
	assert.Equal(t, "wallet/1", edges[0]["source"])
	assert.Equal(t, "wallet/2", edges[0]["target"])
	assert.Equal(t, "1->2", edges[0]["id"])
	assert.Equal(t, 1, edges[0]["number"])
}
