package flow

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jExporter merges a graph into Neo4j as FlowNode vertices linked by FLOW relationships.
// Node ids are sequential per graph, so vertices are keyed by scope and id.
type Neo4jExporter struct {
	Scope  string
	driver neo4j.DriverWithContext
}

// NewNeo4jExporter connects to Neo4j
func NewNeo4jExporter(uri, user, password, scope string) (*Neo4jExporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	return &Neo4jExporter{Scope: scope, driver: driver}, nil
}

// Close releases driver resources
func (e *Neo4jExporter) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

func (e *Neo4jExporter) Export(ctx context.Context, graph *Graph) error {
	nodes, edges := neo4jRows(e.Scope, graph)
	statements := []struct {
		cypher string
		batch  []map[string]any
	}{
		{cypher: "CREATE INDEX flow_node_key IF NOT EXISTS FOR (n:FlowNode) ON (n.key)"},
		{cypher: "MATCH (n:FlowNode {scope: $scope}) DETACH DELETE n"},
		{cypher: `UNWIND $batch AS row
		 MERGE (n:FlowNode {key: row.key})
		 SET n.scope = $scope, n.id = row.id, n.label = row.label, n.main = row.main,
		     n.x = row.x, n.y = row.y, n.code = row.code`, batch: nodes},
		{cypher: `UNWIND $batch AS row
		 MATCH (s:FlowNode {key: row.source}), (t:FlowNode {key: row.target})
		 MERGE (s)-[r:FLOW {id: row.id}]->(t)
		 SET r.label = row.label, r.call_number = row.number`, batch: edges},
	}
	for _, statement := range statements {
		params := map[string]any{"scope": e.Scope, "batch": statement.batch}
		if _, err := neo4j.ExecuteQuery(ctx, e.driver, statement.cypher, params, neo4j.EagerResultTransformer); err != nil {
			return fmt.Errorf("failed to export graph %s to neo4j: %w", e.Scope, err)
		}
	}
	return nil
}

func neo4jRows(scope string, graph *Graph) ([]map[string]any, []map[string]any) {
	nodes := make([]map[string]any, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		code := ""
		if metadata, ok := node.Data.Metadata.(*Metadata); ok {
			code = metadata.Code
		}
		nodes = append(nodes, map[string]any{
			"key":   scope + "/" + node.ID,
			"id":    node.ID,
			"label": node.Data.Label,
			"main":  node.Data.Main,
			"x":     node.Position.X,
			"y":     node.Position.Y,
			"code":  code,
		})
	}
	edges := make([]map[string]any, 0, len(graph.Edges))
	for _, edge := range graph.Edges {
		edges = append(edges, map[string]any{
			"id":     edge.ID,
			"source": scope + "/" + edge.Source,
			"target": scope + "/" + edge.Target,
			"label":  edge.Label,
			"number": edge.CallNumber,
		})
	}
	return nodes, edges
}
