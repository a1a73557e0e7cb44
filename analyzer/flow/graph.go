package flow

// Graph represents layout-ready diagram data
type Graph struct {
	Nodes []*Node `json:"nodes" yaml:"nodes"`
	Edges []*Edge `json:"edges" yaml:"edges"`
}

// Position represents node coordinates
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Metadata represents node payload shown by the renderer
type Metadata struct {
	Code string `json:"code" yaml:"code"`
	Hash uint64 `json:"hash,omitempty" yaml:"hash,omitempty"`
}

// NodeData represents node label and flags
type NodeData struct {
	Label    string      `json:"label" yaml:"label"`
	Main     bool        `json:"main" yaml:"main"`
	Metadata interface{} `json:"metadata" yaml:"metadata"`
}

// Node represents a function or dependency
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Position Position `json:"position" yaml:"position"`
	Data     NodeData `json:"data" yaml:"data"`
}

// Edge represents a call from a main node to a dependency
type Edge struct {
	ID         string `json:"id" yaml:"id"`
	Source     string `json:"source" yaml:"source"`
	Target     string `json:"target" yaml:"target"`
	Label      string `json:"label" yaml:"label"`
	CallNumber int    `json:"callNumber,omitempty" yaml:"callNumber,omitempty"`
	Animated   bool   `json:"animated,omitempty" yaml:"animated,omitempty"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
}

// LookupNode returns node by ID
func (g *Graph) LookupNode(id string) *Node {
	for _, node := range g.Nodes {
		if node.ID == id {
			return node
		}
	}
	return nil
}

// EdgeID returns edge identity for source and target node IDs
func EdgeID(source, target string) string {
	return source + "->" + target
}
