package schema

import (
	"strconv"

	"github.com/viant/callflow/analyzer/flow"
)

const (
	groupMain       = "main"
	groupProperties = "properties"
	groupChildren   = "children"
)

// ModelLayout defines data model node spacing
type ModelLayout struct {
	Stride        float64
	MainY         float64
	PropertiesY   float64
	ChildrenY     float64
	AnimatedEdges bool
}

func DefaultModelLayout() *ModelLayout {
	return &ModelLayout{Stride: 400, MainY: 200, PropertiesY: -100, ChildrenY: 500, AnimatedEdges: true}
}

type relation struct {
	id    string
	group string
}

// BuildModel returns data model graph from raw data organized as object -> component -> child -> attributes,
// where child data_group is one of main, properties or children and table_name is its label.
// Properties point to their main node, the main node points to its children; edge labels carry group counts.
func BuildModel(raw []byte, layout *ModelLayout) (*flow.Graph, error) {
	if layout == nil {
		layout = DefaultModelLayout()
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	ret := &flow.Graph{Nodes: []*flow.Node{}, Edges: []*flow.Edge{}}
	nextID := 1
	for index, entry := range members(doc.root) {
		if !entry.value.IsObject() {
			continue
		}
		groupID := strconv.Itoa(nextID)
		metadata := entry.value.Value()
		var relations []relation
		counts := map[string]int{}
		for _, component := range members(entry.value) {
			for _, child := range members(component.value) {
				id := strconv.Itoa(nextID)
				group := text(child.value, "data_group")
				y := layout.MainY
				switch group {
				case groupProperties:
					y = layout.PropertiesY
					relations = append(relations, relation{id: id, group: group})
				case groupChildren:
					y = layout.ChildrenY
					relations = append(relations, relation{id: id, group: group})
				}
				counts[group]++
				ret.Nodes = append(ret.Nodes, &flow.Node{
					ID:       id,
					Position: flow.Position{X: float64(index) * layout.Stride, Y: y},
					Data: flow.NodeData{
						Label:    text(child.value, "table_name"),
						Main:     group == groupMain,
						Metadata: metadata,
					},
				})
				nextID++
			}
		}
		for _, rel := range relations {
			edge := &flow.Edge{Label: strconv.Itoa(counts[rel.group]), Animated: layout.AnimatedEdges}
			if rel.group == groupProperties {
				edge.Source, edge.Target = rel.id, groupID
			} else {
				edge.Source, edge.Target = groupID, rel.id
			}
			edge.ID = flow.EdgeID(edge.Source, edge.Target)
			ret.Edges = append(ret.Edges, edge)
		}
	}
	return ret, nil
}
