package flow

import (
	"strconv"

	"github.com/viant/callflow/analyzer"
	"github.com/viant/callflow/analyzer/dependency"
	"github.com/viant/callflow/inspector/graph"
)

const (
	labelSelf    = "calls"
	labelModule  = "uses"
	notAvailable = "Not available"
)

// Assembler converts dependency map entries into a diagram graph
type Assembler struct {
	layout  *Layout
	orderer *analyzer.Orderer
}

// NewAssembler creates an assembler, call order is recomputed from each entry code
func NewAssembler(orderer *analyzer.Orderer, layout *Layout) *Assembler {
	if layout == nil {
		layout = DefaultLayout()
	}
	if orderer == nil {
		orderer = analyzer.NewOrderer(analyzer.NewExtractor(nil))
	}
	return &Assembler{layout: layout, orderer: orderer}
}

// Assemble returns a graph with one main node per entry above its self dependencies and below
// its module dependencies; node IDs are sequential from 1 within one call
func (a *Assembler) Assemble(entries dependency.Map) *Graph {
	ret := &Graph{Nodes: []*Node{}, Edges: []*Edge{}}
	nextID := 1
	newID := func() string {
		id := strconv.Itoa(nextID)
		nextID++
		return id
	}
	for index, entry := range entries {
		mainX := float64(index) * a.layout.MainStride
		mainID := newID()
		ret.Nodes = append(ret.Nodes, &Node{
			ID:       mainID,
			Position: Position{X: mainX, Y: 0},
			Data: NodeData{
				Label:    entry.FunctionName,
				Main:     true,
				Metadata: &Metadata{Code: entry.Code, Hash: graph.HashText(entry.Code)},
			},
		})
		order := a.orderer.Order(entry.Code, entry.Dependencies)
		ordered := &dependency.Entry{Dependencies: order.Dependencies}
		self, modules := ordered.Partition()
		a.lane(ret, order, mainID, mainX, a.layout.LaneOffset, labelSelf, self, newID)
		a.lane(ret, order, mainID, mainX, -a.layout.LaneOffset, labelModule, modules, newID)
	}
	return ret
}

func (a *Assembler) lane(ret *Graph, order *analyzer.CallOrder, mainID string, mainX, y float64, label string, deps []*dependency.Dependency, newID func() string) {
	for i, dep := range deps {
		id := newID()
		code := notAvailable
		if dep.Code != nil {
			code = *dep.Code
		}
		metadata := &Metadata{Code: code}
		if dep.Code != nil {
			metadata.Hash = graph.HashText(code)
		}
		ret.Nodes = append(ret.Nodes, &Node{
			ID:       id,
			Position: Position{X: a.layout.laneX(mainX, i, len(deps)), Y: y},
			Data:     NodeData{Label: dep.Key().String(), Metadata: metadata},
		})
		edge := &Edge{
			ID:       EdgeID(mainID, id),
			Source:   mainID,
			Target:   id,
			Label:    label,
			Animated: a.layout.Animated,
			Type:     a.layout.EdgeType,
		}
		if number, ok := order.Number(dep.Key()); ok {
			edge.CallNumber = number
			edge.Label = label + " #" + strconv.Itoa(number)
		}
		ret.Edges = append(ret.Edges, edge)
	}
}
