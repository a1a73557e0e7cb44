package schema

import (
	"github.com/viant/callflow/inspector/graph"
)

// Field represents a data object field of a node
type Field struct {
	ObjectName string `json:"object_name" yaml:"object_name"`
	FieldName  string `json:"field_name" yaml:"field_name"`
	FieldType  string `json:"field_type" yaml:"field_type"`
}

// Fields lists node fields from raw data organized as node -> component -> object -> attributes
func Fields(raw []byte, node string) ([]*Field, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	nodeObject, ok := lookup(doc.root, node)
	if !ok || !nodeObject.IsObject() {
		return nil, &graph.NotFoundError{Kind: "node", Name: node, In: "raw data"}
	}
	var result = make([]*Field, 0)
	for _, component := range members(nodeObject) {
		for _, child := range members(component.value) {
			if !child.value.IsObject() {
				continue
			}
			result = append(result, &Field{
				ObjectName: text(child.value, "object_name"),
				FieldName:  text(child.value, "^field_name"),
				FieldType:  text(child.value, "^field_type"),
			})
		}
	}
	return result, nil
}
