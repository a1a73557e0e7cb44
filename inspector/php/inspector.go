package php

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/viant/callflow/inspector/graph"
	"github.com/viant/callflow/inspector/info"
)

const openTag = "<?php\n"

// Inspector extracts functions from PHP source using tree-sitter grammar.
// Unlike the text scanner it is not confused by braces inside string or comment literals.
type Inspector struct {
	config *info.Config
}

// NewInspector creates a new PHP Inspector with the provided configuration
func NewInspector(config *info.Config) *Inspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	config.Init()
	return &Inspector{config: config}
}

// InspectSource parses the unit and extracts all function and method definitions
func (i *Inspector) InspectSource(unit *graph.Unit) (*graph.File, error) {
	file, err := i.parse(unit)
	if err != nil {
		return nil, err
	}
	if len(file.Functions) == 0 {
		return file, fmt.Errorf("%w in %s", graph.ErrNoFunctions, unit.Name)
	}
	return file, nil
}

// InspectFunction returns the first definition of the named function
func (i *Inspector) InspectFunction(unit *graph.Unit, name string) (*graph.Function, error) {
	file, err := i.parse(unit)
	if err != nil {
		return nil, err
	}
	if function := file.LookupFunction(name); function != nil {
		return function, nil
	}
	return nil, &graph.NotFoundError{Kind: "function", Name: name, In: unit.Name}
}

func (i *Inspector) parse(unit *graph.Unit) (*graph.File, error) {
	src := []byte(unit.Text)
	shift := 0
	if !strings.Contains(unit.Text, "<?php") {
		src = append([]byte(openTag), src...)
		shift = len(openTag)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(php.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", unit.Name, err)
	}
	file := &graph.File{Name: unit.Name}
	i.collect(tree.RootNode(), src, shift, unit.Text, file)
	return file, nil
}

// collect walks the tree in source order; function bodies are not descended into
func (i *Inspector) collect(node *sitter.Node, src []byte, shift int, text string, file *graph.File) {
	switch node.Type() {
	case "function_definition", "method_declaration":
		nameNode := node.ChildByFieldName("name")
		body := node.ChildByFieldName("body")
		if nameNode == nil {
			return
		}
		name := nameNode.Content(src)
		if body == nil { // abstract or interface method
			return
		}
		if node.HasError() || body.IsMissing() {
			file.Malformed = append(file.Malformed, name)
			return
		}
		start := keywordStart(node, src, i.config.Dialect.Keyword) - shift
		end := int(body.EndByte()) - shift
		if start < 0 || end > len(text) || start >= end {
			file.Malformed = append(file.Malformed, name)
			return
		}
		file.AddFunction(graph.NewFunction(name, text, start, end))
		return
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		i.collect(node.Child(j), src, shift, text, file)
	}
}

// keywordStart returns offset of the definition keyword, skipping modifiers and attributes
func keywordStart(node *sitter.Node, src []byte, keyword string) int {
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child.Type() == keyword {
			return int(child.StartByte())
		}
	}
	start := int(node.StartByte())
	if idx := strings.Index(string(src[start:node.EndByte()]), keyword); idx != -1 {
		return start + idx
	}
	return start
}
