package text

import (
	"fmt"

	"github.com/viant/callflow/inspector/graph"
	"github.com/viant/callflow/inspector/info"
)

// Inspector extracts functions from source units using Scanner
type Inspector struct {
	config  *info.Config
	scanner *Scanner
}

// NewInspector creates a new text Inspector with the provided configuration
func NewInspector(config *info.Config) *Inspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	config.Init()
	return &Inspector{
		config:  config,
		scanner: NewScanner(config.Dialect),
	}
}

// InspectSource scans all function definitions of the unit
func (i *Inspector) InspectSource(unit *graph.Unit) (*graph.File, error) {
	file := i.scanner.Scan(unit.Name, unit.Text)
	if len(file.Functions) == 0 {
		return file, fmt.Errorf("%w in %s", graph.ErrNoFunctions, unit.Name)
	}
	return file, nil
}

// InspectFunction returns the first definition of the named function
func (i *Inspector) InspectFunction(unit *graph.Unit, name string) (*graph.Function, error) {
	function, ok := i.scanner.Find(unit.Text, name)
	if !ok {
		return nil, &graph.NotFoundError{Kind: "function", Name: name, In: unit.Name}
	}
	return function, nil
}
