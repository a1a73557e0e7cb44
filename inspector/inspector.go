package inspector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/callflow/inspector/graph"
	"github.com/viant/callflow/inspector/info"
	"github.com/viant/callflow/inspector/php"
	"github.com/viant/callflow/inspector/text"
)

// Inspector provides an interface for extracting function definitions from source units
type Inspector interface {
	// InspectSource scans a unit and extracts all function definitions
	InspectSource(unit *graph.Unit) (*graph.File, error)

	// InspectFunction extracts the first definition of the named function
	InspectFunction(unit *graph.Unit, name string) (*graph.Function, error)
}

// Factory creates appropriate inspectors based on configuration
type Factory struct {
	config *info.Config
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *info.Config) *Factory {
	if config == nil {
		config = info.DefaultConfig()
	}
	config.Init()
	return &Factory{
		config: config,
	}
}

// Inspector returns inspector for configured mode
func (f *Factory) Inspector() (Inspector, error) {
	switch f.config.Mode {
	case info.ModeText:
		return text.NewInspector(f.config), nil
	case info.ModeSyntax:
		return php.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported mode: %s", f.config.Mode)
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".php", ".inc", ".phtml":
		if f.config.Mode == info.ModeSyntax {
			return php.NewInspector(f.config), nil
		}
		return text.NewInspector(f.config), nil
	case ".txt", "":
		return text.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}
