package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Exporter defines an interface to persist a graph, i.e. for a diagram renderer cache
type Exporter interface {
	Export(ctx context.Context, graph *Graph) error
}

// Encode encodes graph as JSON or YAML (format "yaml" or "yml")
func Encode(graph *Graph, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(graph)
	case "json", "":
		return json.MarshalIndent(graph, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// URLExporter uploads encoded graph to a storage URL, format is derived from URL extension
type URLExporter struct {
	URL string
	fs  afs.Service
}

// NewURLExporter creates an exporter
func NewURLExporter(URL string) *URLExporter {
	return &URLExporter{URL: URL, fs: afs.New()}
}

func (e *URLExporter) Export(ctx context.Context, graph *Graph) error {
	data, err := Encode(graph, strings.TrimPrefix(path.Ext(e.URL), "."))
	if err != nil {
		return err
	}
	if err = e.fs.Upload(ctx, e.URL, 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to export graph to %s: %w", e.URL, err)
	}
	return nil
}
