package repository

import (
	"context"

	"github.com/viant/callflow/inspector/graph"
)

// Store provides source units of a project keyed by node name
type Store interface {
	Units(ctx context.Context, project string) (graph.Units, error)
}

// NodeName returns unit name for a source file name
func NodeName(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		switch filename[i] {
		case '.':
			if i > 0 {
				return filename[:i]
			}
			return filename
		case '/':
			return filename
		}
	}
	return filename
}
