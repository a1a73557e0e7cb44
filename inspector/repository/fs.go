package repository

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/callflow/inspector/graph"
)

// Asset represents a source file of a node
type Asset struct {
	URL      string
	Filename string
	Unit     *graph.Unit
}

// FSStore reads source units from a folder on any afs supported storage; file name without extension is the node name
type FSStore struct {
	BaseURL    string
	Extensions []string
	Recursive  bool
	// Filter selects files by name, by default files with one of Extensions are selected
	Filter func(filename string) bool
	fs     afs.Service
}

// NewFSStore creates a store
func NewFSStore(baseURL string, recursive bool, extensions ...string) *FSStore {
	if len(extensions) == 0 {
		extensions = []string{".php", ".inc"}
	}
	return &FSStore{BaseURL: baseURL, Extensions: extensions, Recursive: recursive, fs: afs.New()}
}

// Location returns project folder URL, project is a sub folder of BaseURL or empty for BaseURL itself
func (s *FSStore) Location(project string) string {
	if project == "" {
		return s.BaseURL
	}
	return url.Join(s.BaseURL, project)
}

// Units loads project folder units, the first file wins a node name
func (s *FSStore) Units(ctx context.Context, project string) (graph.Units, error) {
	assets, err := s.Assets(ctx, project)
	if err != nil {
		return nil, err
	}
	var units = graph.Units{}
	for _, asset := range assets {
		units[asset.Unit.Name] = asset.Unit.Text
	}
	return units, nil
}

// Assets loads project folder files with unique node names
func (s *FSStore) Assets(ctx context.Context, project string) ([]*Asset, error) {
	var assets []*Asset
	if err := s.load(ctx, s.Location(project), map[string]bool{}, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *FSStore) load(ctx context.Context, location string, names map[string]bool, assets *[]*Asset) error {
	objects, err := s.fs.List(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", location, err)
	}
	for i, object := range objects {
		if object.IsDir() {
			if i == 0 || !s.Recursive { // first listed object is the folder itself
				continue
			}
			if err = s.load(ctx, object.URL(), names, assets); err != nil {
				return err
			}
			continue
		}
		if !s.matches(object.Name()) {
			continue
		}
		name := NodeName(object.Name())
		if names[name] {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", object.URL(), err)
		}
		names[name] = true
		*assets = append(*assets, &Asset{
			URL:      object.URL(),
			Filename: object.Name(),
			Unit:     &graph.Unit{Name: name, Text: string(data)},
		})
	}
	return nil
}

func (s *FSStore) matches(name string) bool {
	if s.Filter != nil {
		return s.Filter(name)
	}
	ext := strings.ToLower(path.Ext(name))
	for _, candidate := range s.Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
