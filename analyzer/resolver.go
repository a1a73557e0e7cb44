package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/viant/callflow/analyzer/dependency"
	"github.com/viant/callflow/inspector"
	"github.com/viant/callflow/inspector/graph"
	"golang.org/x/sync/errgroup"
)

// Resolver fills module dependency bodies from sibling units
type Resolver struct {
	inspector   inspector.Inspector
	cache       *lru.Cache[uint64, *graph.File]
	concurrency int
	logger      *slog.Logger
}

// NewResolver creates a resolver; scanned units are cached by content hash
func NewResolver(insp inspector.Inspector, cacheSize, concurrency int, logger *slog.Logger) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.New[uint64, *graph.File](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver cache: %w", err)
	}
	return &Resolver{inspector: insp, cache: cache, concurrency: concurrency, logger: logger}, nil
}

// Resolve returns dependency with code populated when the module unit defines the method,
// otherwise the dependency is returned unchanged
func (r *Resolver) Resolve(ctx context.Context, dep *dependency.Dependency, units graph.Units) *dependency.Dependency {
	if dep.Target.IsSelf() || dep.HasCode() || ctx.Err() != nil {
		return dep
	}
	text, ok := units.Lookup(dep.Target.Module)
	if !ok {
		r.logger.Debug("module not found", "module", dep.Target.Module, "method", dep.Method)
		return dep
	}
	file := r.scan(dep.Target.Module, text)
	function := file.LookupFunction(dep.Method)
	if function == nil {
		r.logger.Debug("method not found", "module", dep.Target.Module, "method", dep.Method)
		return dep
	}
	return dep.WithCode(function.Body)
}

func (r *Resolver) scan(name, text string) *graph.File {
	key := graph.HashText(name + "\x00" + text)
	if file, ok := r.cache.Get(key); ok {
		return file
	}
	file, err := r.inspector.InspectSource(&graph.Unit{Name: name, Text: text})
	if file == nil {
		file = &graph.File{Name: name}
	}
	if err != nil {
		r.logger.Debug("module not scanned", "module", name, "error", err)
	}
	file.IndexFunctions()
	r.cache.Add(key, file)
	return file
}

// ResolveAll resolves dependencies in parallel, a failure of one never affects the others
func (r *Resolver) ResolveAll(ctx context.Context, deps []*dependency.Dependency, units graph.Units) []*dependency.Dependency {
	var result = make([]*dependency.Dependency, len(deps))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.concurrency)
	for i, dep := range deps {
		i, dep := i, dep
		result[i] = dep
		if dep.Target.IsSelf() {
			continue
		}
		group.Go(func() error {
			defer func() {
				if recovered := recover(); recovered != nil {
					r.logger.Warn("dependency resolution failed", "dependency", dep.Key().String(), "panic", recovered)
				}
			}()
			result[i] = r.Resolve(ctx, dep, units)
			return nil
		})
	}
	_ = group.Wait()
	return result
}
