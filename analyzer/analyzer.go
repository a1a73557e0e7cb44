package analyzer

import (
	"context"
	"log/slog"

	"github.com/viant/callflow/analyzer/dependency"
	"github.com/viant/callflow/inspector"
	"github.com/viant/callflow/inspector/graph"
	"github.com/viant/callflow/inspector/info"
)

// Analyzer builds function dependency maps: scan, extract, resolve and order
type Analyzer struct {
	config      *info.Config
	dialect     *info.Dialect
	concurrency int
	cacheSize   int
	logger      *slog.Logger

	inspector inspector.Inspector
	extractor *Extractor
	resolver  *Resolver
	orderer   *Orderer
}

// New creates an analyzer
func New(options ...Option) (*Analyzer, error) {
	ret := &Analyzer{}
	for _, option := range options {
		option(ret)
	}
	if ret.config == nil {
		ret.config = info.DefaultConfig()
	}
	if ret.dialect != nil {
		ret.config.Dialect = ret.dialect
	}
	ret.config.Init()
	if ret.concurrency > 0 {
		ret.config.Concurrency = ret.concurrency
	}
	if ret.cacheSize > 0 {
		ret.config.CacheSize = ret.cacheSize
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.inspector == nil {
		insp, err := inspector.NewFactory(ret.config).Inspector()
		if err != nil {
			return nil, err
		}
		ret.inspector = insp
	}
	ret.extractor = NewExtractor(ret.config.Dialect)
	ret.orderer = NewOrderer(ret.extractor)
	resolver, err := NewResolver(ret.inspector, ret.config.CacheSize, ret.config.Concurrency, ret.logger)
	if err != nil {
		return nil, err
	}
	ret.resolver = resolver
	return ret, nil
}

func (a *Analyzer) Orderer() *Orderer {
	return a.orderer
}

// Analyze returns dependency map of the unit functions, or only of target when not empty.
// It fails only when no function could be extracted or the target function does not exist;
// malformed functions and unresolvable dependencies are absorbed.
func (a *Analyzer) Analyze(ctx context.Context, unit *graph.Unit, target string, units graph.Units) (dependency.Map, error) {
	file, err := a.inspector.InspectSource(unit)
	if err != nil {
		return nil, err
	}
	if len(file.Malformed) > 0 {
		a.logger.Debug("skipped malformed functions", "unit", unit.Name, "functions", file.Malformed)
	}
	if target != "" && !file.HasFunction(target) {
		return nil, &graph.NotFoundError{Kind: "function", Name: target, In: unit.Name}
	}
	var result dependency.Map
	for _, function := range file.Functions {
		if target != "" && function.Name != target {
			continue
		}
		if file.LookupFunction(function.Name) != function { // duplicated name, first definition wins
			continue
		}
		result = append(result, a.analyzeFunction(ctx, function, file, units))
	}
	return result, nil
}

func (a *Analyzer) analyzeFunction(ctx context.Context, function *graph.Function, file *graph.File, units graph.Units) *dependency.Entry {
	deps := a.extractor.Dependencies(function, file)
	deps = a.resolver.ResolveAll(ctx, deps, units)
	order := a.orderer.Order(function.Body, deps)
	return &dependency.Entry{
		FunctionName: function.Name,
		Code:         function.Body,
		Dependencies: order.Dependencies,
	}
}
