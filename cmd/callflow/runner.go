package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/callflow/analyzer"
	"github.com/viant/callflow/analyzer/dependency"
	"github.com/viant/callflow/analyzer/flow"
	"github.com/viant/callflow/analyzer/schema"
	"github.com/viant/callflow/inspector"
	"github.com/viant/callflow/inspector/graph"
	"github.com/viant/callflow/inspector/info"
	"github.com/viant/callflow/inspector/repository"
	"gopkg.in/yaml.v3"
)

// Options represents command line options
type Options struct {
	Source    string
	Recursive bool
	DSN       string
	Project   string
	Name      string
	Node      string
	Function  string
	Mode      string
	ConfigURL string
	RawData   string
	Format    string
	Export    string

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
}

// Runner executes callflow commands
type Runner struct {
	Options *Options
	Logger  *slog.Logger
	Output  io.Writer

	postgres *repository.PostgresStore
	analyzer *analyzer.Analyzer
}

// ImportResult represents an imported project
type ImportResult struct {
	RawDataID   int64    `json:"rawDataId" yaml:"rawDataId"`
	ProjectName string   `json:"projectName" yaml:"projectName"`
	Nodes       []string `json:"nodes" yaml:"nodes"`
	Skipped     []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Run executes a command: import, deps, graph, structure or model
func (r *Runner) Run(ctx context.Context, command string) error {
	if r.Logger == nil {
		r.Logger = slog.Default()
	}
	defer r.close()
	switch command {
	case "import":
		result, err := r.importProject(ctx)
		if err != nil {
			return err
		}
		return r.write(result)
	case "deps":
		entries, err := r.analyze(ctx)
		if err != nil {
			return err
		}
		return r.write(&dependency.Payload{RelevantFunctions: entries})
	case "graph":
		entries, err := r.analyze(ctx)
		if err != nil {
			return err
		}
		return r.emit(ctx, flow.NewAssembler(r.analyzer.Orderer(), flow.DefaultLayout()).Assemble(entries))
	case "structure":
		raw, err := r.rawData(ctx)
		if err != nil {
			return err
		}
		if r.Options.Node == "" { // list nodes
			doc, err := schema.Parse(raw)
			if err != nil {
				return err
			}
			return r.write(doc.Keys())
		}
		fields, err := schema.Fields(raw, r.Options.Node)
		if err != nil {
			return err
		}
		return r.write(fields)
	case "model":
		raw, err := r.rawData(ctx)
		if err != nil {
			return err
		}
		model, err := schema.BuildModel(raw, schema.DefaultModelLayout())
		if err != nil {
			return err
		}
		return r.emit(ctx, model)
	default:
		return fmt.Errorf("unsupported command: %s", command)
	}
}

func (r *Runner) analyze(ctx context.Context) (dependency.Map, error) {
	if r.Options.Node == "" {
		return nil, fmt.Errorf("node was empty")
	}
	config, err := r.config(ctx)
	if err != nil {
		return nil, err
	}
	store, err := r.store()
	if err != nil {
		return nil, err
	}
	units, err := store.Units(ctx, r.Options.Project)
	if err != nil {
		return nil, err
	}
	text, ok := units.Lookup(r.Options.Node)
	if !ok {
		return nil, &graph.NotFoundError{Kind: "node", Name: r.Options.Node, In: r.project()}
	}
	if r.analyzer, err = analyzer.New(analyzer.WithConfig(config), analyzer.WithLogger(r.Logger)); err != nil {
		return nil, err
	}
	r.Logger.Debug("analyzing", "node", r.Options.Node, "function", r.Options.Function, "units", len(units))
	return r.analyzer.Analyze(ctx, &graph.Unit{Name: r.Options.Node, Text: text}, r.Options.Function, units)
}

// importProject stores the raw data document and source units of the src folder in the node store
func (r *Runner) importProject(ctx context.Context) (*ImportResult, error) {
	if r.Options.Source == "" || r.Options.DSN == "" {
		return nil, fmt.Errorf("import requires src and dsn")
	}
	units, skipped, err := r.sourceUnits(ctx)
	if err != nil {
		return nil, err
	}
	raw := []byte("{}")
	if r.Options.RawData != "" {
		if raw, err = afs.New().DownloadWithURL(ctx, r.Options.RawData); err != nil {
			return nil, err
		}
	}
	store, err := r.postgresStore()
	if err != nil {
		return nil, err
	}
	result := &ImportResult{ProjectName: r.projectName(), Nodes: []string{}, Skipped: skipped}
	if result.RawDataID, err = store.PutRawData(ctx, result.ProjectName, raw); err != nil {
		return nil, err
	}
	for _, unit := range units {
		if err = store.PutNode(ctx, result.RawDataID, result.ProjectName, unit); err != nil {
			return nil, fmt.Errorf("failed to store node %s: %w", unit.Name, err)
		}
		result.Nodes = append(result.Nodes, unit.Name)
	}
	r.Logger.Info("imported project", "project", result.ProjectName, "rawData", result.RawDataID, "nodes", len(result.Nodes), "skipped", len(skipped))
	return result, nil
}

// sourceUnits lists src folder files the inspector factory supports and keeps units with at least one function
func (r *Runner) sourceUnits(ctx context.Context) ([]*graph.Unit, []string, error) {
	config, err := r.config(ctx)
	if err != nil {
		return nil, nil, err
	}
	factory := inspector.NewFactory(config)
	var skipped []string
	fsStore := repository.NewFSStore(r.Options.Source, r.Options.Recursive)
	fsStore.Filter = func(filename string) bool {
		if _, err := factory.GetInspector(filename); err != nil {
			r.Logger.Debug("skipped file", "file", filename, "error", err)
			skipped = append(skipped, filename)
			return false
		}
		return true
	}
	assets, err := fsStore.Assets(ctx, r.Options.Project)
	if err != nil {
		return nil, nil, err
	}
	var units []*graph.Unit
	for _, asset := range assets {
		insp, err := factory.GetInspector(asset.Filename)
		if err != nil {
			return nil, nil, err
		}
		scanned, err := insp.InspectSource(asset.Unit)
		if err != nil {
			r.Logger.Warn("skipped unit", "url", asset.URL, "error", err)
			skipped = append(skipped, asset.Filename)
			continue
		}
		if len(scanned.Malformed) > 0 {
			r.Logger.Warn("malformed functions", "url", asset.URL, "functions", scanned.Malformed)
		}
		units = append(units, asset.Unit)
	}
	return units, skipped, nil
}

// projectName returns -name or the name of the project detected at the src folder
func (r *Runner) projectName() string {
	if r.Options.Name != "" {
		return r.Options.Name
	}
	location := repository.NewFSStore(r.Options.Source, false).Location(r.Options.Project)
	if url.Scheme(location, file.Scheme) == file.Scheme {
		if project, err := repository.NewDetector().DetectProject(url.Path(location)); err == nil {
			return project.Name
		}
	}
	return path.Base(strings.TrimRight(location, "/"))
}

func (r *Runner) config(ctx context.Context) (*info.Config, error) {
	config := info.DefaultConfig()
	if r.Options.ConfigURL != "" {
		loaded, err := info.LoadConfig(ctx, r.Options.ConfigURL)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if r.Options.Mode != "" {
		config.Mode = info.Mode(r.Options.Mode)
	}
	config.Init()
	return config, config.Validate()
}

func (r *Runner) store() (repository.Store, error) {
	if r.Options.DSN != "" {
		return r.postgresStore()
	}
	if r.Options.Source == "" {
		return nil, fmt.Errorf("either src or dsn is required")
	}
	return repository.NewFSStore(r.Options.Source, r.Options.Recursive), nil
}

func (r *Runner) postgresStore() (*repository.PostgresStore, error) {
	if r.postgres != nil {
		return r.postgres, nil
	}
	store, err := repository.NewPostgresStore(r.Options.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open node store: %w", err)
	}
	r.postgres = store
	return store, nil
}

func (r *Runner) rawData(ctx context.Context) ([]byte, error) {
	if r.Options.RawData != "" {
		return afs.New().DownloadWithURL(ctx, r.Options.RawData)
	}
	if r.Options.DSN == "" {
		return nil, fmt.Errorf("either raw or dsn is required")
	}
	id, err := repository.ParseRawDataID(r.Options.Project)
	if err != nil {
		return nil, err
	}
	store, err := r.postgresStore()
	if err != nil {
		return nil, err
	}
	rawData, err := store.RawData(ctx, id)
	if err != nil {
		return nil, err
	}
	return rawData.Data, nil
}

func (r *Runner) emit(ctx context.Context, g *flow.Graph) error {
	if r.Options.Export == "" && r.Options.Neo4jURI == "" {
		return r.write(g)
	}
	if r.Options.Export != "" {
		if err := flow.NewURLExporter(r.Options.Export).Export(ctx, g); err != nil {
			return err
		}
		r.Logger.Info("exported graph", "url", r.Options.Export, "nodes", len(g.Nodes), "edges", len(g.Edges))
	}
	if r.Options.Neo4jURI != "" {
		exporter, err := flow.NewNeo4jExporter(r.Options.Neo4jURI, r.Options.Neo4jUser, r.Options.Neo4jPassword, r.scope())
		if err != nil {
			return err
		}
		defer exporter.Close(ctx)
		if err = exporter.Export(ctx, g); err != nil {
			return err
		}
		r.Logger.Info("exported graph", "neo4j", r.Options.Neo4jURI, "scope", exporter.Scope)
	}
	return nil
}

// scope identifies a graph in a shared sink
func (r *Runner) scope() string {
	scope := r.project()
	if r.Options.Node != "" {
		scope += "/" + r.Options.Node
	}
	if r.Options.Function != "" {
		scope += "/" + r.Options.Function
	}
	return scope
}

func (r *Runner) write(value interface{}) error {
	var data []byte
	var err error
	switch strings.ToLower(r.Options.Format) {
	case "yaml", "yml":
		data, err = yaml.Marshal(value)
	case "json", "":
		data, err = json.MarshalIndent(value, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported format: %s", r.Options.Format)
	}
	if err != nil {
		return err
	}
	_, err = r.Output.Write(data)
	return err
}

func (r *Runner) project() string {
	if r.Options.Project != "" {
		return r.Options.Project
	}
	if r.Options.Source != "" {
		return r.Options.Source
	}
	return "store"
}

func (r *Runner) close() {
	if r.postgres != nil {
		_ = r.postgres.Close()
		r.postgres = nil
	}
}
