package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/callflow/analyzer/flow"
	"github.com/viant/callflow/inspector/graph"
)

const walletSource = `<?php
function create($userId) {
    $user = loadModule("User");
    $this->validate($userId);
    return $user->get($userId);
}

function validate($userId) {
    return $userId > 0;
}
`

const userSource = `<?php
function get($id) {
    return $id;
}
`

func newSource(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Wallet.php"), []byte(walletSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "User.php"), []byte(userSource), 0o644))
	return root
}

func TestRunner_Deps(t *testing.T) {
	output := &bytes.Buffer{}
	runner := &Runner{Options: &Options{Source: newSource(t), Node: "Wallet", Function: "create", Format: "json"}, Output: output}
	require.NoError(t, runner.Run(context.Background(), "deps"))

	var payload struct {
		RelevantFunctions []struct {
			FunctionName string `json:"functionName"`
			Dependencies []struct {
				EngineName string  `json:"engineName"`
				MethodName string  `json:"methodName"`
				Code       *string `json:"code"`
			} `json:"dependencies"`
		} `json:"relevantFunctions"`
	}
	require.NoError(t, json.Unmarshal(output.Bytes(), &payload))
	require.Len(t, payload.RelevantFunctions, 1)
	entry := payload.RelevantFunctions[0]
	assert.Equal(t, "create", entry.FunctionName)
	require.Len(t, entry.Dependencies, 2)
	assert.Equal(t, "Self", entry.Dependencies[0].EngineName)
	assert.Equal(t, "validate", entry.Dependencies[0].MethodName)
	assert.Equal(t, "User", entry.Dependencies[1].EngineName)
	require.NotNil(t, entry.Dependencies[1].Code)
	assert.Contains(t, *entry.Dependencies[1].Code, "function get($id)")
}

func TestRunner_Graph(t *testing.T) {
	output := &bytes.Buffer{}
	runner := &Runner{Options: &Options{Source: newSource(t), Node: "Wallet", Function: "create"}, Output: output}
	require.NoError(t, runner.Run(context.Background(), "graph"))

	result := &flow.Graph{}
	require.NoError(t, json.Unmarshal(output.Bytes(), result))
	require.Len(t, result.Nodes, 3)
	require.Len(t, result.Edges, 2)
	assert.Equal(t, "create", result.Nodes[0].Data.Label)
	assert.Equal(t, "calls #1", result.Edges[0].Label)
	assert.Equal(t, "uses #2", result.Edges[1].Label)
}

func TestRunner_Export(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "graph.yaml")
	runner := &Runner{Options: &Options{Source: newSource(t), Node: "Wallet", Export: destination}, Output: &bytes.Buffer{}}
	require.NoError(t, runner.Run(context.Background(), "graph"))
	data, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.Contains(t, string(data), "label: create")
}

func TestRunner_Errors(t *testing.T) {
	source := newSource(t)
	tests := []struct {
		name     string
		command  string
		options  *Options
		notFound bool
	}{
		{name: "unknown command", command: "chat", options: &Options{Source: source, Node: "Wallet"}},
		{name: "missing node option", command: "deps", options: &Options{Source: source}},
		{name: "missing store", command: "deps", options: &Options{Node: "Wallet"}},
		{name: "unknown node", command: "deps", options: &Options{Source: source, Node: "Stock"}, notFound: true},
		{name: "unknown function", command: "deps", options: &Options{Source: source, Node: "Wallet", Function: "refund"}, notFound: true},
		{name: "unsupported format", command: "deps", options: &Options{Source: source, Node: "Wallet", Format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &Runner{Options: tt.options, Output: &bytes.Buffer{}}
			err := runner.Run(context.Background(), tt.command)
			require.Error(t, err)
			assert.Equal(t, tt.notFound, graph.IsNotFound(err))
		})
	}
}

func TestRunner_Structure(t *testing.T) {
	location := filepath.Join(t.TempDir(), "raw.json")
	raw := `{"wallet": {"main": {"wallet": {"object_name": "wallet", "^field_name": "id", "^field_type": "int"}}}}`
	require.NoError(t, os.WriteFile(location, []byte(raw), 0o644))

	output := &bytes.Buffer{}
	runner := &Runner{Options: &Options{RawData: location, Node: "wallet", Format: "yaml"}, Output: output}
	require.NoError(t, runner.Run(context.Background(), "structure"))
	assert.Contains(t, output.String(), "field_name: id")

	output.Reset()
	runner = &Runner{Options: &Options{RawData: location}, Output: output}
	require.NoError(t, runner.Run(context.Background(), "structure"))
	var nodes []string
	require.NoError(t, json.Unmarshal(output.Bytes(), &nodes))
	assert.Equal(t, []string{"wallet"}, nodes)

	output.Reset()
	require.NoError(t, runner.Run(context.Background(), "model"))
	result := &flow.Graph{}
	require.NoError(t, json.Unmarshal(output.Bytes(), result))
	assert.NotEmpty(t, result.Nodes)
}

func newProject(t *testing.T) string {
	t.Helper()
	root := newSource(t)
	files := map[string]string{
		"composer.json": `{"name": "acme/wallet", "require": {}}`,
		"notes.md":      "# wallet",
		"empty.txt":     "no functions here",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	return root
}

func TestRunner_SourceUnits(t *testing.T) {
	runner := &Runner{Options: &Options{Source: newProject(t)}, Logger: slog.Default()}
	units, skipped, err := runner.sourceUnits(context.Background())
	require.NoError(t, err)

	var names []string
	for _, unit := range units {
		names = append(names, unit.Name)
	}
	assert.ElementsMatch(t, []string{"User", "Wallet"}, names)
	assert.ElementsMatch(t, []string{"composer.json", "notes.md", "empty.txt"}, skipped)
}

func TestRunner_ProjectName(t *testing.T) {
	source := newProject(t)
	tests := []struct {
		name    string
		options *Options
		expect  string
	}{
		{name: "detected from composer.json", options: &Options{Source: source}, expect: "acme/wallet"},
		{name: "explicit", options: &Options{Source: source, Name: "shop"}, expect: "shop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &Runner{Options: tt.options}
			assert.Equal(t, tt.expect, runner.projectName())
		})
	}
}

func TestRunner_ImportRequiresStore(t *testing.T) {
	runner := &Runner{Options: &Options{Source: newProject(t)}, Output: &bytes.Buffer{}}
	assert.Error(t, runner.Run(context.Background(), "import"))
}

func TestRunner_ImportAndAnalyze(t *testing.T) {
	dsn := os.Getenv("CALLFLOW_PG_DSN")
	if dsn == "" {
		t.Skip("CALLFLOW_PG_DSN is not set")
	}
	ctx := context.Background()
	output := &bytes.Buffer{}
	runner := &Runner{Options: &Options{Source: newProject(t), DSN: dsn}, Output: output}
	require.NoError(t, runner.Run(ctx, "import"))
	result := &ImportResult{}
	require.NoError(t, json.Unmarshal(output.Bytes(), result))
	assert.Equal(t, "acme/wallet", result.ProjectName)
	assert.ElementsMatch(t, []string{"User", "Wallet"}, result.Nodes)

	output.Reset()
	runner = &Runner{Options: &Options{DSN: dsn, Project: strconv.FormatInt(result.RawDataID, 10), Node: "Wallet", Function: "create"}, Output: output}
	require.NoError(t, runner.Run(ctx, "graph"))
	diagram := &flow.Graph{}
	require.NoError(t, json.Unmarshal(output.Bytes(), diagram))
	assert.Len(t, diagram.Nodes, 3)
}
