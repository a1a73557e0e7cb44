package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/callflow/inspector/graph"
	"github.com/viant/callflow/inspector/repository"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		location := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
}

func TestNodeName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "Wallet.php", expected: "Wallet"},
		{input: "Wallet", expected: "Wallet"},
		{input: "lib.engine.inc", expected: "lib.engine"},
		{input: ".hidden", expected: ".hidden"},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, repository.NodeName(tc.input))
		})
	}
}

func TestFSStore_Units(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"shop/Wallet.php":        "function a() { }",
		"shop/Ledger.inc":        "function b() { }",
		"shop/README.md":         "# shop",
		"shop/engines/Stock.php": "function c() { }",
	})

	testCases := []struct {
		description string
		recursive   bool
		expected    []string
	}{
		{description: "flat", recursive: false, expected: []string{"Ledger", "Wallet"}},
		{description: "recursive", recursive: true, expected: []string{"Ledger", "Stock", "Wallet"}},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			store := repository.NewFSStore(root, tc.recursive)
			units, err := store.Units(context.Background(), "shop")
			require.NoError(t, err)
			var names []string
			for name := range units {
				names = append(names, name)
			}
			assert.ElementsMatch(t, tc.expected, names)
			text, ok := units.Lookup("Wallet")
			require.True(t, ok)
			assert.Equal(t, "function a() { }", text)
		})
	}
}

func TestFSStore_Assets(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"Wallet.php":   "function a() { }",
		"Wallet.inc":   "function b() { }",
		"notes.txt":    "todo",
		"Ledger.phtml": "function c() { }",
	})
	store := repository.NewFSStore(root, false)
	store.Filter = func(filename string) bool {
		return filepath.Ext(filename) != ".txt"
	}
	assets, err := store.Assets(context.Background(), "")
	require.NoError(t, err)

	var names []string
	for _, asset := range assets {
		names = append(names, asset.Unit.Name)
		assert.Equal(t, asset.Unit.Name, repository.NodeName(asset.Filename))
		assert.NotEmpty(t, asset.URL)
	}
	assert.ElementsMatch(t, []string{"Ledger", "Wallet"}, names)
}

func TestDetector_DetectProject(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"app/composer.json":  `{"name": "acme/wallet", "require": {}}`,
		"app/src/Wallet.php": "function a() { }",
	})

	detector := repository.NewDetector()
	project, err := detector.DetectProject(filepath.Join(root, "app", "src", "Wallet.php"))
	require.NoError(t, err)
	assert.Equal(t, "php", project.Type)
	assert.Equal(t, "acme/wallet", project.Name)
	assert.Equal(t, filepath.Join(root, "app"), project.RootPath)

	_, err = detector.DetectProject(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestParseRawDataID(t *testing.T) {
	testCases := []struct {
		input    string
		expected int64
		hasError bool
	}{
		{input: "12", expected: 12},
		{input: " 3 ", expected: 3},
		{input: "0", hasError: true},
		{input: "-1", hasError: true},
		{input: "abc", hasError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			id, err := repository.ParseRawDataID(tc.input)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("CALLFLOW_PG_DSN")
	if dsn == "" {
		t.Skip("CALLFLOW_PG_DSN is not set")
	}
	ctx := context.Background()
	store, err := repository.NewPostgresStore(dsn)
	require.NoError(t, err)
	defer store.Close()

	id, err := store.PutRawData(ctx, "shop", []byte(`{"Wallet": {}}`))
	require.NoError(t, err)
	require.NoError(t, store.PutNode(ctx, id, "shop", &graph.Unit{Name: "Wallet", Text: "function a() { }"}))
	require.NoError(t, store.PutNode(ctx, id, "shop", &graph.Unit{Name: "Wallet", Text: "function b() { }"}))

	units, err := store.Units(ctx, strconv.FormatInt(id, 10))
	require.NoError(t, err)
	assert.Equal(t, graph.Units{"Wallet": "function b() { }"}, units)

	_, err = store.RawData(ctx, id+1_000_000)
	assert.True(t, graph.IsNotFound(err))
}
