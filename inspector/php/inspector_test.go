package php_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/callflow/inspector/graph"
	"github.com/viant/callflow/inspector/php"
	"github.com/viant/callflow/inspector/text"
)

func TestInspector_InspectSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		expect []string
	}{
		{
			name: "class methods",
			source: `<?php
class Billing {
    public function charge($amount) {
        $e = loadModule("ledger");
        return $e->post($amount);
    }

    protected static function fee($amount)
    {
        return $amount * 0.1;
    }
}`,
			expect: []string{"charge", "fee"},
		},
		{
			name:   "without open tag",
			source: "function a() { return $this->b(); }\nfunction b() { return 1; }",
			expect: []string{"a", "b"},
		},
		{
			name: "braces inside literals",
			source: `<?php
function render() {
    $tpl = "{ not a block";
    // } neither is this
    return $tpl;
}
function after() { return 2; }`,
			expect: []string{"render", "after"},
		},
	}

	insp := php.NewInspector(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := insp.InspectSource(&graph.Unit{Name: "unit", Text: tt.source})
			require.NoError(t, err)
			assert.Equal(t, tt.expect, file.Names())
			for _, fn := range file.Functions {
				assert.Equal(t, tt.source[fn.Location.Start:fn.Location.End], fn.Body)
			}
		})
	}
}

func TestInspector_AgreesWithTextScanner(t *testing.T) {
	source := `<?php
class Wallet {
    public function create($data) {
        $user_engine = load_engine("user");
        if ($data) { $this->validate($data); }
        return $user_engine->get($data);
    }
    private function validate($item) { return !empty($item); }
}`
	unit := &graph.Unit{Name: "wallet", Text: source}
	syntax, err := php.NewInspector(nil).InspectSource(unit)
	require.NoError(t, err)
	plain, err := text.NewInspector(nil).InspectSource(unit)
	require.NoError(t, err)
	require.Equal(t, plain.Names(), syntax.Names())
	for i, fn := range plain.Functions {
		assert.Equal(t, fn.Body, syntax.Functions[i].Body)
	}
}

func TestInspector_InspectFunction(t *testing.T) {
	insp := php.NewInspector(nil)
	unit := &graph.Unit{Name: "m", Text: "<?php function one() { return 1; }"}
	fn, err := insp.InspectFunction(unit, "one")
	require.NoError(t, err)
	assert.Equal(t, "function one() { return 1; }", fn.Body)

	_, err = insp.InspectFunction(unit, "two")
	assert.True(t, graph.IsNotFound(err))

	_, err = insp.InspectSource(&graph.Unit{Name: "none", Text: "<?php echo 1;"})
	assert.ErrorIs(t, err, graph.ErrNoFunctions)
}
