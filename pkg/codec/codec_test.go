package codec_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incomplete(t *testing.T) *domain.Automaton {
	t.Helper()
	a := domain.New()
	require.NoError(t, a.AddState("x"))
	require.NoError(t, a.AddState("y"))
	require.NoError(t, a.AddSymbol("a"))
	require.NoError(t, a.AddTransition("x", "a", "y"))
	return a
}

func TestRoundTrip(t *testing.T) {
	models := map[string]*domain.Automaton{
		"empty":      domain.New(),
		"incomplete": incomplete(t),
	}
	for _, ex := range catalog.All() {
		models[ex.Name] = ex.Build()
	}

	for name, a := range models {
		for _, format := range []codec.Format{codec.JSON, codec.YAML} {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				data, err := codec.Marshal(a, format)
				require.NoError(t, err)

				got, err := codec.Unmarshal(data, format)
				require.NoError(t, err)
				assert.True(t, a.Equal(got), "round trip changed the model:\n%s\nvs\n%s", a, got)
			})
		}
	}
}

func TestEncode_Shape(t *testing.T) {
	data, err := codec.Marshal(incomplete(t), codec.JSON)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"states": ["x", "y"],
		"alphabet": ["a"],
		"initial_state": null,
		"accepting_states": [],
		"transitions": [{"from_state": "x", "symbol": "a", "to_state": "y"}]
	}`, string(data))
}

func TestDecode_LegacyEquivalence(t *testing.T) {
	list := `{
		"states": ["q0", "a,b"],
		"alphabet": ["0", "1"],
		"initial_state": "q0",
		"accepting_states": ["a,b"],
		"transitions": [
			{"from_state": "q0", "symbol": "0", "to_state": "a,b"},
			{"from_state": "q0", "symbol": "1", "to_state": "q0"},
			{"from_state": "a,b", "symbol": "0", "to_state": "a,b"},
			{"from_state": "a,b", "symbol": "1", "to_state": "q0"}
		]
	}`
	legacy := `{
		"states": ["q0", "a,b"],
		"alphabet": ["0", "1"],
		"initial_state": "q0",
		"accepting_states": ["a,b"],
		"transitions": {
			"q0,0": "a,b",
			"q0,1": "q0",
			"a,b,0": "a,b",
			"a,b,1": "q0"
		}
	}`

	fromList, err := codec.Unmarshal([]byte(list), codec.JSON)
	require.NoError(t, err)
	fromLegacy, err := codec.Unmarshal([]byte(legacy), codec.JSON)
	require.NoError(t, err)

	assert.True(t, fromList.Equal(fromLegacy))
	to, ok := fromLegacy.Next("a,b", "0")
	assert.True(t, ok)
	assert.Equal(t, "a,b", to)
}

func TestDecode_LegacyYAML(t *testing.T) {
	doc := `
states: [q0, q1]
alphabet: ["0", "1"]
initial_state: q0
accepting_states: [q1]
transitions:
  "q0,0": q0
  "q0,1": q1
  "q1,0": q1
  "q1,1": q1
`
	got, err := codec.Unmarshal([]byte(doc), codec.YAML)
	require.NoError(t, err)
	assert.True(t, catalog.BinaryEndingWithOne().Equal(got))
}

func TestDecode_PlainYAMLScalars(t *testing.T) {
	doc := `
states: [q0, q1]
alphabet: [0, 1]
initial_state: q0
accepting_states: [q1]
transitions:
  - {from_state: q0, symbol: 0, to_state: q0}
  - {from_state: q0, symbol: 1, to_state: q1}
  - {from_state: q1, symbol: 0, to_state: q1}
  - {from_state: q1, symbol: 1, to_state: q1}
`
	got, err := codec.Unmarshal([]byte(doc), codec.YAML)
	require.NoError(t, err)
	assert.True(t, catalog.BinaryEndingWithOne().Equal(got))

	// Scalars keep their source text.
	got, err = codec.Unmarshal([]byte(`
states: [1.0, 010, yes]
alphabet: []
initial_state: ~
accepting_states: [yes]
transitions: []
`), codec.YAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"010", "1.0", "yes"}, got.States())
	assert.Equal(t, []string{"yes"}, got.AcceptingStates())
	_, ok := got.InitialState()
	assert.False(t, ok)
}

func TestDecode_YAMLShape(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":            ``,
		"sequence":         `[1, 2, 3]`,
		"null states":      "states: ~\nalphabet: []\naccepting_states: []\ntransitions: []",
		"null transitions": "states: []\nalphabet: []\naccepting_states: []\ntransitions:",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Unmarshal([]byte(doc), codec.YAML)
			assert.ErrorIs(t, err, domain.ErrFormat)
		})
	}
}

func TestSplitLegacyKey(t *testing.T) {
	from, sym, err := codec.SplitLegacyKey("a,b,c")
	require.NoError(t, err)
	assert.Equal(t, "a,b", from)
	assert.Equal(t, "c", sym)

	_, _, err = codec.SplitLegacyKey("q0")
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		field   string
		wantIs  error
		message string
	}{
		{
			name:    "legacy key without comma",
			doc:     `{"states":["q0","q1"],"alphabet":["0"],"initial_state":"q0","accepting_states":[],"transitions":{"q0":"q1"}}`,
			field:   "transitions",
			message: "no comma",
		},
		{
			name:  "missing states",
			doc:   `{"alphabet":["0"],"accepting_states":[],"transitions":[]}`,
			field: "states",
		},
		{
			name:  "null states",
			doc:   `{"states":null,"alphabet":["0"],"accepting_states":[],"transitions":[]}`,
			field: "states",
		},
		{
			name:  "null transitions",
			doc:   `{"states":[],"alphabet":[],"accepting_states":[],"transitions":null}`,
			field: "transitions",
		},
		{
			name:  "missing transitions",
			doc:   `{"states":[],"alphabet":[],"accepting_states":[]}`,
			field: "transitions",
		},
		{
			name: "number instead of string",
			doc:  `{"states":[1],"alphabet":[],"accepting_states":[],"transitions":[]}`,
		},
		{
			name:   "dangling transition",
			doc:    `{"states":["q0"],"alphabet":["0"],"accepting_states":[],"transitions":[{"from_state":"q0","symbol":"0","to_state":"q9"}]}`,
			field:  "transitions[0]",
			wantIs: domain.ErrReference,
		},
		{
			name:   "unknown initial state",
			doc:    `{"states":["q0"],"alphabet":[],"initial_state":"q1","accepting_states":[],"transitions":[]}`,
			field:  "initial_state",
			wantIs: domain.ErrReference,
		},
		{
			name:   "multi character symbol",
			doc:    `{"states":[],"alphabet":["ab"],"accepting_states":[],"transitions":[]}`,
			field:  "alphabet",
			wantIs: domain.ErrInvalidSymbol,
		},
		{
			name:  "record missing a field",
			doc:   `{"states":["q0"],"alphabet":["0"],"accepting_states":[],"transitions":[{"from_state":"q0","symbol":"0"}]}`,
			field: "transitions[0]",
		},
		{
			name:  "transitions of the wrong shape",
			doc:   `{"states":[],"alphabet":[],"accepting_states":[],"transitions":"q0,0=q1"}`,
			field: "transitions",
		},
		{
			name: "not an object",
			doc:  `[1, 2, 3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Unmarshal([]byte(tt.doc), codec.JSON)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFormat)

			var fe *codec.FormatError
			require.True(t, errors.As(err, &fe))
			if tt.field != "" {
				assert.Equal(t, tt.field, fe.Field)
			}
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestDecode_NullInitialState(t *testing.T) {
	for _, doc := range []string{
		`{"states":["q0"],"alphabet":[],"initial_state":null,"accepting_states":[],"transitions":[]}`,
		`{"states":["q0"],"alphabet":[],"accepting_states":[],"transitions":[]}`,
	} {
		a, err := codec.Unmarshal([]byte(doc), codec.JSON)
		require.NoError(t, err)
		_, ok := a.InitialState()
		assert.False(t, ok)
	}
}

func TestDocumentFromMap(t *testing.T) {
	doc, err := codec.DocumentFromMap(map[string]any{
		"states":           []any{"s"},
		"alphabet":         []any{"x"},
		"initial_state":    "s",
		"accepting_states": []any{"s"},
		"transitions": []any{
			map[string]any{"from_state": "s", "symbol": "x", "to_state": "s"},
		},
	})
	require.NoError(t, err)
	assert.False(t, doc.Transitions.IsLegacy())

	a, err := codec.Decode(doc)
	require.NoError(t, err)
	want := dsl.New().Alphabet("x")
	want.State("s").Initial().Accepting().On("x", "s")
	assert.True(t, want.MustBuild().Equal(a))
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	a := catalog.ExactlyTwoAs()

	for _, name := range []string{"two.json", "two.yaml", "nested/two.yml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, codec.Save(a, path))

		got, err := codec.Load(path)
		require.NoError(t, err)
		assert.True(t, a.Equal(got), name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp files must not be left behind")
	}

	_, err = codec.Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, codec.YAML, codec.FormatFromPath("a.YML"))
	assert.Equal(t, codec.JSON, codec.FormatFromPath("a.txt"))

	f, err := codec.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, codec.YAML, f)
	_, err = codec.ParseFormat("toml")
	assert.Error(t, err)
}
