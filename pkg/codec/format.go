package codec

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the document syntax.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat maps a format name to its value. The empty string selects JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unsupported document format %q", name)
	}
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Marshal encodes the automaton in the given format.
func Marshal(a *domain.Automaton, format Format) ([]byte, error) {
	return MarshalDocument(Encode(a), format)
}

// MarshalDocument encodes a document in the given format.
func MarshalDocument(doc Document, format Format) ([]byte, error) {
	switch format {
	case YAML:
		return yaml.Marshal(doc)
	case JSON, "":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
}

// Unmarshal parses and decodes a document.
func Unmarshal(data []byte, format Format) (*domain.Automaton, error) {
	doc, err := ParseDocument(data, format)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}

// ParseDocument parses raw bytes into a Document without applying it.
func ParseDocument(data []byte, format Format) (Document, error) {
	var parsed any
	var err error
	switch format {
	case YAML:
		parsed, err = decodeYAML(data)
	case JSON, "":
		err = json.Unmarshal(data, &parsed)
	default:
		return Document{}, fmt.Errorf("unsupported document format %q", format)
	}
	if err != nil {
		return Document{}, &FormatError{Err: err}
	}

	switch raw := parsed.(type) {
	case nil:
		return Document{}, &FormatError{Err: fmt.Errorf("document is empty")}
	case map[string]any:
		return DocumentFromMap(raw)
	default:
		return Document{}, &FormatError{Err: fmt.Errorf("document must be a mapping, got %T", parsed)}
	}
}

var requiredFields = []string{"states", "alphabet", "accepting_states", "transitions"}

type rawDocument struct {
	States          []string `mapstructure:"states"`
	Alphabet        []string `mapstructure:"alphabet"`
	InitialState    *string  `mapstructure:"initial_state"`
	AcceptingStates []string `mapstructure:"accepting_states"`
	Transitions     any      `mapstructure:"transitions"`
}

// DocumentFromMap converts a generic map, as produced by JSON or YAML
// decoders or received as tool arguments, into a Document. The shape of
// "transitions" selects the list or legacy encoding.
func DocumentFromMap(raw map[string]any) (Document, error) {
	for _, field := range requiredFields {
		v, ok := raw[field]
		if !ok {
			return Document{}, &FormatError{Field: field, Err: fmt.Errorf("required field is missing")}
		}
		if v == nil {
			return Document{}, &FormatError{Field: field, Err: fmt.Errorf("required field is null")}
		}
	}

	var rd rawDocument
	if err := mapstructure.Decode(raw, &rd); err != nil {
		return Document{}, &FormatError{Err: err}
	}

	doc := Document{
		States:          nonNil(rd.States),
		Alphabet:        nonNil(rd.Alphabet),
		InitialState:    rd.InitialState,
		AcceptingStates: nonNil(rd.AcceptingStates),
	}

	switch v := rd.Transitions.(type) {
	case []any:
		list, err := decodeRecords(v)
		if err != nil {
			return Document{}, err
		}
		doc.Transitions = Transitions{List: list}
	case map[string]any:
		legacy := make(map[string]string, len(v))
		for key, to := range v {
			s, ok := to.(string)
			if !ok {
				return Document{}, &FormatError{Field: "transitions", Err: fmt.Errorf("legacy key %q: target must be a string, got %T", key, to)}
			}
			legacy[key] = s
		}
		doc.Transitions = Transitions{Legacy: legacy}
	default:
		return Document{}, &FormatError{Field: "transitions", Err: fmt.Errorf("must be a list of records or a mapping, got %T", v)}
	}
	return doc, nil
}

func decodeRecords(items []any) ([]domain.Transition, error) {
	list := make([]domain.Transition, 0, len(items))
	for i, item := range items {
		var t domain.Transition
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:     &t,
			ErrorUnset: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(item); err != nil {
			return nil, &FormatError{Field: fmt.Sprintf("transitions[%d]", i), Err: err}
		}
		list = append(list, t)
	}
	return list, nil
}
