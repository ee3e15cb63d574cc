package codec

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// UnmarshalEdits parses an edit script: either a bare list of edits or a
// mapping with an "edits" list.
func UnmarshalEdits(data []byte, format Format) ([]domain.Edit, error) {
	var raw any
	var err error
	switch format {
	case YAML:
		raw, err = decodeYAML(data)
	case JSON, "":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	return EditsFromAny(raw)
}

// EditsFromAny decodes an edit script from generic data. Unknown fields and
// edits without an op are rejected.
func EditsFromAny(raw any) ([]domain.Edit, error) {
	if m, ok := raw.(map[string]any); ok {
		raw, ok = m["edits"]
		if !ok {
			return nil, &FormatError{Field: "edits", Err: fmt.Errorf("required field is missing")}
		}
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &FormatError{Field: "edits", Err: fmt.Errorf("must be a list, got %T", raw)}
	}

	edits := make([]domain.Edit, 0, len(items))
	for i, item := range items {
		var e domain.Edit
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &e,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		field := fmt.Sprintf("edits[%d]", i)
		if err := dec.Decode(item); err != nil {
			return nil, &FormatError{Field: field, Err: err}
		}
		if e.Op == "" {
			return nil, &FormatError{Field: field, Err: fmt.Errorf("op is required")}
		}
		edits = append(edits, e)
	}
	return edits, nil
}
