package sector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Document is a decoded sector dataset. Each sector has its own fixed shape
// (kpis, chartData, talukas, waterfalls, ...) but the synthesis pipeline
// treats them uniformly as JSON trees, so unknown fields survive template
// growth without code changes.
//
// Numbers are kept as json.Number so fields the transform never touches
// re-encode byte-identically.
type Document map[string]any

// ReadDocument decodes a sector JSON file.
func ReadDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// WriteDocument encodes doc with two-space indentation. Go's JSON encoder
// sorts object keys, so output is stable across runs.
func WriteDocument(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Clone returns a deep copy of the document. The pipeline mutates the copy so
// the loaded template stays pristine across districts.
func (d Document) Clone() Document {
	return cloneValue(map[string]any(d)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		// json.Number, string, bool, nil are immutable.
		return v
	}
}

// Rows returns the named field as a slice of row objects, or nil when the
// field is absent or shaped differently.
func (d Document) Rows(field string) []map[string]any {
	arr, ok := d[field].([]any)
	if !ok {
		return nil
	}
	rows := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if row, ok := v.(map[string]any); ok {
			rows = append(rows, row)
		}
	}
	return rows
}
