package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// The backend is inconsistent about collection shapes: the same endpoint may
// return a bare array, an envelope object with a "data" field, or a plain
// object whose values are the records keyed by numeric index. Normalization
// happens once, here, so downstream code only ever sees one canonical shape.

// CollectionBytes normalizes a collection payload into an ordered slice of
// raw records. Keyed objects are ordered by numeric key ascending; any
// non-numeric keys sort after the numeric ones, lexicographically.
func CollectionBytes(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []json.RawMessage{}, nil
	}

	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode collection: %w", err)
		}
		return records, nil
	case '{':
		var object map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &object); err != nil {
			return nil, fmt.Errorf("decode collection: %w", err)
		}
		if data, ok := object["data"]; ok {
			return CollectionBytes(data)
		}
		keys := make([]string, 0, len(object))
		for key := range object {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			ni, errI := strconv.Atoi(keys[i])
			nj, errJ := strconv.Atoi(keys[j])
			switch {
			case errI == nil && errJ == nil:
				return ni < nj
			case errI == nil:
				return true
			case errJ == nil:
				return false
			default:
				return keys[i] < keys[j]
			}
		})
		records := make([]json.RawMessage, 0, len(keys))
		for _, key := range keys {
			records = append(records, object[key])
		}
		return records, nil
	default:
		return nil, fmt.Errorf("unexpected collection shape: %s", preview(trimmed))
	}
}

// RecordBytes normalizes a single-entity payload, unwrapping any number of
// "data" envelopes.
func RecordBytes(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("empty record payload")
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &object); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if data, ok := object["data"]; ok {
		return RecordBytes(data)
	}
	return trimmed, nil
}

// decodeList normalizes and decodes a collection payload into typed records.
func decodeList[T any](raw []byte) ([]T, error) {
	records, err := CollectionBytes(raw)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, record := range records {
		var item T
		if err := json.Unmarshal(record, &item); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, item)
	}
	return out, nil
}

// decodeRecord normalizes and decodes a single-entity payload.
func decodeRecord[T any](raw []byte) (*T, error) {
	record, err := RecordBytes(raw)
	if err != nil {
		return nil, err
	}
	var item T
	if err := json.Unmarshal(record, &item); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &item, nil
}

func preview(raw []byte) string {
	const max = 60
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max]) + "..."
}
