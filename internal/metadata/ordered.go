package metadata

import (
	"bytes"
	"encoding/json"
	"sort"
)

// metadataKeyOrder is the canonical key order for rewritten metadata.json
// files. Keys outside this list follow, sorted.
var metadataKeyOrder = []string{
	"name", "version", "category", "toolchain", "framework",
	"tags", "entry_point_tokens", "full_tokens", "related_skills",
	"author", "license",
}

// orderedObject marshals a JSON object with a fixed key order.
type orderedObject struct {
	keys   []string
	values map[string]any
}

// newOrderedMetadata arranges metadata keys canonically.
func newOrderedMetadata(values map[string]any) orderedObject {
	o := orderedObject{values: values}

	seen := make(map[string]bool, len(values))
	for _, k := range metadataKeyOrder {
		if _, ok := values[k]; ok {
			o.keys = append(o.keys, k)
			seen[k] = true
		}
	}

	var rest []string
	for k := range values {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	o.keys = append(o.keys, rest...)

	return o
}

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
