package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Manifest struct {
	Name       string          `json:"name"`
	Version    string          `json:"version"`
	Repository RepositoryField `json:"repository"`
}

// RepositoryField is the package.json "repository" value. Only the absent,
// string and object shapes are accepted; for objects HasURL reports whether
// "url" was present as a JSON string.
type RepositoryField struct {
	Kind   RepositoryKind
	Value  string
	URL    string
	HasURL bool
}

func (f *RepositoryField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = RepositoryField{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*f = RepositoryField{Kind: RepositoryKindString, Value: value}
		return nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return err
		}
		field := RepositoryField{Kind: RepositoryKindObject}
		if raw, ok := fields["url"]; ok && bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
			var url string
			if err := json.Unmarshal(raw, &url); err == nil {
				field.URL = url
				field.HasURL = true
			}
		}
		*f = field
		return nil
	default:
		return fmt.Errorf("unsupported repository field %s", string(trimmed))
	}
}
