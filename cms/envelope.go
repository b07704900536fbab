package cms

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/westbourne-advisory/website/models"
)

// list decodes a Strapi collection response into typed entries.
//
// Strapi v4 wraps each entry as {"id":1,"attributes":{...}} while v5 returns
// flat objects; both shapes end up in the same struct.
type list[T any] struct {
	Items      []T
	Pagination models.Pagination
}

func (l *list[T]) UnmarshalJSON(data []byte) error {
	var env struct {
		Data json.RawMessage `json:"data"`
		Meta struct {
			Pagination models.Pagination `json:"pagination"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	l.Pagination = env.Meta.Pagination

	raw := bytes.TrimSpace(env.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		l.Items = nil
		return nil
	}

	var entries []json.RawMessage
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return err
		}
	} else {
		entries = []json.RawMessage{raw}
	}

	l.Items = make([]T, 0, len(entries))
	for i, entry := range entries {
		flat, err := flatten(entry)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		var item T
		if err := json.Unmarshal(flat, &item); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		l.Items = append(l.Items, item)
	}
	return nil
}

// flatten lifts v4 attributes next to the id. Flat entries pass through.
func flatten(entry json.RawMessage) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return nil, err
	}

	attrs, ok := fields["attributes"]
	if !ok {
		return entry, nil
	}

	var inner map[string]json.RawMessage
	if err := json.Unmarshal(attrs, &inner); err != nil {
		return nil, fmt.Errorf("attributes: %w", err)
	}
	for _, key := range []string{"id", "documentId"} {
		if v, ok := fields[key]; ok {
			inner[key] = v
		}
	}
	return json.Marshal(inner)
}
