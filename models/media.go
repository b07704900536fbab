package models

import (
	"encoding/json"
	"strings"
)

// Media is an uploaded asset such as a featured image or avatar.
type Media struct {
	URL             string `json:"url"`
	AlternativeText string `json:"alternativeText"`
}

// UnmarshalJSON accepts both the nested v4 shape
// {"data":{"attributes":{...}}} and the flat v5 shape {"url":...}.
func (m *Media) UnmarshalJSON(data []byte) error {
	var nested struct {
		Data *struct {
			Attributes *Media `json:"attributes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}
	if nested.Data != nil && nested.Data.Attributes != nil {
		*m = *nested.Data.Attributes
		return nil
	}

	type flat Media
	var f flat
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Media(f)
	return nil
}

// IsEmpty reports whether there is no usable asset URL.
func (m *Media) IsEmpty() bool {
	return m == nil || m.URL == ""
}

// Resolve returns an absolute URL, prefixing relative upload paths with base.
func (m *Media) Resolve(base string) string {
	if m.IsEmpty() {
		return ""
	}
	if strings.HasPrefix(m.URL, "http://") || strings.HasPrefix(m.URL, "https://") {
		return m.URL
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(m.URL, "/")
}

