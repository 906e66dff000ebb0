package model

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Document is an opaque JSON value kept exactly as submitted.
// It marshals and unmarshals like json.RawMessage.
type Document []byte

// MarshalJSON returns d as the JSON encoding of d.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON keeps a copy of data without decoding it.
func (d *Document) UnmarshalJSON(data []byte) error {
	if d == nil {
		return errors.New("model.Document: UnmarshalJSON on nil pointer")
	}
	*d = append((*d)[0:0], data...)
	return nil
}

// IsObject reports whether d holds a well-formed JSON object.
func (d Document) IsObject() bool {
	if len(d) == 0 || !gjson.ValidBytes(d) {
		return false
	}
	return gjson.ParseBytes(d).IsObject()
}

// IsFalsy reports whether d is absent or one of null, false, 0, "".
func (d Document) IsFalsy() bool {
	if len(d) == 0 {
		return true
	}
	v := gjson.ParseBytes(d)
	switch v.Type {
	case gjson.Null:
		return true
	case gjson.False:
		return true
	case gjson.Number:
		return v.Float() == 0
	case gjson.String:
		return v.Str == ""
	}
	return false
}

// Severity returns the document's severity field, or "" when missing.
func (d Document) Severity() string {
	return gjson.GetBytes(d, "severity").String()
}

// Message returns the document's message field, or "" when missing.
func (d Document) Message() string {
	return gjson.GetBytes(d, "message").String()
}
