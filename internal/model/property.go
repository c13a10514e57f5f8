package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Raw record field names.
const (
	FieldID            = "id"
	FieldGLA           = "gla"
	FieldRoomTotal     = "room_total"
	FieldBedrooms      = "bedrooms"
	FieldYearBuilt     = "year_built"
	FieldStructureType = "structure_type"
	FieldAddress       = "address"
	FieldEffectiveDate = "effective_date"
)

// RawProperty is a single listing record as it appeared in the input file.
// Fields are loosely typed (strings, numbers, null or absent), so the record
// keeps its verbatim JSON and resolves fields on demand. It is never mutated.
type RawProperty struct {
	raw []byte
}

// NewRawProperty wraps a JSON document. The bytes are copied.
func NewRawProperty(data []byte) RawProperty {
	return RawProperty{raw: bytes.Clone(data)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *RawProperty) UnmarshalJSON(data []byte) error {
	p.raw = bytes.Clone(data)
	return nil
}

// MarshalJSON implements json.Marshaler and returns the record unchanged.
func (p RawProperty) MarshalJSON() ([]byte, error) {
	if len(p.raw) == 0 {
		return []byte("null"), nil
	}
	return bytes.Clone(p.raw), nil
}

// Raw returns a copy of the record's JSON.
func (p RawProperty) Raw() json.RawMessage {
	return bytes.Clone(p.raw)
}

// IsObject reports whether the record is a JSON object.
func (p RawProperty) IsObject() bool {
	return len(p.raw) > 0 && gjson.ParseBytes(p.raw).IsObject()
}

// Field returns the raw value stored under name. Names are plain keys, not paths.
func (p RawProperty) Field(name string) gjson.Result {
	if len(p.raw) == 0 {
		return gjson.Result{}
	}
	return gjson.GetBytes(p.raw, name)
}

// Text returns the field as trimmed text. Absent and null fields yield "".
// Numbers keep their literal form ("1990", "1500.5").
func (p RawProperty) Text(name string) string {
	r := p.Field(name)
	if !r.Exists() || r.Type == gjson.Null {
		return ""
	}
	return strings.TrimSpace(r.String())
}

// ID returns the record's identifier in string form.
func (p RawProperty) ID() (string, bool) {
	id := p.Text(FieldID)
	return id, id != ""
}

// Address returns the record's street address, or "".
func (p RawProperty) Address() string {
	return p.Text(FieldAddress)
}

// Dataset is one snapshot of a subject and its candidate pool.
type Dataset struct {
	Subject    RawProperty   `json:"subject"`
	Properties []RawProperty `json:"properties"`
	Comps      []RawProperty `json:"comps"`
}

// Candidates returns the ranking pool: properties followed by comps, in input order.
func (d *Dataset) Candidates() []RawProperty {
	out := make([]RawProperty, 0, len(d.Properties)+len(d.Comps))
	out = append(out, d.Properties...)
	return append(out, d.Comps...)
}
