package entities

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TypeEnvironment is the resource type inspected for secrets.
const TypeEnvironment = "environment"

const (
	memberID      = "_id"
	memberType    = "_type"
	memberName    = "name"
	memberSortKey = "metaSortKey"
	memberData    = "data"
	memberPrivate = "isPrivate"
)

// Resource is one node of an exported document.
// Only _id, _type, name, metaSortKey and data are interpreted; every other
// member is carried verbatim and in order.
type Resource struct {
	members *orderedmap.OrderedMap[string, json.RawMessage]
	// data is nil when the resource has no data object.
	data *orderedmap.OrderedMap[string, json.RawMessage]
}

// ParseResource decodes a single resource object.
func ParseResource(raw []byte) (*Resource, error) {
	if !isObject(raw) {
		return nil, ErrNotObject
	}

	members := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(raw, members); err != nil {
		return nil, fmt.Errorf("failed to parse resource: %w", err)
	}

	r := &Resource{members: members}
	if rawData, ok := members.Get(memberData); ok && isObject(rawData) {
		data := orderedmap.New[string, json.RawMessage]()
		if err := json.Unmarshal(rawData, data); err != nil {
			return nil, fmt.Errorf("failed to parse resource data: %w", err)
		}
		r.data = data
	}
	return r, nil
}

// ID returns the resource's _id.
func (r *Resource) ID() string {
	return r.stringMember(memberID)
}

// Type returns the resource's _type discriminator.
func (r *Resource) Type() string {
	return r.stringMember(memberType)
}

// Name returns the display label.
func (r *Resource) Name() string {
	return r.stringMember(memberName)
}

// SortKey returns metaSortKey, or 0 when absent or not a number.
func (r *Resource) SortKey() float64 {
	raw, ok := r.members.Get(memberSortKey)
	if !ok {
		return 0
	}
	var key float64
	if err := json.Unmarshal(raw, &key); err != nil {
		return 0
	}
	return key
}

// IsEnvironment reports whether the resource is an environment.
func (r *Resource) IsEnvironment() bool {
	return r.Type() == TypeEnvironment
}

// IsPrivate reports whether the host marked the resource private.
func (r *Resource) IsPrivate() bool {
	raw, ok := r.members.Get(memberPrivate)
	if !ok {
		return false
	}
	var private bool
	if err := json.Unmarshal(raw, &private); err != nil {
		return false
	}
	return private
}

// MarkerKey resolves the secret marker key for this resource.
func (r *Resource) MarkerKey() string {
	raw, ok := r.Field(SecretsKeyField)
	if !ok {
		return DefaultMarkerKey
	}
	var key string
	if err := json.Unmarshal(raw, &key); err != nil || key == "" {
		return DefaultMarkerKey
	}
	return key
}

// FieldNames returns data field names in document order.
func (r *Resource) FieldNames() []string {
	if r.data == nil {
		return nil
	}
	names := make([]string, 0, r.data.Len())
	for pair := r.data.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Field returns the raw value of a data field.
func (r *Resource) Field(name string) (json.RawMessage, bool) {
	if r.data == nil {
		return nil, false
	}
	return r.data.Get(name)
}

// ClassifiedField returns a data field classified against this resource's marker key.
func (r *Resource) ClassifiedField(name string) (FieldValue, bool) {
	raw, ok := r.Field(name)
	if !ok {
		return FieldValue{}, false
	}
	return ClassifyField(raw, r.MarkerKey()), true
}

// SetMarker writes value under the marker key of the named field.
// The field must exist and be a mapping.
func (r *Resource) SetMarker(name, value string) error {
	fv, ok := r.ClassifiedField(name)
	if !ok {
		return NewFieldError(r.ID(), name, ErrFieldNotFound)
	}
	updated, err := fv.WithMarker(value)
	if err != nil {
		return NewFieldError(r.ID(), name, err)
	}
	r.data.Set(name, updated)
	return nil
}

// MarshalJSON encodes the resource, folding data changes back in.
func (r *Resource) MarshalJSON() ([]byte, error) {
	if r.data != nil {
		encoded, err := json.Marshal(r.data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode resource data: %w", err)
		}
		r.members.Set(memberData, encoded)
	}
	return json.Marshal(r.members)
}

func (r *Resource) stringMember(key string) string {
	raw, ok := r.members.Get(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
