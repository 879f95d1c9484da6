// Package entities contains the workspace document model shared by export and import.
package entities

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const resourcesKey = "resources"

// Document is a parsed workspace export.
// Top-level members other than resources are carried verbatim, and the
// position of resources among them is kept.
type Document struct {
	members   *orderedmap.OrderedMap[string, json.RawMessage]
	resources []*Resource
}

// ParseDocument decodes a serialized workspace export.
func ParseDocument(data []byte) (*Document, error) {
	if !isObject(data) {
		return nil, ErrNotObject
	}

	members := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, members); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	rawResources, ok := members.Get(resourcesKey)
	if !ok || bytes.Equal(bytes.TrimSpace(rawResources), []byte("null")) {
		return nil, ErrMissingResources
	}

	var items []json.RawMessage
	if err := json.Unmarshal(rawResources, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingResources, err)
	}

	resources := make([]*Resource, 0, len(items))
	for i, item := range items {
		r, err := ParseResource(item)
		if err != nil {
			return nil, fmt.Errorf("resource %d: %w", i, err)
		}
		resources = append(resources, r)
	}

	return &Document{members: members, resources: resources}, nil
}

// Resources returns the resources in document order.
func (d *Document) Resources() []*Resource {
	return d.resources
}

// SetResources replaces the resource sequence.
func (d *Document) SetResources(resources []*Resource) {
	d.resources = resources
}

// FindResource returns the first resource with the given id.
func (d *Document) FindResource(id string) (*Resource, bool) {
	for _, r := range d.resources {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// Environments returns the environment resources in document order.
func (d *Document) Environments() []*Resource {
	var envs []*Resource
	for _, r := range d.resources {
		if r.IsEnvironment() {
			envs = append(envs, r)
		}
	}
	return envs
}

// SetMarker writes value under the marker key of a field of the resource with the given id.
func (d *Document) SetMarker(resourceID, field, value string) error {
	r, ok := d.FindResource(resourceID)
	if !ok {
		return NewFieldError(resourceID, field, ErrResourceNotFound)
	}
	return r.SetMarker(field, value)
}

// MarshalJSON encodes the document compactly.
func (d *Document) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, 0, len(d.resources))
	for _, r := range d.resources {
		encoded, err := r.MarshalJSON()
		if err != nil {
			return nil, err
		}
		items = append(items, encoded)
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resources: %w", err)
	}
	d.members.Set(resourcesKey, encoded)

	return json.Marshal(d.members)
}

// Encode returns the document as JSON indented with two spaces.
func (d *Document) Encode() ([]byte, error) {
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent document: %w", err)
	}
	return buf.Bytes(), nil
}
