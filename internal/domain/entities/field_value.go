package entities

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	// DefaultMarkerKey is the member name that holds a secret's plaintext.
	DefaultMarkerKey = "_secret"

	// SecretsKeyField is the reserved data field that overrides the marker key
	// for one environment.
	SecretsKeyField = "insomnia_export_secrets_key"

	// ObfuscatedValue replaces secret plaintexts in exported documents.
	ObfuscatedValue = "******"
)

// FieldKind classifies a value of an environment's data mapping.
type FieldKind int

const (
	// FieldScalar is any non-object JSON value.
	FieldScalar FieldKind = iota
	// FieldPlain is an object without a usable marker.
	FieldPlain
	// FieldSecret is an object whose marker member holds a non-empty value.
	FieldSecret
)

// String returns the kind name.
func (k FieldKind) String() string {
	switch k {
	case FieldPlain:
		return "plain"
	case FieldSecret:
		return "secret"
	default:
		return "scalar"
	}
}

// FieldValue is the classified form of one data field.
type FieldValue struct {
	mapping   *orderedmap.OrderedMap[string, json.RawMessage]
	raw       json.RawMessage
	markerKey string
	secret    string
	kind      FieldKind
}

// ClassifyField inspects a raw field value against the given marker key.
func ClassifyField(raw json.RawMessage, markerKey string) FieldValue {
	fv := FieldValue{kind: FieldScalar, raw: raw, markerKey: markerKey}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fv
	}

	mapping := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(trimmed, mapping); err != nil {
		return fv
	}

	fv.kind = FieldPlain
	fv.mapping = mapping

	if marker, ok := mapping.Get(markerKey); ok {
		if secret, ok := markerText(marker); ok {
			fv.kind = FieldSecret
			fv.secret = secret
		}
	}
	return fv
}

// Kind returns the classification.
func (f FieldValue) Kind() FieldKind {
	return f.kind
}

// IsSecret reports whether the field carries a secret.
func (f FieldValue) IsSecret() bool {
	return f.kind == FieldSecret
}

// IsMapping reports whether the field is an object.
func (f FieldValue) IsMapping() bool {
	return f.mapping != nil
}

// MarkerKey returns the marker key the field was classified with.
func (f FieldValue) MarkerKey() string {
	return f.markerKey
}

// Secret returns the stringified marker value. Empty unless IsSecret.
func (f FieldValue) Secret() string {
	return f.secret
}

// Raw returns the value as it was classified.
func (f FieldValue) Raw() json.RawMessage {
	return f.raw
}

// WithMarker returns the encoded mapping with its marker member set to value.
// Other members keep their order; a missing marker is appended.
func (f FieldValue) WithMarker(value string) (json.RawMessage, error) {
	if f.mapping == nil {
		return nil, ErrFieldNotMapping
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode marker value: %w", err)
	}
	f.mapping.Set(f.markerKey, encoded)

	out, err := json.Marshal(f.mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to encode field mapping: %w", err)
	}
	return out, nil
}

// markerText stringifies a marker value. null, "", false and 0 count as empty.
// Strings are taken as-is; anything else becomes its compact JSON text.
func markerText(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, s != ""
	case 'n', 'f':
		return "", false
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil || n == 0 {
			return "", false
		}
		return string(trimmed), true
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return string(trimmed), true
		}
		return buf.String(), true
	}
}
