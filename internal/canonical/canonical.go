// Package canonical produces the deterministic byte form of a valid Curation
// Metadata document, suitable as input to a content hash.
//
// The encoding is compact UTF-8 JSON. Object keys follow the field order
// declared by the document version's schema, sequences keep document order,
// absent, null and empty-sequence optional fields are omitted, and enum
// values are written as their string tags. HTML characters are not escaped.
package canonical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/curation/internal/validate"
	"github.com/mesh-intelligence/curation/pkg/types"
)

// Decoding errors.
var (
	ErrMalformedJSON = errors.New("malformed JSON document")
	ErrNotObject     = errors.New("document is not a JSON object")
)

// Encoder encodes documents that pass its validator.
type Encoder struct {
	validator *validate.Validator
}

// NewEncoder returns an Encoder that validates with v. A nil v uses the
// default validation options.
func NewEncoder(v *validate.Validator) *Encoder {
	if v == nil {
		v = validate.New(validate.Options{})
	}
	return &Encoder{validator: v}
}

var defaultEncoder = NewEncoder(nil)

// Encode encodes doc with the default validation options.
func Encode(doc map[string]any) ([]byte, error) {
	return defaultEncoder.Encode(doc)
}

// Encode validates doc and returns its canonical bytes. If doc has
// violations it returns an *types.InvalidDocumentError.
func (e *Encoder) Encode(doc map[string]any) ([]byte, error) {
	result := e.validator.Validate(doc)
	if !result.OK {
		return nil, &types.InvalidDocumentError{Result: result}
	}
	version, _ := doc[types.FieldVersion].(string)

	var buf bytes.Buffer
	if err := writeObject(&buf, validate.Schema(version), doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeMetadata encodes a typed document. It goes through the same
// validation and ordering as Encode.
func (e *Encoder) EncodeMetadata(m *types.CurationMetadata) ([]byte, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	doc, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return e.Encode(doc)
}

// Decode parses one JSON object into the map form the validator consumes.
// Trailing data after the object is an error.
func Decode(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedJSON)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return doc, nil
}

// DecodeMetadata parses canonical bytes into a typed document. It does not
// validate.
func DecodeMetadata(data []byte) (*types.CurationMetadata, error) {
	var m types.CurationMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return &m, nil
}

// writeObject writes the declared members of obj in schema order.
func writeObject(buf *bytes.Buffer, fields []validate.Field, obj map[string]any) error {
	buf.WriteByte('{')
	first := true
	for _, f := range fields {
		v, ok := obj[f.Name]
		if !ok || v == nil || isEmptyList(f, v) {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeString(buf, f.Name); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeValue(buf, f, v); err != nil {
			return fmt.Errorf("encode %s: %w", f.Name, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeValue(buf *bytes.Buffer, f validate.Field, v any) error {
	switch f.Kind {
	case validate.KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("unexpected %T", v)
		}
		return writeObject(buf, f.Elem, obj)
	case validate.KindObjectList, validate.KindStringList:
		items, ok := validate.AsList(v)
		if !ok {
			return fmt.Errorf("unexpected %T", v)
		}
		buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			var err error
			if f.Kind == validate.KindObjectList {
				obj, ok := item.(map[string]any)
				if !ok {
					return fmt.Errorf("unexpected %T at %d", item, i)
				}
				err = writeObject(buf, f.Elem, obj)
			} else {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("unexpected %T at %d", item, i)
				}
				err = writeString(buf, s)
			}
			if err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("unexpected %T", v)
		}
		return writeString(buf, s)
	}
}

// writeString writes s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

func isEmptyList(f validate.Field, v any) bool {
	if f.Kind != validate.KindObjectList && f.Kind != validate.KindStringList {
		return false
	}
	items, ok := validate.AsList(v)
	return ok && len(items) == 0
}
