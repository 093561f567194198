// Package curation is the public entry point for validating and canonically
// encoding Curation Metadata documents.
//
// A document is handled in the map form produced by decoding JSON:
//
//	doc, err := curation.Decode(data)
//	if err != nil { ... }
//	if res := curation.Validate(doc); !res.OK { ... }
//	canon, err := curation.Encode(doc)
//	addr := curation.Address(canon)
package curation

import (
	"github.com/mesh-intelligence/curation/internal/address"
	"github.com/mesh-intelligence/curation/internal/canonical"
	"github.com/mesh-intelligence/curation/internal/format"
	"github.com/mesh-intelligence/curation/internal/validate"
	"github.com/mesh-intelligence/curation/pkg/types"
)

// Options selects optional checks. The zero value checks shapes only.
type Options struct {
	// StrictReferences resolves locales and MIME types against reference
	// tables instead of checking their shape alone.
	StrictReferences bool

	// FocusRules requires the assets implied by mainContentFocus.
	FocusRules bool
}

// Codec validates and encodes documents with a fixed set of Options. It is
// safe for concurrent use.
type Codec struct {
	validator *validate.Validator
	encoder   *canonical.Encoder
}

// New returns a Codec for opts.
func New(opts Options) *Codec {
	vo := validate.Options{FocusRules: opts.FocusRules}
	if opts.StrictReferences {
		vo.Locales = format.LanguageLookup{}
		vo.Mimes = format.MimetypeLookup{}
	}
	v := validate.New(vo)
	return &Codec{validator: v, encoder: canonical.NewEncoder(v)}
}

// Validate returns every violation in doc.
func (c *Codec) Validate(doc map[string]any) types.ValidationResult {
	return c.validator.Validate(doc)
}

// Encode returns the canonical bytes of doc, or an *types.InvalidDocumentError.
func (c *Codec) Encode(doc map[string]any) ([]byte, error) {
	return c.encoder.Encode(doc)
}

// EncodeMetadata encodes a typed document through the same path as Encode.
func (c *Codec) EncodeMetadata(m *types.CurationMetadata) ([]byte, error) {
	return c.encoder.EncodeMetadata(m)
}

var defaultCodec = New(Options{})

// Validate checks doc with the default options.
func Validate(doc map[string]any) types.ValidationResult { return defaultCodec.Validate(doc) }

// Encode encodes doc with the default options.
func Encode(doc map[string]any) ([]byte, error) { return defaultCodec.Encode(doc) }

// Decode parses one JSON object.
func Decode(data []byte) (map[string]any, error) { return canonical.Decode(data) }

// Address returns the content address of canonical bytes.
func Address(canonicalBytes []byte) string { return address.Of(canonicalBytes) }
