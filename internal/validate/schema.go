// Package validate checks raw Curation Metadata documents against the closed
// schema of their declared version and collects every violation found.
//
// A document is the map produced by decoding a JSON object with
// encoding/json. Validation never stops at the first problem: field checks,
// unknown-field checks and cross-field rules all run, so a producer can fix
// a document in one pass.
package validate

import (
	"github.com/mesh-intelligence/curation/internal/registry"
	"github.com/mesh-intelligence/curation/pkg/types"
)

// Kind is the declared shape of a field value.
type Kind int

// Field kinds.
const (
	KindVersion    Kind = iota // metadata version tag
	KindString                 // plain string
	KindText                   // markdown-flavored text, treated as plain text
	KindEnum                   // member of a registry set
	KindLocale                 // BCP-47 language[-REGION]
	KindURL                    // absolute URL
	KindMime                   // MIME type
	KindMediaType              // MIME type or CurationType tag
	KindStringList             // sequence of non-blank strings
	KindObject                 // closed object
	KindObjectList             // sequence of closed objects
)

// Presence says how a field's absence is judged.
type Presence int

// Presence values.
const (
	Optional Presence = iota
	Required
	// Conditional fields are optional to the field validator; a cross-field
	// rule decides whether their absence is a violation.
	Conditional
)

// Field describes one key of a closed object. Fields are listed in the
// canonical order of their version.
type Field struct {
	Name     string
	Kind     Kind
	Presence Presence
	Enum     string  // registry field for KindEnum
	Elem     []Field // members of KindObject and KindObjectList elements
}

var mediaFields = []Field{
	{Name: types.FieldMediaItem, Kind: KindURL, Presence: Required},
	{Name: types.FieldMediaType, Kind: KindMediaType},
	{Name: types.FieldMediaAltTag, Kind: KindString},
	{Name: types.FieldMediaCover, Kind: KindURL},
}

var attributeFields = []Field{
	{Name: types.FieldAttrDisplayType, Kind: KindEnum, Enum: registry.FieldDisplayType},
	{Name: types.FieldAttrTraitType, Kind: KindString},
	{Name: types.FieldAttrValue, Kind: KindString, Presence: Required},
}

var nftAddressFields = []Field{
	{Name: types.FieldContractAddress, Kind: KindString, Presence: Conditional},
	{Name: types.FieldTokenID, Kind: KindString, Presence: Conditional},
}

var schemaV1 = []Field{
	{Name: types.FieldVersion, Kind: KindVersion, Presence: Required},
	{Name: types.FieldCurationType, Kind: KindEnum, Presence: Required, Enum: registry.FieldCurationType},
	{Name: types.FieldMetadataID, Kind: KindString, Presence: Required},
	{Name: types.FieldDescription, Kind: KindText},
	{Name: types.FieldContent, Kind: KindText, Presence: Conditional},
	{Name: types.FieldLocale, Kind: KindLocale, Presence: Required},
	{Name: types.FieldTags, Kind: KindStringList},
	{Name: types.FieldContentWarning, Kind: KindEnum, Enum: registry.FieldContentWarning},
	{Name: types.FieldMainContentFocus, Kind: KindEnum, Presence: Required, Enum: registry.FieldMainContentFocus},
	{Name: types.FieldExternalURL, Kind: KindURL},
	{Name: types.FieldOracleURL, Kind: KindURL},
	{Name: types.FieldName, Kind: KindString, Presence: Required},
	{Name: types.FieldAttributes, Kind: KindObjectList, Elem: attributeFields},
	{Name: types.FieldImage, Kind: KindURL},
	{Name: types.FieldImageMimeType, Kind: KindMime},
	{Name: types.FieldMedia, Kind: KindObjectList, Elem: mediaFields},
	{Name: types.FieldAnimationURL, Kind: KindURL},
	{Name: types.FieldFromNFT, Kind: KindObject, Elem: nftAddressFields},
}

// schemas maps each supported version to its top-level fields.
var schemas = map[string][]Field{
	string(types.Version1_0_0): schemaV1,
}

// Schema returns the top-level fields of version in canonical order, or nil
// if the version has no schema.
func Schema(version string) []Field {
	return schemas[version]
}

// lookupField returns the field named name in fields.
func lookupField(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// effectiveVersion returns the version whose tables judge doc: the declared
// version when supported, otherwise the latest one.
func effectiveVersion(doc map[string]any) string {
	if v, ok := doc[types.FieldVersion].(string); ok && registry.IsSupportedVersion(v) {
		return v
	}
	return registry.Latest()
}
