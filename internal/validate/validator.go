package validate

import (
	"github.com/mesh-intelligence/curation/internal/format"
	"github.com/mesh-intelligence/curation/pkg/types"
)

// Options adjusts a Validator. The zero value checks shapes only and runs
// the standard cross-field rules.
type Options struct {
	// Locales, when set, resolves well-formed locales against a reference
	// table. A failed lookup is an InvalidFormat violation.
	Locales format.LocaleLookup

	// Mimes, when set, resolves well-formed MIME types against a reference
	// table. A failed lookup is an InvalidFormat violation.
	Mimes format.MimeLookup

	// FocusRules enables the checks that tie mainContentFocus to the assets
	// it is presented with.
	FocusRules bool
}

// Validator validates Curation Metadata documents. It holds no state beyond
// its options and is safe for concurrent use.
type Validator struct {
	opts Options
}

// New returns a Validator with the given options.
func New(opts Options) *Validator {
	return &Validator{opts: opts}
}

// Strict returns a Validator that resolves locales with the x/text language
// tables and MIME types with the mimetype registry.
func Strict(focusRules bool) *Validator {
	return New(Options{
		Locales:    format.LanguageLookup{},
		Mimes:      format.MimetypeLookup{},
		FocusRules: focusRules,
	})
}

var defaultValidator = New(Options{})

// Validate checks doc with the default options.
func Validate(doc map[string]any) types.ValidationResult {
	return defaultValidator.Validate(doc)
}

// Validate checks every declared field of doc, reports undeclared fields,
// then applies the cross-field rules. It always returns the complete set of
// violations. A nil doc is treated as an empty object.
func (v *Validator) Validate(doc map[string]any) types.ValidationResult {
	version := effectiveVersion(doc)
	fields := Schema(version)
	fv := fieldValidator{version: version, opts: v.opts}

	var out []Violation
	for _, f := range fields {
		value, present := doc[f.Name]
		out = append(out, fv.validate(f.Name, f, value, present)...)
	}
	out = append(out, unknownFields("", fields, doc)...)
	out = append(out, v.CrossCheck(doc)...)
	return types.NewValidationResult(out)
}

// ValidateField checks a single top-level field in isolation. present is
// false when the field is absent from the document. Unknown field names
// yield one UnknownField violation.
func (v *Validator) ValidateField(version, name string, value any, present bool) []Violation {
	fields := Schema(version)
	if fields == nil {
		return []Violation{violation(types.FieldVersion, types.CodeUnsupportedVersion,
			"version %q is not supported", version)}
	}
	f, ok := lookupField(fields, name)
	if !ok {
		if !present {
			return nil
		}
		return []Violation{violation(name, types.CodeUnknownField, "%s is not a field of this schema", name)}
	}
	fv := fieldValidator{version: version, opts: v.opts}
	return fv.validate(name, f, value, present)
}

// CrossCheck applies only the cross-field rules to doc.
func (v *Validator) CrossCheck(doc map[string]any) []Violation {
	var out []Violation
	for _, rule := range crossRules {
		out = append(out, rule(doc)...)
	}
	if v.opts.FocusRules {
		for _, rule := range focusRules {
			out = append(out, rule(doc)...)
		}
	}
	return out
}
