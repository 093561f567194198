package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/curation/internal/format"
	"github.com/mesh-intelligence/curation/internal/registry"
	"github.com/mesh-intelligence/curation/pkg/types"
)

// fieldValidator checks single fields for one document version.
type fieldValidator struct {
	version string
	opts    Options
}

// validate checks one value against f. path names the value in violations.
// present is false when the key is missing; a JSON null counts as missing.
func (fv fieldValidator) validate(path string, f Field, value any, present bool) []Violation {
	if !present || value == nil {
		if f.Presence == Required {
			return []Violation{violation(path, types.CodeMissingRequiredField, "%s is required", path)}
		}
		return nil
	}

	switch f.Kind {
	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return []Violation{mismatch(path, "object", value)}
		}
		return fv.validateObject(path, f.Elem, obj)
	case KindObjectList:
		items, ok := AsList(value)
		if !ok {
			return []Violation{mismatch(path, "array", value)}
		}
		var out []Violation
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			obj, ok := item.(map[string]any)
			if !ok {
				out = append(out, mismatch(itemPath, "object", item))
				continue
			}
			out = append(out, fv.validateObject(itemPath, f.Elem, obj)...)
		}
		return out
	case KindStringList:
		items, ok := AsList(value)
		if !ok {
			return []Violation{mismatch(path, "array", value)}
		}
		var out []Violation
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			s, ok := item.(string)
			if !ok {
				out = append(out, mismatch(itemPath, "string", item))
				continue
			}
			if strings.TrimSpace(s) == "" {
				out = append(out, violation(itemPath, types.CodeInvalidFormat, "%s must not be blank", itemPath))
			}
		}
		return out
	}

	s, ok := value.(string)
	if !ok {
		return []Violation{mismatch(path, "string", value)}
	}
	return fv.validateString(path, f, s)
}

// validateString runs the checks of the scalar kinds, all of which are
// carried as JSON strings.
func (fv fieldValidator) validateString(path string, f Field, s string) []Violation {
	switch f.Kind {
	case KindVersion:
		if !registry.IsSupportedVersion(s) {
			return []Violation{violation(path, types.CodeUnsupportedVersion,
				"%s %q is not supported (supported: %s)", path, s, strings.Join(registry.Versions(), ", "))}
		}
	case KindString:
		if f.Presence == Required && strings.TrimSpace(s) == "" {
			return []Violation{violation(path, types.CodeMissingRequiredField, "%s must not be empty", path)}
		}
	case KindText:
		// Markdown is plain text here.
	case KindEnum:
		if !registry.IsMember(fv.version, f.Enum, s) {
			return []Violation{violation(path, types.CodeUnknownEnumValue,
				"%s %q is not one of %s", path, s, strings.Join(registry.Members(fv.version, f.Enum), ", "))}
		}
	case KindLocale:
		err := format.ValidateLocale(s)
		if err == nil && fv.opts.Locales != nil {
			err = fv.opts.Locales.LookupLocale(s)
		}
		if err != nil {
			return []Violation{violation(path, types.CodeInvalidFormat, "%s: %v", path, err)}
		}
	case KindURL:
		if err := format.ValidateURL(s); err != nil {
			return []Violation{violation(path, types.CodeInvalidFormat, "%s: %v", path, err)}
		}
	case KindMime:
		if err := fv.checkMime(s); err != nil {
			return []Violation{violation(path, types.CodeInvalidFormat, "%s: %v", path, err)}
		}
	case KindMediaType:
		if registry.IsMember(fv.version, registry.FieldCurationType, s) {
			return nil
		}
		if err := fv.checkMime(s); err != nil {
			return []Violation{violation(path, types.CodeInvalidFormat,
				"%s: %v and not a curation type tag", path, err)}
		}
	}
	return nil
}

func (fv fieldValidator) checkMime(s string) error {
	if err := format.ValidateMime(s); err != nil {
		return err
	}
	if fv.opts.Mimes != nil {
		return fv.opts.Mimes.LookupMime(s)
	}
	return nil
}

// validateObject checks the declared members of obj in schema order, then
// reports undeclared keys in sorted order.
func (fv fieldValidator) validateObject(path string, fields []Field, obj map[string]any) []Violation {
	var out []Violation
	for _, f := range fields {
		v, present := obj[f.Name]
		out = append(out, fv.validate(path+"."+f.Name, f, v, present)...)
	}
	return append(out, unknownFields(path+".", fields, obj)...)
}

// unknownFields reports keys of obj not declared in fields.
func unknownFields(prefix string, fields []Field, obj map[string]any) []Violation {
	var unknown []string
	for k := range obj {
		if _, ok := lookupField(fields, k); !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	out := make([]Violation, 0, len(unknown))
	for _, k := range unknown {
		out = append(out, violation(prefix+k, types.CodeUnknownField, "%s is not a field of this schema", prefix+k))
	}
	return out
}

// AsList returns v as a sequence if it has one of the shapes a decoded
// document can carry: []any, []string or []map[string]any.
func AsList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// Violation is a single validation finding.
type Violation = types.Violation

func violation(field string, code types.ViolationCode, msg string, args ...any) Violation {
	return Violation{Field: field, Code: code, Message: fmt.Sprintf(msg, args...)}
}

func mismatch(path, want string, got any) Violation {
	return violation(path, types.CodeTypeMismatch, "%s must be %s, got %s", path, article(want), describe(got))
}

func article(kind string) string {
	if kind == "array" || kind == "object" {
		return "an " + kind
	}
	return "a " + kind
}

// describe names the JSON type of a decoded value.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any, []string, []map[string]any:
		return "array"
	case float64, float32, int, int64, int32, uint, uint64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
