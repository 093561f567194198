// Package registry holds the closed value sets of the enumerated Curation
// Metadata fields, keyed by metadata version and field name.
//
// Tables are built once at package initialization and are read-only after
// that, so lookups are safe from any number of goroutines.
package registry

import (
	"slices"
	"sort"

	"github.com/mesh-intelligence/curation/pkg/types"
)

// Enumerated field names. Nested fields use their own wire name.
const (
	FieldCurationType     = types.FieldCurationType
	FieldMainContentFocus = types.FieldMainContentFocus
	FieldContentWarning   = types.FieldContentWarning
	FieldDisplayType      = types.FieldAttrDisplayType
)

type key struct {
	version string
	field   string
}

// tables maps (version, field) to the closed set of members.
var tables = map[key]map[string]bool{}

// versions lists registered versions in registration order; the last one is
// the latest.
var versions []string

func init() {
	register(types.Version1_0_0, map[string][]string{
		FieldCurationType: {
			string(types.CurationTypeProfile),
			string(types.CurationTypeContentOnly),
			string(types.CurationTypeCombined),
			string(types.CurationTypePortfolio),
			string(types.CurationTypeFeed),
			string(types.CurationTypeDapp),
		},
		FieldMainContentFocus: {
			string(types.FocusVideo),
			string(types.FocusImage),
			string(types.FocusArticle),
			string(types.FocusTextOnly),
			string(types.FocusAudio),
			string(types.FocusLink),
			string(types.FocusEmbed),
		},
		FieldContentWarning: {
			string(types.WarningNSFW),
			string(types.WarningSensitive),
			string(types.WarningSpoiler),
		},
		FieldDisplayType: {
			string(types.DisplayNumber),
			string(types.DisplayString),
			string(types.DisplayDate),
		},
	})
}

// register adds a version with its own copies of every field set. A later
// version never shares a set with an earlier one.
func register(version types.MetadataVersion, fields map[string][]string) {
	v := string(version)
	if slices.Contains(versions, v) {
		panic("registry: version registered twice: " + v)
	}
	for field, members := range fields {
		set := make(map[string]bool, len(members))
		for _, m := range members {
			set[m] = true
		}
		tables[key{version: v, field: field}] = set
	}
	versions = append(versions, v)
}

// Versions returns the supported metadata versions, oldest first.
func Versions() []string {
	return slices.Clone(versions)
}

// Latest returns the newest supported metadata version.
func Latest() string {
	return versions[len(versions)-1]
}

// IsSupportedVersion reports whether version is registered.
func IsSupportedVersion(version string) bool {
	return slices.Contains(versions, version)
}

// IsEnumField reports whether field is enumerated in the given version.
func IsEnumField(version, field string) bool {
	_, ok := tables[key{version: version, field: field}]
	return ok
}

// Members returns the sorted members of field in version. It returns nil if
// the version is unsupported or the field is not enumerated.
func Members(version, field string) []string {
	set, ok := tables[key{version: version, field: field}]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// IsMember reports whether value belongs to the closed set of field in
// version. Matching is exact and case-sensitive.
func IsMember(version, field, value string) bool {
	return tables[key{version: version, field: field}][value]
}
