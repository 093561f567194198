package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/curation/pkg/types"
)

func TestVersions(t *testing.T) {
	assert.Equal(t, []string{"1.0.0"}, Versions())
	assert.Equal(t, "1.0.0", Latest())
	assert.True(t, IsSupportedVersion("1.0.0"))
	assert.False(t, IsSupportedVersion("1.0"))
	assert.False(t, IsSupportedVersion("2.0.0"))
	assert.False(t, IsSupportedVersion(""))
}

func TestVersionsReturnsCopy(t *testing.T) {
	v := Versions()
	v[0] = "tampered"
	assert.Equal(t, "1.0.0", Latest())
}

func TestMembers(t *testing.T) {
	tests := []struct {
		field string
		want  []string
	}{
		{FieldCurationType, []string{"COMBINED", "CONTENT_ONLY", "DAPP", "FEED", "PROFILE", "PROTFOLIO"}},
		{FieldMainContentFocus, []string{"ARTICLE", "AUDIO", "EMBED", "IMAGE", "LINK", "TEXT_ONLY", "VIDEO"}},
		{FieldContentWarning, []string{"NSFW", "SENSITIVE", "SPOILER"}},
		{FieldDisplayType, []string{"date", "number", "string"}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, Members("1.0.0", tt.field))
			assert.True(t, IsEnumField("1.0.0", tt.field))
		})
	}
}

func TestMembersUnknown(t *testing.T) {
	assert.Nil(t, Members("9.9.9", FieldCurationType))
	assert.Nil(t, Members("1.0.0", types.FieldName))
	assert.False(t, IsEnumField("1.0.0", types.FieldLocale))
}

func TestIsMember(t *testing.T) {
	assert.True(t, IsMember("1.0.0", FieldCurationType, "PROTFOLIO"))
	assert.False(t, IsMember("1.0.0", FieldCurationType, "PORTFOLIO"))
	assert.False(t, IsMember("1.0.0", FieldCurationType, "profile"), "matching is case-sensitive")
	assert.True(t, IsMember("1.0.0", FieldDisplayType, "date"))
	assert.False(t, IsMember("2.0.0", FieldDisplayType, "date"))
}

func TestMembersMutationDoesNotLeak(t *testing.T) {
	m := Members("1.0.0", FieldContentWarning)
	require.NotEmpty(t, m)
	m[0] = "HACKED"
	assert.False(t, IsMember("1.0.0", FieldContentWarning, "HACKED"))
}

func TestRegisterIsolatesVersions(t *testing.T) {
	// Registering a new version must not change the sets of an older one.
	saved := Versions()
	t.Cleanup(func() {
		delete(tables, key{version: "1.1.0", field: FieldContentWarning})
		versions = saved
	})

	register("1.1.0", map[string][]string{
		FieldContentWarning: {"NSFW", "SENSITIVE", "SPOILER", "GORE"},
	})

	assert.True(t, IsMember("1.1.0", FieldContentWarning, "GORE"))
	assert.False(t, IsMember("1.0.0", FieldContentWarning, "GORE"))
	assert.Equal(t, "1.1.0", Latest())
	assert.Panics(t, func() { register("1.1.0", nil) })
}
