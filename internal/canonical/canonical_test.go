package canonical

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/curation/internal/validate"
	"github.com/mesh-intelligence/curation/pkg/types"
)

const minimalJSON = `{
	"version": "1.0.0",
	"curation_type": "CONTENT_ONLY",
	"metadata_id": "abc",
	"locale": "en-US",
	"mainContentFocus": "TEXT_ONLY",
	"name": "Hello",
	"content": "world"
}`

const fullJSON = `{
	"version": "1.0.0",
	"curation_type": "COMBINED",
	"metadata_id": "0190c5d2-9a4e-7c1b-8f2a-3d4e5f6a7b8c",
	"description": "A **jazz** playlist & more <3",
	"content": "Side A",
	"locale": "it-IT",
	"tags": ["jazz", "vinyl", "1959"],
	"contentWarning": "SENSITIVE",
	"mainContentFocus": "AUDIO",
	"external_url": "https://example.com/c/1",
	"oracle_url": "https://oracle.example.com/c/1",
	"name": "Kind of Blue",
	"attributes": [
		{"value": "5", "traitType": "Tracks", "displayType": "number"},
		{"value": "Modal"}
	],
	"image": "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
	"imageMimeType": "image/png",
	"media": [
		{"cover": "https://example.com/cover.jpg", "item": "ipfs://QmTrack1", "type": "audio/mpeg"},
		{"item": "ipfs://QmTrack2", "altTag": "So What"}
	],
	"animation_url": "https://example.com/player.html",
	"FromNFT": {"tokenId": "42", "contractAddress": "0xabc"}
}`

// reorderedFullJSON is fullJSON with every object's keys in a different
// order; arrays are unchanged.
const reorderedFullJSON = `{
	"FromNFT": {"contractAddress": "0xabc", "tokenId": "42"},
	"animation_url": "https://example.com/player.html",
	"media": [
		{"type": "audio/mpeg", "item": "ipfs://QmTrack1", "cover": "https://example.com/cover.jpg"},
		{"altTag": "So What", "item": "ipfs://QmTrack2"}
	],
	"imageMimeType": "image/png",
	"image": "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
	"attributes": [
		{"displayType": "number", "traitType": "Tracks", "value": "5"},
		{"value": "Modal"}
	],
	"name": "Kind of Blue",
	"oracle_url": "https://oracle.example.com/c/1",
	"external_url": "https://example.com/c/1",
	"mainContentFocus": "AUDIO",
	"contentWarning": "SENSITIVE",
	"tags": ["jazz", "vinyl", "1959"],
	"locale": "it-IT",
	"content": "Side A",
	"description": "A **jazz** playlist & more <3",
	"metadata_id": "0190c5d2-9a4e-7c1b-8f2a-3d4e5f6a7b8c",
	"curation_type": "COMBINED",
	"version": "1.0.0"
}`

func mustDecode(t *testing.T, s string) map[string]any {
	t.Helper()
	doc, err := Decode([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestEncodeMinimal(t *testing.T) {
	out, err := Encode(mustDecode(t, minimalJSON))
	require.NoError(t, err)
	assert.Equal(t,
		`{"version":"1.0.0","curation_type":"CONTENT_ONLY","metadata_id":"abc","content":"world",`+
			`"locale":"en-US","mainContentFocus":"TEXT_ONLY","name":"Hello"}`,
		string(out))
}

func TestEncodeFull(t *testing.T) {
	out, err := Encode(mustDecode(t, fullJSON))
	require.NoError(t, err)
	assert.Equal(t,
		`{"version":"1.0.0","curation_type":"COMBINED","metadata_id":"0190c5d2-9a4e-7c1b-8f2a-3d4e5f6a7b8c",`+
			`"description":"A **jazz** playlist & more <3","content":"Side A","locale":"it-IT",`+
			`"tags":["jazz","vinyl","1959"],"contentWarning":"SENSITIVE","mainContentFocus":"AUDIO",`+
			`"external_url":"https://example.com/c/1","oracle_url":"https://oracle.example.com/c/1",`+
			`"name":"Kind of Blue",`+
			`"attributes":[{"displayType":"number","traitType":"Tracks","value":"5"},{"value":"Modal"}],`+
			`"image":"ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG","imageMimeType":"image/png",`+
			`"media":[{"item":"ipfs://QmTrack1","type":"audio/mpeg","cover":"https://example.com/cover.jpg"},`+
			`{"item":"ipfs://QmTrack2","altTag":"So What"}],`+
			`"animation_url":"https://example.com/player.html",`+
			`"FromNFT":{"contractAddress":"0xabc","tokenId":"42"}}`,
		string(out))
}

func TestEncodeDeterministic(t *testing.T) {
	doc := mustDecode(t, fullJSON)
	first, err := Encode(doc)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Encode(doc)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncodeIgnoresKeyOrder(t *testing.T) {
	a, err := Encode(mustDecode(t, fullJSON))
	require.NoError(t, err)
	b, err := Encode(mustDecode(t, reorderedFullJSON))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestEncodeArrayOrderIsSignificant(t *testing.T) {
	doc := mustDecode(t, minimalJSON)
	doc["tags"] = []any{"b", "a"}
	ba, err := Encode(doc)
	require.NoError(t, err)

	doc["tags"] = []any{"a", "b"}
	ab, err := Encode(doc)
	require.NoError(t, err)

	assert.NotEqual(t, ab, ba)
	assert.Contains(t, string(ba), `"tags":["b","a"]`)
}

func TestEncodeOmitsAbsentNullAndEmpty(t *testing.T) {
	want, err := Encode(mustDecode(t, minimalJSON))
	require.NoError(t, err)

	doc := mustDecode(t, minimalJSON)
	doc["description"] = nil
	doc["FromNFT"] = nil
	doc["tags"] = []any{}
	doc["attributes"] = []any{}
	doc["media"] = []any{}
	got, err := Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	doc = mustDecode(t, minimalJSON)
	doc["media"] = []any{map[string]any{"item": "https://example.com/a.mp4", "type": nil, "altTag": nil}}
	got, err = Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"media":[{"item":"https://example.com/a.mp4"}]`)
}

func TestEncodeKeepsEmptyStrings(t *testing.T) {
	doc := mustDecode(t, minimalJSON)
	doc["description"] = ""
	out, err := Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"description":""`)
}

func TestEncodeDoesNotTrim(t *testing.T) {
	doc := mustDecode(t, minimalJSON)
	doc["name"] = "  Hello  "
	out, err := Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"name":"  Hello  "`)
}

func TestEncodeEscaping(t *testing.T) {
	doc := mustDecode(t, minimalJSON)
	doc["content"] = "line1\nline2 \"quoted\" <b>&</b> ✓"
	out, err := Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"content":"line1\nline2 \"quoted\" <b>&</b> ✓"`)
}

func TestEncodeRejectsInvalid(t *testing.T) {
	doc := mustDecode(t, minimalJSON)
	delete(doc, "content")
	doc["locale"] = "english"

	out, err := Encode(doc)
	assert.Nil(t, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidDocument))

	var ide *types.InvalidDocumentError
	require.True(t, errors.As(err, &ide))
	assert.Equal(t,
		[]types.ViolationCode{types.CodeInvalidFormat, types.CodeMissingContentOrMedia},
		ide.Result.Codes())
}

func TestEncoderUsesItsValidator(t *testing.T) {
	doc := mustDecode(t, minimalJSON)
	doc["mainContentFocus"] = "EMBED"

	_, err := Encode(doc)
	require.NoError(t, err)

	_, err = NewEncoder(validate.New(validate.Options{FocusRules: true})).Encode(doc)
	assert.ErrorIs(t, err, types.ErrInvalidDocument)
}

func TestRoundTrip(t *testing.T) {
	for name, src := range map[string]string{"minimal": minimalJSON, "full": fullJSON} {
		t.Run(name, func(t *testing.T) {
			doc := mustDecode(t, src)
			before := validate.Validate(doc)
			require.True(t, before.OK)

			out, err := Encode(doc)
			require.NoError(t, err)

			decoded, err := Decode(out)
			require.NoError(t, err)
			assert.Equal(t, before, validate.Validate(decoded))

			again, err := Encode(decoded)
			require.NoError(t, err)
			assert.Equal(t, out, again, "canonical bytes are a fixed point")
		})
	}
}

func TestEncodeMetadata(t *testing.T) {
	warning := types.WarningSensitive
	number := types.DisplayNumber
	m := &types.CurationMetadata{
		Version:          types.Version1_0_0,
		CurationType:     types.CurationTypeCombined,
		MetadataID:       "0190c5d2-9a4e-7c1b-8f2a-3d4e5f6a7b8c",
		Description:      types.String("A **jazz** playlist & more <3"),
		Content:          types.String("Side A"),
		Locale:           "it-IT",
		Tags:             []string{"jazz", "vinyl", "1959"},
		ContentWarning:   &warning,
		MainContentFocus: types.FocusAudio,
		ExternalURL:      types.String("https://example.com/c/1"),
		OracleURL:        types.String("https://oracle.example.com/c/1"),
		Name:             "Kind of Blue",
		Attributes: []types.MetadataAttribute{
			{DisplayType: &number, TraitType: types.String("Tracks"), Value: "5"},
			{Value: "Modal"},
		},
		Image:         types.String("ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"),
		ImageMimeType: types.String("image/png"),
		Media: []types.MetadataMedia{
			{Item: "ipfs://QmTrack1", Type: types.String("audio/mpeg"), Cover: types.String("https://example.com/cover.jpg")},
			{Item: "ipfs://QmTrack2", AltTag: types.String("So What")},
		},
		AnimationURL: types.String("https://example.com/player.html"),
		FromNFT:      &types.NFTAddress{ContractAddress: "0xabc", TokenID: "42"},
	}

	typed, err := defaultEncoder.EncodeMetadata(m)
	require.NoError(t, err)
	fromMap, err := Encode(mustDecode(t, fullJSON))
	require.NoError(t, err)
	assert.Equal(t, string(fromMap), string(typed))

	back, err := DecodeMetadata(typed)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestEncodeMetadataInvalid(t *testing.T) {
	_, err := defaultEncoder.EncodeMetadata(&types.CurationMetadata{
		Version:          types.Version1_0_0,
		CurationType:     types.CurationTypeProfile,
		MetadataID:       "id",
		Locale:           "en",
		MainContentFocus: types.FocusTextOnly,
		Name:             "n",
	})
	var ide *types.InvalidDocumentError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, []types.ViolationCode{types.CodeMissingContentOrMedia}, ide.Result.Codes())
}

func TestDecode(t *testing.T) {
	_, err := Decode([]byte(`{"version":`))
	assert.ErrorIs(t, err, ErrMalformedJSON)

	_, err = Decode([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Decode([]byte(`{"a":1} {"b":2}`))
	assert.ErrorIs(t, err, ErrMalformedJSON)

	doc, err := Decode([]byte("  {\"a\": null}\n"))
	require.NoError(t, err)
	assert.Contains(t, doc, "a")
	assert.Nil(t, doc["a"])
}
