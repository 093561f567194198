package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/curation/internal/address"
	"github.com/mesh-intelligence/curation/internal/canonical"
)

func TestReadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")
	content := "{\"a\":1}\n\n{not json}\n{\"b\":2}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, skipped, err := readJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"a":1}`, string(records[0]))
	assert.JSONEq(t, `{"b":2}`, string(records[1]))
}

func TestReadJSONLMissingFile(t *testing.T) {
	_, _, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}

func TestWriteJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	records := []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"b":2}`)}
	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestEnsureJSONLKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), documentsJSONL)
	require.NoError(t, ensureJSONL(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	require.NoError(t, ensureJSONL(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func recordLine(t *testing.T, id, addr string, canon []byte) string {
	t.Helper()
	line, err := json.Marshal(documentJSON{
		RecordID:  id,
		Address:   addr,
		CreatedAt: "2026-01-02T03:04:05.000000000Z",
		Canonical: json.RawMessage(canon),
	})
	require.NoError(t, err)
	return string(line)
}

func TestLoadSkipsBadRecords(t *testing.T) {
	dir := t.TempDir()

	good, err := canonical.Encode(sampleDoc("good"))
	require.NoError(t, err)
	other, err := canonical.Encode(sampleDoc("other"))
	require.NoError(t, err)

	invalid := []byte(`{"version":"1.0.0","curation_type":"CONTENT_ONLY","metadata_id":"x","locale":"en-US","mainContentFocus":"TEXT_ONLY","name":"n"}`)
	reordered := []byte(`{"curation_type":"CONTENT_ONLY","version":"1.0.0","metadata_id":"other","content":"world","locale":"en-US","mainContentFocus":"TEXT_ONLY","name":"Hello"}`)

	lines := []string{
		recordLine(t, "r1", address.Of(good), good),
		"{truncated",
		recordLine(t, "r2", address.Of(other)[:20], other),                  // wrong address
		recordLine(t, "r3", address.Of(invalid), invalid),                   // no content or media
		recordLine(t, "r4", address.Of(reordered), reordered),               // not canonical
		recordLine(t, "", address.Of(other), other),                         // no record id
		recordLine(t, "r5", address.Of(good), good),                         // duplicate address
		`{"record_id":"r6","address":"x","created_at":"y","canonical":[1]}`, // not an object
	}
	path := filepath.Join(dir, documentsJSONL)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	b := attached(t, dir)
	recs, err := b.Fetch(nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "r1", recs[0].RecordID)
	assert.Equal(t, "good", recs[0].MetadataID)
	assert.Equal(t, 2026, recs[0].CreatedAt.Year())
}

func TestVerifyRecordBadTimestamp(t *testing.T) {
	good, err := canonical.Encode(sampleDoc("good"))
	require.NoError(t, err)

	_, err = verifyRecord(documentJSON{
		RecordID:  "r1",
		Address:   address.Of(good),
		CreatedAt: "yesterday",
		Canonical: good,
	})
	assert.Error(t, err)
}
