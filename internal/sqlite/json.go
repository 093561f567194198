package sqlite

import "encoding/json"

// documentsJSONL is the data file holding one record per line.
const documentsJSONL = "documents.jsonl"

// documentJSON represents a record in documents.jsonl. Only the canonical
// bytes and the bookkeeping fields are stored; every queryable column is
// derived from Canonical when the file is loaded.
type documentJSON struct {
	RecordID  string          `json:"record_id"`
	Address   string          `json:"address"`
	CreatedAt string          `json:"created_at"`
	Canonical json.RawMessage `json:"canonical"`
}
