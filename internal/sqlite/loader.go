package sqlite

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/curation/internal/address"
	"github.com/mesh-intelligence/curation/internal/canonical"
)

// loadDocuments reads documents.jsonl and inserts every record whose
// canonical bytes still validate, re-encode to themselves and hash to the
// stored address. Other records are skipped and logged. Loading is
// transactional: all inserts commit or none do.
func loadDocuments(db *sql.DB, dataDir string, log *zap.Logger) (int, error) {
	path := filepath.Join(dataDir, documentsJSONL)
	records, malformed, err := readJSONL(path)
	if err != nil {
		return 0, err
	}
	if malformed > 0 {
		log.Warn("skipped malformed catalog lines", zap.String("file", path), zap.Int("count", malformed))
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertDocumentSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	loaded := 0
	for i, raw := range records {
		var rec documentJSON
		if err := json.Unmarshal(raw, &rec); err != nil {
			log.Warn("skipped unreadable catalog record", zap.Int("line", i+1), zap.Error(err))
			continue
		}
		row, err := verifyRecord(rec)
		if err != nil {
			log.Warn("skipped catalog record", zap.Int("line", i+1), zap.String("address", rec.Address), zap.Error(err))
			continue
		}
		if _, err := stmt.Exec(row.args()...); err != nil {
			log.Warn("skipped conflicting catalog record", zap.Int("line", i+1), zap.String("address", rec.Address), zap.Error(err))
			continue
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// verifyRecord checks a stored record and derives its queryable columns.
func verifyRecord(rec documentJSON) (documentRow, error) {
	if rec.RecordID == "" {
		return documentRow{}, fmt.Errorf("missing record_id")
	}
	doc, err := canonical.Decode(rec.Canonical)
	if err != nil {
		return documentRow{}, err
	}
	encoded, err := canonical.Encode(doc)
	if err != nil {
		return documentRow{}, err
	}
	if !bytes.Equal(encoded, rec.Canonical) {
		return documentRow{}, fmt.Errorf("stored bytes are not canonical")
	}
	if got := address.Of(encoded); got != rec.Address {
		return documentRow{}, fmt.Errorf("address mismatch: computed %s", got)
	}
	return newDocumentRow(rec.RecordID, rec.Address, rec.CreatedAt, encoded)
}
