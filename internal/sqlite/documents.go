package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curation/internal/address"
	"github.com/mesh-intelligence/curation/internal/canonical"
	"github.com/mesh-intelligence/curation/pkg/types"
)

// timestampFormat keeps created_at fixed-width so it sorts as text.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

const insertDocumentSQL = "INSERT INTO documents (" + documentColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

// documentRow is one row of the documents table.
type documentRow struct {
	types.Record
	createdAt string
}

// newDocumentRow derives the queryable columns from canonical bytes.
func newDocumentRow(recordID, addr, createdAt string, canon []byte) (documentRow, error) {
	m, err := canonical.DecodeMetadata(canon)
	if err != nil {
		return documentRow{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return documentRow{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return documentRow{
		Record: types.Record{
			RecordID:         recordID,
			Address:          addr,
			MetadataID:       m.MetadataID,
			Version:          m.Version,
			CurationType:     m.CurationType,
			MainContentFocus: m.MainContentFocus,
			Locale:           m.Locale,
			Name:             m.Name,
			Canonical:        json.RawMessage(canon),
			CreatedAt:        ts,
		},
		createdAt: createdAt,
	}, nil
}

// args returns the row values in documentColumns order.
func (r documentRow) args() []any {
	return []any{
		r.RecordID, r.Address, r.MetadataID, string(r.Version), string(r.CurationType),
		string(r.MainContentFocus), r.Locale, r.Name, string(r.Canonical), r.createdAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (*types.Record, error) {
	var (
		r                            types.Record
		version, curationType, focus string
		canon, createdAt             string
	)
	if err := s.Scan(&r.RecordID, &r.Address, &r.MetadataID, &version, &curationType,
		&focus, &r.Locale, &r.Name, &canon, &createdAt); err != nil {
		return nil, err
	}
	r.Version = types.MetadataVersion(version)
	r.CurationType = types.CurationType(curationType)
	r.MainContentFocus = types.MainFocus(focus)
	r.Canonical = json.RawMessage(canon)
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &r, nil
}

// Put validates and encodes doc, then stores it under its content address.
// An identical document already stored is returned as is.
func (b *Backend) Put(doc map[string]any) (*types.Record, error) {
	// Validation and encoding are pure; keep them outside the lock.
	canon, err := b.encoder.Encode(doc)
	if err != nil {
		return nil, err
	}
	addr := address.Of(canon)

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}

	existing, err := b.getLocked(addr)
	if err == nil {
		b.log.Debug("document already stored", zap.String("address", addr))
		return existing, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating UUID v7: %w", err)
	}
	row, err := newDocumentRow(id.String(), addr, time.Now().UTC().Format(timestampFormat), canon)
	if err != nil {
		return nil, err
	}
	if _, err := b.db.Exec(insertDocumentSQL, row.args()...); err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}
	if err := b.persistLocked(); err != nil {
		return nil, err
	}

	b.log.Info("document stored",
		zap.String("address", addr),
		zap.String("metadata_id", row.MetadataID),
		zap.String("curation_type", string(row.CurationType)))
	rec := row.Record
	return &rec, nil
}

// Get retrieves the record stored under addr.
// Returns ErrInvalidAddress if addr is malformed, ErrNotFound if absent.
func (b *Backend) Get(addr string) (*types.Record, error) {
	if !address.Valid(addr) {
		return nil, types.ErrInvalidAddress
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	return b.getLocked(addr)
}

func (b *Backend) getLocked(addr string) (*types.Record, error) {
	row := b.db.QueryRow("SELECT "+documentColumns+" FROM documents WHERE address = ?", addr)
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting document %s: %w", addr, err)
	}
	return r, nil
}

// Fetch returns records matching every filter entry, oldest first.
// Returns ErrInvalidFilter for an unknown filter key.
func (b *Backend) Fetch(filter types.Filter) ([]*types.Record, error) {
	query := "SELECT " + documentColumns + " FROM documents"

	keys := make([]string, 0, len(filter))
	for k := range filter {
		if _, ok := filterColumns[k]; !ok {
			return nil, fmt.Errorf("%w: %q", types.ErrInvalidFilter, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var conditions []string
	var args []any
	for _, k := range keys {
		conditions = append(conditions, filterColumns[k]+" = ?")
		args = append(args, filter[k])
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, record_id ASC"

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching documents: %w", err)
	}
	defer rows.Close()

	results := []*types.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Delete removes the record stored under addr.
// Returns ErrInvalidAddress if addr is malformed, ErrNotFound if absent.
func (b *Backend) Delete(addr string) error {
	if !address.Valid(addr) {
		return types.ErrInvalidAddress
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrCatalogDetached
	}

	res, err := b.db.Exec("DELETE FROM documents WHERE address = ?", addr)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", addr, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", addr, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	if err := b.persistLocked(); err != nil {
		return err
	}
	b.log.Info("document deleted", zap.String("address", addr))
	return nil
}

// persistLocked rewrites documents.jsonl from the documents table.
// The caller must hold b.mu for writing.
func (b *Backend) persistLocked() error {
	rows, err := b.db.Query("SELECT record_id, address, created_at, canonical FROM documents ORDER BY created_at ASC, record_id ASC")
	if err != nil {
		return fmt.Errorf("reading documents for persist: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec documentJSON
		var canon string
		if err := rows.Scan(&rec.RecordID, &rec.Address, &rec.CreatedAt, &canon); err != nil {
			return fmt.Errorf("scanning document for persist: %w", err)
		}
		rec.Canonical = json.RawMessage(canon)
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", rec.Address, err)
		}
		records = append(records, line)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(b.jsonlPath(), records)
}
