// Package sqlite implements the SQLite catalog backend for canonical Curation
// Metadata documents. A JSONL file is the source of truth; SQLite is the
// query engine rebuilt from it on every Attach.
package sqlite

import "github.com/mesh-intelligence/curation/pkg/types"

// Schema DDL.
const (
	createDocuments = `CREATE TABLE documents (
    record_id TEXT PRIMARY KEY,
    address TEXT NOT NULL UNIQUE,
    metadata_id TEXT NOT NULL,
    version TEXT NOT NULL,
    curation_type TEXT NOT NULL,
    main_content_focus TEXT NOT NULL,
    locale TEXT NOT NULL,
    name TEXT NOT NULL,
    canonical TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

// Index DDL for the Fetch filters.
const (
	idxDocumentsMetadataID   = `CREATE INDEX idx_documents_metadata_id ON documents(metadata_id);`
	idxDocumentsCurationType = `CREATE INDEX idx_documents_curation_type ON documents(curation_type);`
	idxDocumentsFocus        = `CREATE INDEX idx_documents_focus ON documents(main_content_focus);`
	idxDocumentsLocale       = `CREATE INDEX idx_documents_locale ON documents(locale);`
	idxDocumentsCreated      = `CREATE INDEX idx_documents_created ON documents(created_at, record_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createDocuments,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxDocumentsMetadataID,
	idxDocumentsCurationType,
	idxDocumentsFocus,
	idxDocumentsLocale,
	idxDocumentsCreated,
}

// documentColumns is the column list used by every SELECT and INSERT.
const documentColumns = "record_id, address, metadata_id, version, curation_type, main_content_focus, locale, name, canonical, created_at"

// filterColumns maps Catalog filter keys to columns.
var filterColumns = map[string]string{
	types.FilterCurationType:     "curation_type",
	types.FilterMainContentFocus: "main_content_focus",
	types.FilterMetadataID:       "metadata_id",
	types.FilterLocale:           "locale",
}
