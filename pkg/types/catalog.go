package types

import (
	"encoding/json"
	"errors"
	"time"
)

// Catalog stores canonical curation metadata documents keyed by their
// content address. Callers attach to a backend, store and query documents,
// and detach when done.
type Catalog interface {
	// Attach connects the Catalog to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrCatalogDetached.
	Detach() error

	// Put validates and canonically encodes doc, then stores it under its
	// content address. Storing an identical document again returns the
	// existing record. Returns an *InvalidDocumentError for invalid input.
	Put(doc map[string]any) (*Record, error)

	// Get retrieves the record with the given content address.
	// Returns ErrNotFound if no such record exists.
	Get(address string) (*Record, error)

	// Fetch returns all records matching the filter, oldest first. An empty
	// filter returns every record.
	Fetch(filter Filter) ([]*Record, error)

	// Delete removes the record with the given content address.
	// Returns ErrNotFound if no such record exists.
	Delete(address string) error
}

// Record is a stored canonical document.
type Record struct {
	RecordID         string          `json:"record_id"` // UUID v7, generated on first Put.
	Address          string          `json:"address"`   // Content address of Canonical.
	MetadataID       string          `json:"metadata_id"`
	Version          MetadataVersion `json:"version"`
	CurationType     CurationType    `json:"curation_type"`
	MainContentFocus MainFocus       `json:"mainContentFocus"`
	Locale           string          `json:"locale"`
	Name             string          `json:"name"`
	Canonical        json.RawMessage `json:"canonical"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Filter selects records by column value. Keys are the Filter* constants.
type Filter map[string]string

// Filter keys accepted by Catalog.Fetch.
const (
	FilterCurationType     = "curation_type"
	FilterMainContentFocus = "mainContentFocus"
	FilterMetadataID       = "metadata_id"
	FilterLocale           = "locale"
)

// Catalog lifecycle errors.
var (
	ErrCatalogDetached = errors.New("catalog is detached")
	ErrAlreadyAttached = errors.New("catalog is already attached")
)

// Catalog operation errors.
var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidAddress = errors.New("invalid content address")
	ErrInvalidFilter  = errors.New("invalid filter key")
)
