// Package sqlite provides the public API for the SQLite catalog backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curation/internal/sqlite"
	"github.com/mesh-intelligence/curation/pkg/types"
)

// NewBackend creates a new SQLite catalog. A nil logger discards log output.
// The catalog is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	catalog := sqlite.NewBackend(nil)
//	err := catalog.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "curation-db",
//	})
//	defer catalog.Detach()
func NewBackend(log *zap.Logger) types.Catalog {
	return sqlite.NewBackend(sqlite.WithLogger(log))
}
