package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mesh-intelligence/curation/internal/canonical"
	"github.com/mesh-intelligence/curation/internal/paths"
	"github.com/mesh-intelligence/curation/internal/sqlite"
	"github.com/mesh-intelligence/curation/pkg/types"
)

// readDocument reads one JSON document from the named file, or from stdin
// when the name is "-" or omitted. Unreadable input is a system error and
// malformed input a user error.
func (s *session) readDocument(args []string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(s.stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, sysError(fmt.Errorf("read document: %w", err))
	}
	doc, err := canonical.Decode(data)
	if err != nil {
		return nil, userError(err)
	}
	return doc, nil
}

// dataDir resolves the catalog directory: --data-dir, then config.yaml,
// then the environment, then the platform default.
func (s *session) dataDir() (string, error) {
	return paths.ResolveDataDir(s.flags.dataDir, s.settings.DataDir)
}

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func (s *session) attachBackend() (*sqlite.Backend, error) {
	if _, err := writeConfigIfMissing(s.configDir, defaultSettings()); err != nil {
		return nil, sysError(err)
	}
	dataDir, err := s.dataDir()
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	cfg := types.Config{Backend: s.settings.Backend, DataDir: dataDir}
	backend := sqlite.NewBackend(sqlite.WithLogger(s.log), sqlite.WithEncoder(s.encoder()))
	if err := backend.Attach(cfg); err != nil {
		if errors.Is(err, types.ErrBackendEmpty) || errors.Is(err, types.ErrBackendUnknown) {
			return nil, userError(fmt.Errorf("config %s %q: %w", cfgKeyBackend, cfg.Backend, err))
		}
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	return backend, nil
}

// catalogError maps catalog errors to exit codes.
func catalogError(err error) error {
	var invalid *types.InvalidDocumentError
	switch {
	case errors.As(err, &invalid),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidAddress),
		errors.Is(err, types.ErrInvalidFilter):
		return userError(err)
	default:
		return sysError(err)
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeViolations prints one violation per line.
func writeViolations(w io.Writer, violations []types.Violation) {
	for _, v := range violations {
		fmt.Fprintln(w, v.String())
	}
}

// encodeError reports an invalid document on stderr and maps err to an
// exit code.
func (s *session) encodeError(w io.Writer, err error) error {
	var invalid *types.InvalidDocumentError
	if !errors.As(err, &invalid) {
		return sysError(err)
	}
	if s.flags.jsonMode {
		if werr := writeJSON(w, invalid.Result); werr != nil {
			return werr
		}
	} else {
		writeViolations(w, invalid.Result.Violations)
	}
	return userError(types.ErrInvalidDocument)
}
