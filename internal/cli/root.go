// Package cli implements the curate command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curation/internal/canonical"
	"github.com/mesh-intelligence/curation/internal/paths"
	"github.com/mesh-intelligence/curation/internal/validate"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// session carries what every subcommand needs once the root command has
// resolved its directories and read config.yaml.
type session struct {
	flags     rootFlags
	configDir string
	settings  settings
	log       *zap.Logger
	stdin     io.Reader
}

// NewRootCmd creates the top-level "curate" command with global flags and
// all subcommands registered. Input is read from stdin when a command is
// given "-" or no file.
func NewRootCmd(stdin io.Reader) *cobra.Command {
	s := &session{stdin: stdin, log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "curate",
		Short: "Validate, encode and catalog Curation Metadata documents",
		Long: `curate checks Curation Metadata documents against the versioned schema,
produces their canonical encoding and content address, and keeps a local
catalog of canonical documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = s.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&s.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&s.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&s.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(s),
		newValidateCmd(s),
		newEncodeCmd(s),
		newDigestCmd(s),
		newNewCmd(s),
		newPutCmd(s),
		newGetCmd(s),
		newListCmd(s),
		newDeleteCmd(s),
	)
	return root
}

// load resolves the config directory, reads config.yaml and builds the logger.
func (s *session) load(stderr io.Writer) error {
	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	st, err := loadSettings(configDir)
	if err != nil {
		return sysError(err)
	}
	log, err := newLogger(st.LogLevel, stderr)
	if err != nil {
		return userError(err)
	}
	s.configDir = configDir
	s.settings = st
	s.log = log
	return nil
}

// validator returns the validator selected by config.yaml.
func (s *session) validator() *validate.Validator {
	if s.settings.StrictReferences {
		return validate.Strict(s.settings.FocusRules)
	}
	return validate.New(validate.Options{FocusRules: s.settings.FocusRules})
}

func (s *session) encoder() *canonical.Encoder {
	return canonical.NewEncoder(s.validator())
}

// Run executes the command line args and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdin)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}

	code := exitUserError
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
		err = ee.err
	}
	if err != nil {
		fmt.Fprintln(stderr, "curate:", err)
	}
	return code
}

// Execute runs the root command against the process arguments and exits
// with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitError pairs an error with the exit code it maps to. A nil err exits
// without printing anything further.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }

func sysError(err error) error { return &exitError{code: exitSysError, err: err} }
