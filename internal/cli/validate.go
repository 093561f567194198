package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Check a document against the Curation Metadata schema",
		Long: `Validate reads one JSON document and reports every violation found.
Exits 0 when the document is valid and 1 when it is not.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := s.readDocument(args)
			if err != nil {
				return err
			}
			result := s.validator().Validate(doc)

			out := cmd.OutOrStdout()
			if s.flags.jsonMode {
				if err := writeJSON(out, result); err != nil {
					return err
				}
			} else if result.OK {
				fmt.Fprintln(out, "ok")
			} else {
				writeViolations(out, result.Violations)
			}

			if !result.OK {
				return &exitError{code: exitUserError}
			}
			return nil
		},
	}
}
