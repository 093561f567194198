package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/curation/pkg/types"
)

func newPutCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "put [file|-]",
		Short: "Store a valid document in the catalog",
		Long: `Put validates a document, stores its canonical encoding under its content
address and prints the address. Storing the same document again is a no-op.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := s.readDocument(args)
			if err != nil {
				return err
			}
			backend, err := s.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			rec, err := backend.Put(doc)
			if err != nil {
				var invalid *types.InvalidDocumentError
				if errors.As(err, &invalid) {
					return s.encodeError(cmd.ErrOrStderr(), err)
				}
				return catalogError(err)
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec.Address)
			return nil
		},
	}
}

func newGetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <address>",
		Short: "Print the canonical document stored under an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := s.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			rec, err := backend.Get(args[0])
			if err != nil {
				return catalogError(fmt.Errorf("%s: %w", args[0], err))
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(rec.Canonical))
			return nil
		},
	}
}

func newListCmd(s *session) *cobra.Command {
	var (
		curationType string
		focus        string
		metadataID   string
		locale       string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog records, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := types.Filter{}
			for key, value := range map[string]string{
				types.FilterCurationType:     curationType,
				types.FilterMainContentFocus: focus,
				types.FilterMetadataID:       metadataID,
				types.FilterLocale:           locale,
			} {
				if value != "" {
					filter[key] = value
				}
			}

			backend, err := s.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			records, err := backend.Fetch(filter)
			if err != nil {
				return catalogError(err)
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), records)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ADDRESS\tTYPE\tFOCUS\tLOCALE\tNAME")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Address, r.CurationType, r.MainContentFocus, r.Locale, r.Name)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&curationType, "type", "", "filter by curation_type")
	cmd.Flags().StringVar(&focus, "focus", "", "filter by mainContentFocus")
	cmd.Flags().StringVar(&metadataID, "metadata-id", "", "filter by metadata_id")
	cmd.Flags().StringVar(&locale, "locale", "", "filter by locale")
	return cmd
}

func newDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <address>",
		Short: "Remove a document from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := s.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := backend.Delete(args[0]); err != nil {
				return catalogError(fmt.Errorf("%s: %w", args[0], err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
