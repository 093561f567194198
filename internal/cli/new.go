package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/curation/pkg/types"
)

// scaffoldLocale is the locale of scaffolded documents.
const scaffoldLocale = "en-US"

func newNewCmd(s *session) *cobra.Command {
	var (
		name         string
		curationType string
		focus        string
		content      string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Print a new minimal document with a fresh metadata_id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.NewV7()
			if err != nil {
				return sysError(fmt.Errorf("generating UUID v7: %w", err))
			}
			m := &types.CurationMetadata{
				Version:          types.Version1_0_0,
				CurationType:     types.CurationType(curationType),
				MetadataID:       id.String(),
				Content:          types.String(content),
				Locale:           scaffoldLocale,
				MainContentFocus: types.MainFocus(focus),
				Name:             name,
			}
			canon, err := s.encoder().EncodeMetadata(m)
			if err != nil {
				return s.encodeError(cmd.ErrOrStderr(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(canon))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Untitled", "document name")
	cmd.Flags().StringVar(&curationType, "type", string(types.CurationTypeContentOnly), "curation_type tag")
	cmd.Flags().StringVar(&focus, "focus", string(types.FocusTextOnly), "mainContentFocus tag")
	cmd.Flags().StringVar(&content, "content", "New curation.", "markdown content")
	return cmd
}
