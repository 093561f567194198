package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/curation/internal/address"
)

func newEncodeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file|-]",
		Short: "Print the canonical encoding of a valid document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := s.readDocument(args)
			if err != nil {
				return err
			}
			canon, err := s.encoder().Encode(doc)
			if err != nil {
				return s.encodeError(cmd.ErrOrStderr(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(canon))
			return nil
		},
	}
}

// digestOutput is the --json form of the digest command.
type digestOutput struct {
	Address string `json:"address"`
	Size    int    `json:"size"`
}

func newDigestCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "digest [file|-]",
		Short: "Print the content address of a valid document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := s.readDocument(args)
			if err != nil {
				return err
			}
			canon, err := s.encoder().Encode(doc)
			if err != nil {
				return s.encodeError(cmd.ErrOrStderr(), err)
			}

			addr := address.Of(canon)
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), digestOutput{Address: addr, Size: len(canon)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}
}
