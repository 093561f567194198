package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and catalog storage",
		Long:  "Create the configuration directory with a default config.yaml, then initialize the catalog in the data directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := defaultSettings()
			st.DataDir = s.flags.dataDir
			created, err := writeConfigIfMissing(s.configDir, st)
			if err != nil {
				return sysError(err)
			}
			if created {
				// Pick up a --data-dir just recorded in config.yaml.
				s.settings.DataDir = st.DataDir
			}

			backend, err := s.attachBackend()
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			dataDir, err := s.dataDir()
			if err != nil {
				return sysError(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Catalog initialized successfully")
			fmt.Fprintln(out, "  config:", s.configDir)
			fmt.Fprintln(out, "  data:  ", dataDir)
			return nil
		},
	}
}
