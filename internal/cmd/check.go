package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	rnafold "github.com/wagiedev/rnafold-go"
)

func newCheckCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Locate RNAfold and verify its version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(global.configPath)
			if err != nil {
				return err
			}

			verbose := global.verbose || cfg.Verbose

			info, err := rnafold.CheckVersion(cmd.Context(), rnafold.WithLogger(newLogger(cmd, verbose)))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "RNAfold: %s\n", info.Path)

			if info.Skipped {
				fmt.Fprintln(out, "version: check skipped")

				return nil
			}

			fmt.Fprintf(out, "version: %s (minimum %s)\n", info.Version, info.Minimum)

			if !info.Supported {
				return fmt.Errorf("RNAfold %s is older than the supported minimum %s", info.Version, info.Minimum)
			}

			fmt.Fprintln(out, "ok")

			return nil
		},
	}
}
