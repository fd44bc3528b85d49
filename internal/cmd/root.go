// Package cmd provides the commands of the rnafold CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	rnafold "github.com/wagiedev/rnafold-go"
)

// errSilent signals a failure already reported to the user.
var errSilent = errors.New("silent failure")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
}

// newRootCmd builds the command tree. extra options are passed to every
// fold, which lets tests substitute the process launcher.
func newRootCmd(extra ...rnafold.Option) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "rnafold",
		Short: "Predict RNA secondary structures with ViennaRNA RNAfold",
		Long: `rnafold runs the ViennaRNA RNAfold tool on one or more RNA sequences
and reports the minimum free energy structure in dot-bracket notation.

RNAfold must be installed and on PATH. Use "rnafold check" to verify.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a TOML config file")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newFoldCmd(flags, extra))
	root.AddCommand(newCheckCmd(flags))

	return root
}

// Execute runs the root command and returns an exit code.
// The caller (main) should call os.Exit with this code.
func Execute() int {
	return run(newRootCmd(), os.Args[1:])
}

// run executes root with args. An interrupt cancels the command context,
// which kills any RNAfold processes still running.
func run(root *cobra.Command, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(root.ErrOrStderr(), "rnafold: %v\n", err)
		}

		return 1
	}

	return 0
}

// newLogger returns a text logger on stderr; debug level when verbose.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
