package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	rnafold "github.com/wagiedev/rnafold-go"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func validFormat(s string) bool {
	return s == formatText || s == formatJSON
}

type foldFlags struct {
	format string
	input  string
	jobs   int
}

// foldRow is one line of JSON output.
type foldRow struct {
	ID        string   `json:"id,omitempty"`
	Sequence  string   `json:"sequence"`
	Structure string   `json:"structure,omitempty"`
	Energy    *float64 `json:"energy,omitempty"`
	Error     string   `json:"error,omitempty"`
	ErrorKind string   `json:"error_kind,omitempty"`
}

func newFoldCmd(global *globalFlags, extra []rnafold.Option) *cobra.Command {
	flags := &foldFlags{}

	cmd := &cobra.Command{
		Use:   "fold [SEQUENCE...]",
		Short: "Fold sequences and print their MFE structures",
		Long: `Fold each sequence with RNAfold and print its minimum free energy
structure. Sequences come from the arguments or, when none are given, from
stdin (one per line, FASTA, or JSON lines with "id" and "sequence").

Exits with status 1 if any sequence failed to fold.`,
		Example: `  rnafold fold CGCAGGGAUACCCGCG
  rnafold fold --input fasta --format json < seqs.fa`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(cmd, args, global, flags, extra)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "Output format: text or json")
	cmd.Flags().StringVarP(&flags.input, "input", "i", inputLines, "Stdin format: lines, fasta or jsonl")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "Maximum concurrent RNAfold processes (default: CPU count)")

	return cmd
}

func runFold(cmd *cobra.Command, args []string, global *globalFlags, flags *foldFlags, extra []rnafold.Option) error {
	cfg, err := loadConfig(global.configPath)
	if err != nil {
		return err
	}

	applyConfig(cmd, cfg, global, flags)

	if !validFormat(flags.format) {
		return fmt.Errorf("unknown format %q", flags.format)
	}

	if !validInput(flags.input) {
		return fmt.Errorf("unknown input %q", flags.input)
	}

	log := newLogger(cmd, global.verbose)

	var recs []record
	if len(args) > 0 {
		for _, a := range args {
			recs = append(recs, record{Value: a})
		}
	} else {
		recs, err = readRecords(cmd.InOrStdin(), flags.input)
		if err != nil {
			return err
		}
	}

	values := make([]any, len(recs))
	for i, r := range recs {
		values[i] = r.Value
	}

	opts := append([]rnafold.Option{
		rnafold.WithLogger(log),
		rnafold.WithConcurrency(flags.jobs),
	}, extra...)

	outcomes := rnafold.FoldValues(cmd.Context(), values, opts...)

	failed := 0

	for i, o := range outcomes {
		if o.Err != nil {
			failed++
		}

		if err := writeOutcome(cmd.OutOrStdout(), cmd.ErrOrStderr(), flags.format, recs[i].ID, o); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if failed > 0 {
		log.Debug("Some folds failed", "failed", failed, "total", len(outcomes))

		return errSilent
	}

	return nil
}

// applyConfig fills flags the user did not set from the config file.
func applyConfig(cmd *cobra.Command, cfg *configFile, global *globalFlags, flags *foldFlags) {
	if cfg.Format != "" && !cmd.Flags().Changed("format") {
		flags.format = cfg.Format
	}

	if cfg.Input != "" && !cmd.Flags().Changed("input") {
		flags.input = cfg.Input
	}

	if cfg.Jobs > 0 && !cmd.Flags().Changed("jobs") {
		flags.jobs = cfg.Jobs
	}

	if cfg.Verbose && !cmd.Flags().Changed("verbose") {
		global.verbose = true
	}
}

func writeOutcome(stdout, stderr io.Writer, format, id string, o rnafold.Outcome) error {
	if format == formatJSON {
		row := foldRow{ID: id, Sequence: o.Sequence}

		if o.Err != nil {
			row.Error = o.Err.Error()
			if kind := rnafold.KindOf(o.Err); kind != 0 {
				row.ErrorKind = kind.String()
			}
		} else {
			energy := o.Result.Energy
			row.Structure = o.Result.Structure
			row.Energy = &energy
		}

		data, err := json.Marshal(row)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(stdout, string(data))

		return err
	}

	label := id
	if label == "" {
		label = o.Sequence
	}

	if o.Err != nil {
		_, err := fmt.Fprintf(stderr, "rnafold: %s: %v\n", label, o.Err)

		return err
	}

	if id != "" {
		if _, err := fmt.Fprintf(stdout, ">%s\n", id); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(stdout, "%s\n%s\n", o.Sequence, o.Result)

	return err
}
