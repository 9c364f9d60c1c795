package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/medcorpus/internal/cli/formatter"
	"github.com/alexanderramin/medcorpus/internal/registry"
	"github.com/spf13/cobra"
)

func newValidateCmd(app *App) *cobra.Command {
	var (
		output       outputFormat
		showWarnings bool
		record       bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the corpus and report schema, level, reference, and category problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			corpus, err := app.loadCorpus(ctx)
			if err != nil {
				var collisions *registry.CollisionError
				if errors.As(err, &collisions) {
					fmt.Fprint(out, formatter.FormatIssues(collisions.Issues()))
					return fmt.Errorf("%w: %v", ErrValidationFailed, collisions)
				}
				return err
			}

			rep := app.Corpus.Validate(ctx, corpus)
			if output == outputText {
				fmt.Fprint(out, formatter.FormatReport(rep, showWarnings))
			} else if err := writeData(out, output, rep); err != nil {
				return err
			}

			if record {
				snaps, err := app.snapshots(ctx)
				if err != nil {
					return err
				}
				run, err := snaps.RecordRun(ctx, rep)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("recorded run "+run.DisplayID()))
			}

			if !rep.Passed() {
				return fmt.Errorf("%w: %d error(s)", ErrValidationFailed, rep.ErrorCount())
			}
			return nil
		},
	}

	addOutputFlag(cmd.Flags(), &output)
	cmd.Flags().BoolVarP(&showWarnings, "warnings", "w", false, "List warnings, dangling references, and category drift")
	cmd.Flags().BoolVar(&record, "record", false, "Store the report in the run history")

	return cmd
}
