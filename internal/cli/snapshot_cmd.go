package cli

import (
	"fmt"

	"github.com/alexanderramin/medcorpus/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Persist the corpus and browse validation history",
	}

	cmd.AddCommand(
		newSnapshotSaveCmd(app),
		newSnapshotRunsCmd(app),
	)

	return cmd
}

func newSnapshotSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Store every topic in the database, checking lifecycle against the stored copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			corpus, err := app.loadCorpus(ctx)
			if err != nil {
				return err
			}
			snaps, err := app.snapshots(ctx)
			if err != nil {
				return err
			}
			res, err := snaps.Save(ctx, corpus.Registry)
			if err != nil {
				if res != nil && len(res.Issues) > 0 {
					fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatIssues(res.Issues))
				}
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshot(res))
			return nil
		},
	}
}

func newSnapshotRunsCmd(app *App) *cobra.Command {
	var (
		output outputFormat
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded validation runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snaps, err := app.snapshots(ctx)
			if err != nil {
				return err
			}
			runs, err := snaps.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if output != outputText {
				return writeData(cmd.OutOrStdout(), output, runs)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRuns(runs))
			return nil
		},
	}

	addOutputFlag(cmd.Flags(), &output)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show")

	return cmd
}
