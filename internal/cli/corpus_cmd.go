package cli

import (
	"fmt"

	"github.com/alexanderramin/medcorpus/internal/cli/formatter"
	"github.com/alexanderramin/medcorpus/internal/importer"
	"github.com/alexanderramin/medcorpus/internal/validate"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	var output outputFormat

	cmd := &cobra.Command{
		Use:   "categories [subdomain]",
		Short: "Show category indexes and their side-table drift",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := app.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			reg := corpus.Registry

			names := reg.Subdomains()
			if len(args) == 1 {
				if _, ok := reg.CategoryIndex(args[0]); !ok {
					return fmt.Errorf("subdomain %q has no category index", args[0])
				}
				names = args
			}

			out := cmd.OutOrStdout()
			var drifts []validate.CategoryDrift
			for _, name := range names {
				idx, ok := reg.CategoryIndex(name)
				if !ok {
					continue
				}
				drift := validate.CheckCategories(name, idx)
				if output != outputText {
					drifts = append(drifts, drift)
					continue
				}
				fmt.Fprintln(out, formatter.FormatCategories(name, idx, drift))
			}
			if output != outputText {
				return writeData(out, output, drifts)
			}
			return nil
		},
	}

	addOutputFlag(cmd.Flags(), &output)
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	var output outputFormat

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count topics by subdomain, status, type, and level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := app.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			st := corpus.Registry.Stats()
			if output != outputText {
				return writeData(cmd.OutOrStdout(), output, st)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(st))
			return nil
		},
	}

	addOutputFlag(cmd.Flags(), &output)
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the merged corpus as normalized JSON documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := app.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			n, err := importer.Export(dir, corpus.Registry)
			if err != nil {
				return err
			}
			app.Logger.Info().Str("dir", dir).Int("files", n).Msg("corpus exported")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d file(s) to %s\n", n, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "out", "", "Destination directory")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
