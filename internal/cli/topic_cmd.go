package cli

import (
	"fmt"

	"github.com/alexanderramin/medcorpus/internal/cli/formatter"
	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/registry"
	"github.com/spf13/cobra"
)

func newGetCmd(app *App) *cobra.Command {
	var (
		output outputFormat
		level  int
	)

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			only := domain.ComplexityLevel(level)
			if level != 0 && !only.Valid() {
				return fmt.Errorf("--level must be between %d and %d", domain.MinLevel, domain.MaxLevel)
			}

			corpus, err := app.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := corpus.Registry.Get(args[0])
			if err != nil {
				return err
			}
			if only != 0 {
				if _, ok := rec.Level(only); !ok {
					return fmt.Errorf("topic %s has no level %d", rec.ID, level)
				}
			}

			out := cmd.OutOrStdout()
			if output != outputText {
				if only != 0 {
					content, _ := rec.Level(only)
					return writeData(out, output, content)
				}
				return writeData(out, output, rec)
			}
			subdomain, _ := corpus.Registry.SubdomainOf(rec.ID)
			fmt.Fprint(out, formatter.FormatTopic(rec, subdomain, only))
			return nil
		},
	}

	addOutputFlag(cmd.Flags(), &output)
	cmd.Flags().IntVarP(&level, "level", "l", 0, "Show only this complexity level (1-5)")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var (
		output    outputFormat
		filter    registry.Filter
		insertion bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List topics, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := app.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			filter.InsertionOrder = insertion
			recs := corpus.Registry.List(filter)

			out := cmd.OutOrStdout()
			if output != outputText {
				return writeData(out, output, recs)
			}
			fmt.Fprint(out, formatter.FormatTopicList(recs, func(id string) string {
				sub, _ := corpus.Registry.SubdomainOf(id)
				return sub
			}))
			return nil
		},
	}

	addOutputFlag(cmd.Flags(), &output)
	statusFlag(cmd.Flags(), &filter.Status)
	topicTypeFlag(cmd.Flags(), &filter.Type)
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "Only topics tagged with this system, topic, or keyword")
	cmd.Flags().StringVar(&filter.Subdomain, "subdomain", "", "Only topics from this subdomain")
	cmd.Flags().BoolVar(&insertion, "insertion-order", false, "Keep merge and registration order instead of sorting by id")

	return cmd
}

func newXrefsCmd(app *App) *cobra.Command {
	var output outputFormat

	cmd := &cobra.Command{
		Use:   "xrefs <id>",
		Short: "Resolve the cross-references of one topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := app.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			refs, err := corpus.Registry.CrossReferencesOf(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != outputText {
				return writeData(out, output, refs)
			}
			fmt.Fprint(out, formatter.FormatCrossRefs(args[0], refs))
			return nil
		},
	}

	addOutputFlag(cmd.Flags(), &output)
	return cmd
}
