package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newClassifyCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <query>",
		Short: "Show how a query is interpreted",
		Long: `Print whether a query is a plain file search, a website or a bang search,
and the URL it would open.

Examples:
  quicksearch classify example.com
  quicksearch classify '!gh bubbletea'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*opts)
			if err != nil {
				return err
			}
			defer app.Close()

			c := app.Classifier.Classify(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kind: %s\n", c.Kind)
			if c.Service != "" {
				fmt.Fprintf(out, "service: %s\n", c.Service)
			}
			if c.URL != "" {
				fmt.Fprintf(out, "url: %s\n", c.URL)
			}
			return nil
		},
	}
}

func newIndexCmd(opts *Options) *cobra.Command {
	var extended bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the file index snapshot",
		Long:  `Walk the default directories (and the extended ones with --extended) and save the snapshot used for warm starts.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp(*opts)
			if err != nil {
				return err
			}
			defer app.Close()

			start := time.Now()
			if err := app.Index.Rebuild(cmd.Context(), false); err != nil {
				return fmt.Errorf("index default dirs: %w", err)
			}
			if extended {
				if err := app.Index.Rebuild(cmd.Context(), true); err != nil {
					return fmt.Errorf("index extended dirs: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d entries in %s\n", app.Index.Len(), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&extended, "extended", "e", false, "also index the extended directories")
	return cmd
}

func newSearchCmd(opts *Options) *cobra.Command {
	var (
		limit   int
		rebuild bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print matching paths, best first",
		Long: `Search the index from the command line. The saved snapshot is used when
present; --rebuild walks the directories first.

Examples:
  quicksearch search notes
  quicksearch search 'report <pdf> /e'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if err := app.Index.LoadSnapshot(ctx); err != nil {
				app.Logger.Warn().Err(err).Msg("failed to load index snapshot")
			}

			q := strings.Join(args, " ")
			if rebuild || app.Index.Len() == 0 {
				if err := app.Index.Rebuild(ctx, false); err != nil {
					return fmt.Errorf("index default dirs: %w", err)
				}
				if strings.Contains(q, "/e") {
					if err := app.Index.Rebuild(ctx, true); err != nil {
						return fmt.Errorf("index extended dirs: %w", err)
					}
				}
			}

			results, err := app.Index.Search(ctx, q)
			if err != nil {
				return err
			}
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintln(out, r)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of paths to print")
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "walk the directories before searching")
	return cmd
}
