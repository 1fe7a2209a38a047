package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scraper-ui/internal/model"
	"github.com/sells-group/scraper-ui/internal/view"
	"github.com/sells-group/scraper-ui/pkg/scraperapi"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or search scraped pages",
	Long:  "Lists previously scraped pages, or searches them by title and content with --query.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		query, _ := cmd.Flags().GetString("query")
		skip, _ := cmd.Flags().GetInt("skip")
		limit, _ := cmd.Flags().GetInt("limit")

		var listOpts []scraperapi.ListOption
		if cmd.Flags().Changed("skip") {
			listOpts = append(listOpts, scraperapi.WithSkip(skip))
		}
		if cmd.Flags().Changed("limit") {
			listOpts = append(listOpts, scraperapi.WithLimit(limit))
		}

		h := view.NewHistory(newBackendClient()).WithListOptions(listOpts...)
		if cmd.Flags().Changed("query") {
			h.SetQuery(query)
			h.Search(cmd.Context())
		} else {
			h.Mount(cmd.Context())
		}

		st := h.State()
		if st.Err != "" {
			return eris.New(st.Err)
		}
		if st.Empty() {
			fmt.Fprintln(cmd.ErrOrStderr(), view.MsgNoPages)
			return nil
		}

		formatPageList(cmd.OutOrStdout(), st.Pages, displayLocation())
		return nil
	},
}

func formatPageList(w io.Writer, pages []model.PageSummary, loc *time.Location) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tURL\tSCRAPED\tLAST ACCESSED")
	for _, p := range pages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			truncate(p.Title, 40),
			p.URL,
			view.FormatTime(p.ScrapedAt, loc),
			view.FormatTime(p.LastAccessed, loc),
		)
	}
	tw.Flush() //nolint:errcheck
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	historyCmd.Flags().String("query", "", "search titles and content instead of listing")
	historyCmd.Flags().Int("skip", 0, "number of pages to skip")
	historyCmd.Flags().Int("limit", 100, "maximum number of pages to list")
	rootCmd.AddCommand(historyCmd)
}
