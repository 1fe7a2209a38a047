package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scraper-ui/internal/model"
	"github.com/sells-group/scraper-ui/internal/view"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Submit a URL for scraping",
	Long:  "Asks the backend to scrape a URL and prints the stored page with a short content preview.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub := view.NewSubmission(newBackendClient())
		sub.SetURL(args[0])
		sub.Submit(cmd.Context())

		st := sub.State()
		if st.Err != "" {
			return eris.New(st.Err)
		}

		formatScrapeResult(cmd.OutOrStdout(), st.Result, displayLocation())
		return nil
	},
}

func formatScrapeResult(w io.Writer, p *model.Page, loc *time.Location) {
	fmt.Fprintln(w, "Scraping Result")
	fmt.Fprintf(w, "  Title:      %s\n", p.Title)
	fmt.Fprintf(w, "  URL:        %s\n", p.URL)
	fmt.Fprintf(w, "  Scraped at: %s\n", view.FormatTime(p.ScrapedAt, loc))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content Preview")
	fmt.Fprintf(w, "  %s\n", view.Preview(p.Content))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "View full content: scraper-ui page %s\n", p.ID)
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
