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

var pageCmd = &cobra.Command{
	Use:   "page <id>",
	Short: "Show the full content of a scraped page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := view.NewDetail(newBackendClient())
		d.Load(cmd.Context(), args[0])

		st := d.State()
		switch st.Render() {
		case view.RenderError:
			return eris.New(st.Err)
		case view.RenderNotFound:
			return eris.New(view.MsgPageNotFound)
		}

		formatPage(cmd.OutOrStdout(), st.Page, displayLocation())
		return nil
	},
}

func formatPage(w io.Writer, p *model.Page, loc *time.Location) {
	fmt.Fprintln(w, p.Title)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Source:        %s\n", p.URL)
	fmt.Fprintf(w, "Scraped at:    %s\n", view.FormatTime(p.ScrapedAt, loc))
	if !p.LastAccessed.IsZero() {
		fmt.Fprintf(w, "Last accessed: %s\n", view.FormatTime(p.LastAccessed, loc))
	}
	fmt.Fprintln(w)
	for _, seg := range view.Paragraphs(p.Content) {
		fmt.Fprintln(w, seg.Text)
	}
}

func init() {
	rootCmd.AddCommand(pageCmd)
}
