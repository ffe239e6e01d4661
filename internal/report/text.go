package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/AngelCh415/digmar-dash/internal/models"
)

// WriteText prints the KPI strip, the campaign table and both chart series
// as aligned plain text.
func (f Formatter) WriteText(w io.Writer, res *models.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	p := func(format string, a ...any) { fmt.Fprintf(tw, format, a...) }

	p("%s\n\n", Title)
	for _, k := range f.KPIStrip(res.KPI) {
		p("%s\t%s\t\n", k.Label, k.Value)
	}
	p("\n")
	writeTable(tw, f.CampaignTable(res.Campaigns))
	p("\n")
	for _, c := range f.Charts(res.Campaigns) {
		p("%s\n", c.Title)
		for _, b := range c.Bars {
			p("%s\t%s\t\n", b.Label, b.Display)
		}
		p("\n")
	}
	return tw.Flush()
}

func writeTable(w io.Writer, t Table) {
	fmt.Fprintln(w, strings.Join(t.Headers, "\t")+"\t")
	for _, r := range t.Rows {
		fmt.Fprintln(w, strings.Join(r, "\t")+"\t")
	}
}
