package report

import (
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders the per-pass counts as a terminal table with a totals row.
func Table(r *Report) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Pass", "Input", "Output", "Total", "Kept", "Suspect"})

	suspect := 0
	for _, p := range r.Passes {
		w.AppendRow(table.Row{
			p.Name,
			filepath.Base(p.Input),
			filepath.Base(p.Output),
			p.Total,
			p.Kept,
			p.Suspect(),
		})
		suspect += p.Suspect()
	}

	// Passes usually chain, so only the drop count adds up across rows.
	w.AppendFooter(table.Row{"", "", "dropped", "", "", suspect})

	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	return w.Render()
}
