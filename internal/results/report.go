package results

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rotisserie/eris"

	"github.com/sells-group/comps-cli/internal/encode"
	"github.com/sells-group/comps-cli/internal/model"
)

// RenderTable prints the rows that resolved to a source record.
func RenderTable(w io.Writer, rows []model.ResultRow) error {
	found := Found(rows)
	if len(found) == 0 {
		_, err := fmt.Fprintln(w, "No similar properties found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Rank", "ID", "Distance", "Address", "Comp")
	for _, r := range found {
		comp := ""
		if r.IsComp {
			comp = "yes"
		}
		if err := table.Append([]string{
			strconv.Itoa(r.Rank),
			r.Identity,
			strconv.FormatFloat(r.Distance, 'f', 4, 64),
			r.Address,
			comp,
		}); err != nil {
			return eris.Wrap(err, "results: append table row")
		}
	}
	return eris.Wrap(table.Render(), "results: render table")
}

// RenderFeatures prints one line per table row, subject first, with either
// scaled or unscaled values.
func RenderFeatures(w io.Writer, t *encode.Table, scaled bool) error {
	rows := t.Encoded
	if scaled {
		rows = t.Scaled
	}

	header := make([]any, 0, len(t.Columns)+1)
	header = append(header, "identity")
	for _, c := range t.Columns {
		header = append(header, c)
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)
	for i, row := range rows {
		line := make([]string, 0, len(row)+1)
		line = append(line, t.Identities[i])
		for _, v := range row {
			line = append(line, strconv.FormatFloat(v, 'f', 4, 64))
		}
		if err := table.Append(line); err != nil {
			return eris.Wrap(err, "results: append feature row")
		}
	}
	return eris.Wrap(table.Render(), "results: render features")
}
