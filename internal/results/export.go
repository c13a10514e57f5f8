package results

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/comps-cli/internal/model"
)

// csvRow is the output file layout. Column order follows field order.
type csvRow struct {
	Rank            int    `csv:"rank"`
	ID              string `csv:"id"`
	Distance        string `csv:"distance"`
	Address         string `csv:"address"`
	IsComp          bool   `csv:"is_comp"`
	PropertyDetails string `csv:"property_details"`
	GLA             string `csv:"gla"`
	Bedrooms        string `csv:"Bedrooms"`
}

// WriteCSVFile writes rows to path, replacing any existing file.
func WriteCSVFile(path string, rows []model.ResultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "results: create %s", path)
	}
	defer f.Close()

	if err := WriteCSV(f, rows); err != nil {
		return err
	}
	return eris.Wrap(f.Close(), "results: close output")
}

// WriteCSV writes the header and one line per row. An empty row set
// produces a header-only file.
func WriteCSV(w io.Writer, rows []model.ResultRow) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(csvRow{}); err != nil {
		return eris.Wrap(err, "results: write header")
	}
	for _, r := range rows {
		line, err := toCSVRow(r)
		if err != nil {
			return err
		}
		if err := enc.Encode(line); err != nil {
			return eris.Wrapf(err, "results: write rank %d", r.Rank)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "results: flush csv")
}

func toCSVRow(r model.ResultRow) (csvRow, error) {
	line := csvRow{
		Rank:     r.Rank,
		ID:       r.Identity,
		Distance: strconv.FormatFloat(r.Distance, 'f', -1, 64),
		Address:  r.Address,
		IsComp:   r.IsComp,
	}
	if r.Details == nil {
		return line, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, r.Details.Raw()); err != nil {
		return line, eris.Wrapf(err, "results: serialize details for %s", r.Identity)
	}
	line.PropertyDetails = buf.String()
	line.GLA = r.Details.Text(model.FieldGLA)
	line.Bedrooms = r.Details.Text(model.FieldBedrooms)
	return line, nil
}
