// Package encode turns FeatureRecords into scaled numeric vectors: structure
// types are one-hot encoded over a sorted vocabulary and every column is
// min-max scaled jointly over the subject and all candidates.
package encode

import (
	"slices"
	"strings"

	"github.com/sells-group/comps-cli/internal/model"
)

// Numeric feature columns, always first and in this order.
const (
	ColumnGLA   = "gla"
	ColumnRooms = "rooms"
	ColumnAge   = "age"
)

// CategoryPrefix names one-hot structure type columns.
const CategoryPrefix = "structure_type_"

// NumericColumns lists the fixed leading columns.
var NumericColumns = []string{ColumnGLA, ColumnRooms, ColumnAge}

// IsCategoryColumn reports whether column is a one-hot indicator.
func IsCategoryColumn(column string) bool {
	return strings.HasPrefix(column, CategoryPrefix)
}

// Categories returns the distinct structure types across records, sorted.
func Categories(records []model.FeatureRecord) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, r := range records {
		if _, ok := seen[r.StructureType]; ok {
			continue
		}
		seen[r.StructureType] = struct{}{}
		out = append(out, r.StructureType)
	}
	slices.Sort(out)
	return out
}

// Table is the encoded and scaled view of one run. Row 0 is the subject.
type Table struct {
	// Columns is gla, rooms, age followed by the one-hot columns.
	Columns []string
	// Reference is the dropped category, encoded as all zeros.
	Reference  string
	Identities []string
	// Encoded holds unscaled rows; Scaled holds the same rows in [0, 1].
	Encoded [][]float64
	Scaled  [][]float64
	Scaler  *MinMaxScaler
}

// Build encodes subject and candidates as a single table. Column order and the
// category vocabulary depend only on the set of values, never on row order.
func Build(subject model.FeatureRecord, candidates []model.FeatureRecord) *Table {
	records := make([]model.FeatureRecord, 0, len(candidates)+1)
	records = append(records, subject)
	records = append(records, candidates...)

	cats := Categories(records)
	t := &Table{
		Columns:    slices.Clone(NumericColumns),
		Identities: make([]string, len(records)),
		Encoded:    make([][]float64, len(records)),
		Scaled:     make([][]float64, len(records)),
	}
	index := make(map[string]int, len(cats))
	if len(cats) > 0 {
		t.Reference = cats[0]
		for _, c := range cats[1:] {
			index[c] = len(t.Columns)
			t.Columns = append(t.Columns, CategoryPrefix+c)
		}
	}

	for i, r := range records {
		row := make([]float64, len(t.Columns))
		row[0] = r.GLA
		row[1] = float64(r.Rooms)
		row[2] = float64(r.Age)
		if j, ok := index[r.StructureType]; ok {
			row[j] = 1
		}
		t.Identities[i] = r.Identity
		t.Encoded[i] = row
	}

	t.Scaler = FitMinMax(t.Encoded)
	for i, row := range t.Encoded {
		t.Scaled[i] = t.Scaler.Transform(row)
	}
	return t
}

// Subject returns a copy of the subject's scaled vector.
func (t *Table) Subject() []float64 {
	return slices.Clone(t.Scaled[0])
}

// Candidates returns copies of the candidates' scaled vectors in input order.
func (t *Table) Candidates() [][]float64 {
	out := make([][]float64, 0, len(t.Scaled)-1)
	for _, row := range t.Scaled[1:] {
		out = append(out, slices.Clone(row))
	}
	return out
}

// CandidateIdentities returns the candidates' identities in input order.
func (t *Table) CandidateIdentities() []string {
	return slices.Clone(t.Identities[1:])
}

// OneHotColumns returns the indicator columns only.
func (t *Table) OneHotColumns() []string {
	return slices.Clone(t.Columns[len(NumericColumns):])
}
