// Package results maps ranked distances back to source records and writes
// them out as CSV and console tables.
package results

import (
	"strings"

	"github.com/sells-group/comps-cli/internal/model"
	"github.com/sells-group/comps-cli/internal/rank"
)

// AssembleTopK keeps the first min(k, len(ranked)) distances and resolves
// each to its source record by id (first match). A distance whose record
// cannot be found still occupies its rank but carries no details. IsComp is
// true when the identity matches an id in comps.
func AssembleTopK(ranked []rank.Distance, candidates []model.RawProperty, comps []model.RawProperty, k int) []model.ResultRow {
	n := min(max(k, 0), len(ranked))
	out := make([]model.ResultRow, 0, n)

	byID := indexByID(candidates)
	compIDs := make(map[string]struct{}, len(comps))
	for _, c := range comps {
		if id, ok := c.ID(); ok {
			compIDs[normalizeID(id)] = struct{}{}
		}
	}

	for i, d := range ranked[:n] {
		key := normalizeID(d.Identity)
		row := model.ResultRow{
			Rank:     i + 1,
			Identity: d.Identity,
			Distance: d.Value,
		}
		if idx, ok := byID[key]; ok {
			p := candidates[idx]
			row.Details = &p
			row.Address = p.Address()
		}
		_, row.IsComp = compIDs[key]
		out = append(out, row)
	}
	return out
}

// Found returns the rows that resolved to a source record.
func Found(rows []model.ResultRow) []model.ResultRow {
	var out []model.ResultRow
	for _, r := range rows {
		if r.Found() {
			out = append(out, r)
		}
	}
	return out
}

func indexByID(records []model.RawProperty) map[string]int {
	out := make(map[string]int, len(records))
	for i, r := range records {
		id, ok := r.ID()
		if !ok {
			continue
		}
		key := normalizeID(id)
		if _, dup := out[key]; !dup {
			out[key] = i
		}
	}
	return out
}

func normalizeID(id string) string {
	return strings.TrimSpace(id)
}
