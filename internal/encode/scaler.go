package encode

// MinMaxScaler maps each column linearly from its observed [min, max] onto [0, 1].
// A column whose min equals its max maps to 0 for every row.
type MinMaxScaler struct {
	Min []float64
	Max []float64
}

// FitMinMax computes per-column bounds over rows. All rows must share one width.
func FitMinMax(rows [][]float64) *MinMaxScaler {
	if len(rows) == 0 {
		return &MinMaxScaler{}
	}
	width := len(rows[0])
	s := &MinMaxScaler{
		Min: make([]float64, width),
		Max: make([]float64, width),
	}
	copy(s.Min, rows[0])
	copy(s.Max, rows[0])
	for _, row := range rows[1:] {
		for j := 0; j < width && j < len(row); j++ {
			s.Min[j] = min(s.Min[j], row[j])
			s.Max[j] = max(s.Max[j], row[j])
		}
	}
	return s
}

// Width returns the number of fitted columns.
func (s *MinMaxScaler) Width() int {
	return len(s.Min)
}

// Transform returns a scaled copy of row.
func (s *MinMaxScaler) Transform(row []float64) []float64 {
	out := make([]float64, s.Width())
	for j := range out {
		if j >= len(row) {
			break
		}
		span := s.Max[j] - s.Min[j]
		if span == 0 {
			continue
		}
		out[j] = (row[j] - s.Min[j]) / span
	}
	return out
}

// Inverse maps a scaled row back to original units. Constant columns
// return their single observed value.
func (s *MinMaxScaler) Inverse(row []float64) []float64 {
	out := make([]float64, s.Width())
	for j := range out {
		if j >= len(row) {
			out[j] = s.Min[j]
			continue
		}
		out[j] = s.Min[j] + row[j]*(s.Max[j]-s.Min[j])
	}
	return out
}
