package rank

import (
	"fmt"
	"maps"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/comps-cli/internal/encode"
)

// Default per-column importance.
const (
	DefaultNumericWeight  = 1.0
	DefaultCategoryWeight = 0.2
)

// Weights maps feature columns to importance. Columns without an override use
// DefaultNumericWeight for gla/rooms/age and CategoryDefault for one-hot columns.
type Weights struct {
	Overrides       map[string]float64 `yaml:"weights" mapstructure:"weights"`
	CategoryDefault float64            `yaml:"category_weight" mapstructure:"category_weight"`
}

// DefaultWeights returns weights with no overrides.
func DefaultWeights() Weights {
	return Weights{CategoryDefault: DefaultCategoryWeight}
}

// For returns the weight applied to column. Overrides match exactly first,
// then case-insensitively, since config loaders may lowercase keys.
func (w Weights) For(column string) float64 {
	return w.lookup(column, nil)
}

// Vector returns the weights for columns in order. An override whose key is
// itself one of columns applies to that column only and never falls back to
// a column differing in case.
func (w Weights) Vector(columns []string) []float64 {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	out := make([]float64, len(columns))
	for i, c := range columns {
		out[i] = w.lookup(c, present)
	}
	return out
}

func (w Weights) lookup(column string, claimed map[string]bool) float64 {
	if v, ok := w.Overrides[column]; ok {
		return v
	}
	for _, name := range slices.Sorted(maps.Keys(w.Overrides)) {
		if claimed[name] {
			continue
		}
		if strings.EqualFold(name, column) {
			return w.Overrides[name]
		}
	}
	if encode.IsCategoryColumn(column) {
		return w.CategoryDefault
	}
	return DefaultNumericWeight
}

// Merge returns a copy of w with overrides layered on top. A non-nil
// categoryDefault replaces the category default.
func (w Weights) Merge(overrides map[string]float64, categoryDefault *float64) Weights {
	out := Weights{
		Overrides:       make(map[string]float64, len(w.Overrides)+len(overrides)),
		CategoryDefault: w.CategoryDefault,
	}
	maps.Copy(out.Overrides, w.Overrides)
	maps.Copy(out.Overrides, overrides)
	if categoryDefault != nil {
		out.CategoryDefault = *categoryDefault
	}
	return out
}

// weightsFile is the on-disk YAML layout.
type weightsFile struct {
	CategoryWeight *float64           `yaml:"category_weight"`
	Weights        map[string]float64 `yaml:"weights"`
}

// LoadWeights reads a YAML weight file and layers it on top of base.
//
//	category_weight: 0.2
//	weights:
//	  gla: 1.5
//	  structure_type_Townhouse: 0.5
func LoadWeights(path string, base Weights) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, eris.Wrapf(err, "rank: read weights %s", path)
	}

	var f weightsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, eris.Wrap(err, "rank: parse weights")
	}

	w := base.Merge(f.Weights, f.CategoryWeight)
	if err := ValidateWeights(w); err != nil {
		return base, err
	}
	return w, nil
}

// ValidateWeights checks that every weight is finite and non-negative.
func ValidateWeights(w Weights) error {
	var errs []string

	if !validWeight(w.CategoryDefault) {
		errs = append(errs, fmt.Sprintf("category_weight must be a finite number >= 0, got %v", w.CategoryDefault))
	}
	for _, name := range slices.Sorted(maps.Keys(w.Overrides)) {
		if v := w.Overrides[name]; !validWeight(v) {
			errs = append(errs, fmt.Sprintf("%s must be a finite number >= 0, got %v", name, v))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("rank: weight validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validWeight(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
