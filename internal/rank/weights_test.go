package rank

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeights_For(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 1.0, w.For("gla"))
	assert.Equal(t, 1.0, w.For("rooms"))
	assert.Equal(t, 1.0, w.For("age"))
	assert.Equal(t, 0.2, w.For("structure_type_Condo"))

	w = w.Merge(map[string]float64{"age": 0.5, "structure_type_Condo": 0.9}, nil)
	assert.Equal(t, 0.5, w.For("age"))
	assert.Equal(t, 0.9, w.For("structure_type_Condo"))
	assert.Equal(t, 0.2, w.For("structure_type_Townhouse"))
}

func TestWeights_ForCaseInsensitiveFallback(t *testing.T) {
	w := DefaultWeights().Merge(map[string]float64{"structure_type_semi detached": 0.9, "structure_type_Condo": 0.1}, nil)
	assert.Equal(t, 0.9, w.For("structure_type_Semi Detached"))
	assert.Equal(t, 0.1, w.For("structure_type_Condo"))
	assert.Equal(t, 0.1, w.For("structure_type_condo"))
}

func TestWeights_Vector(t *testing.T) {
	w := DefaultWeights().Merge(map[string]float64{"rooms": 2}, nil)
	assert.Equal(t, []float64{1, 2, 1, 0.2}, w.Vector([]string{"gla", "rooms", "age", "structure_type_X"}))
}

func TestWeights_VectorExactColumnClaimsOverride(t *testing.T) {
	w := DefaultWeights().Merge(map[string]float64{"structure_type_detached": 0.9}, nil)

	both := w.Vector([]string{"gla", "structure_type_Detached", "structure_type_detached"})
	assert.Equal(t, []float64{1, 0.2, 0.9}, both)

	alone := w.Vector([]string{"gla", "structure_type_Detached"})
	assert.Equal(t, []float64{1, 0.9}, alone)
}

func TestWeights_MergeDoesNotMutate(t *testing.T) {
	base := DefaultWeights().Merge(map[string]float64{"gla": 2}, nil)
	cat := 0.7
	merged := base.Merge(map[string]float64{"gla": 5}, &cat)

	assert.Equal(t, 2.0, base.For("gla"))
	assert.Equal(t, 0.2, base.CategoryDefault)
	assert.Equal(t, 5.0, merged.For("gla"))
	assert.Equal(t, 0.7, merged.CategoryDefault)
}

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, ValidateWeights(DefaultWeights()))

	err := ValidateWeights(Weights{
		CategoryDefault: -1,
		Overrides:       map[string]float64{"gla": math.NaN(), "age": math.Inf(1), "rooms": 0},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category_weight")
	assert.Contains(t, err.Error(), "gla")
	assert.Contains(t, err.Error(), "age")
	assert.NotContains(t, err.Error(), "rooms")
}

func TestLoadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
category_weight: 0.4
weights:
  gla: 1.5
  structure_type_Townhouse: 0.05
`), 0o644))

	base := DefaultWeights().Merge(map[string]float64{"gla": 9, "rooms": 3}, nil)
	w, err := LoadWeights(path, base)
	require.NoError(t, err)

	assert.Equal(t, 1.5, w.For("gla"))
	assert.Equal(t, 3.0, w.For("rooms"))
	assert.Equal(t, 0.05, w.For("structure_type_Townhouse"))
	assert.Equal(t, 0.4, w.For("structure_type_Condo"))
}

func TestLoadWeights_KeepsCategoryDefaultWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights:\n  age: 2\n"), 0o644))

	w, err := LoadWeights(path, DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, 0.2, w.CategoryDefault)
	assert.Equal(t, 2.0, w.For("age"))
}

func TestLoadWeights_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadWeights(filepath.Join(dir, "missing.yaml"), DefaultWeights())
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("weights: [1, 2"), 0o644))
	_, err = LoadWeights(bad, DefaultWeights())
	assert.Error(t, err)

	negative := filepath.Join(dir, "negative.yaml")
	require.NoError(t, os.WriteFile(negative, []byte("weights:\n  gla: -1\n"), 0o644))
	_, err = LoadWeights(negative, DefaultWeights())
	assert.Error(t, err)
}
