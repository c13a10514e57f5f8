// Package recommend runs the comparable-property pipeline: feature
// extraction, encoding and scaling, weighted ranking and top-K assembly.
package recommend

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/comps-cli/internal/encode"
	"github.com/sells-group/comps-cli/internal/features"
	"github.com/sells-group/comps-cli/internal/model"
	"github.com/sells-group/comps-cli/internal/rank"
	"github.com/sells-group/comps-cli/internal/results"
)

// DefaultK is the number of recommendations returned when none is configured.
const DefaultK = 3

// Options configures a single run.
type Options struct {
	K        int
	Weights  rank.Weights
	Features features.Options
	// Now supplies the fallback effective date. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		K:       DefaultK,
		Weights: rank.DefaultWeights(),
	}
}

// Validate checks the options before a run.
func (o Options) Validate() error {
	if o.K <= 0 {
		return eris.Errorf("recommend: k must be a positive integer, got %d", o.K)
	}
	if o.Features.Concurrency < 0 {
		return eris.Errorf("recommend: concurrency must be >= 0, got %d", o.Features.Concurrency)
	}
	return rank.ValidateWeights(o.Weights)
}

// Result is everything one run produced.
type Result struct {
	RunID         string
	EffectiveYear int
	Subject       model.FeatureRecord
	Candidates    []model.FeatureRecord
	Table         *encode.Table
	Ranked        []rank.Distance
	// Rows holds the top K, including rows whose source record was not found.
	Rows []model.ResultRow
}

// Found returns the rows that resolved to a source record.
func (r *Result) Found() []model.ResultRow {
	return results.Found(r.Rows)
}

// Run ranks every candidate in ds against its subject and keeps the top K.
// An empty candidate pool is not an error.
func Run(ctx context.Context, ds *model.Dataset, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	res := &Result{RunID: uuid.New().String()}
	log := zap.L().With(zap.String("run_id", res.RunID))

	candidates := ds.Candidates()
	res.EffectiveYear = features.ResolveEffectiveYear(ds.Subject, candidates, now())
	log.Info("recommend: loaded dataset",
		zap.Int("properties", len(ds.Properties)),
		zap.Int("comps", len(ds.Comps)),
		zap.Int("effective_year", res.EffectiveYear),
	)

	res.Subject = features.ExtractSubject(ds.Subject, res.EffectiveYear, opts.Features)
	cands, err := features.ExtractAll(ctx, candidates, res.EffectiveYear, opts.Features)
	if err != nil {
		return nil, eris.Wrap(err, "recommend: extract features")
	}
	res.Candidates = cands

	res.Table = encode.Build(res.Subject, res.Candidates)
	log.Info("recommend: encoded features",
		zap.Strings("columns", res.Table.Columns),
		zap.String("reference_category", res.Table.Reference),
	)

	ranked, err := rank.Rank(
		res.Table.Subject(),
		res.Table.Candidates(),
		res.Table.CandidateIdentities(),
		res.Table.Columns,
		opts.Weights,
	)
	if err != nil {
		return nil, eris.Wrap(err, "recommend: rank candidates")
	}
	res.Ranked = ranked

	res.Rows = results.AssembleTopK(ranked, candidates, ds.Comps, opts.K)
	found := res.Found()
	if missing := len(res.Rows) - len(found); missing > 0 {
		log.Warn("recommend: ranked candidates without a matching record",
			zap.Int("missing", missing),
		)
	}
	log.Info("recommend: ranking complete",
		zap.Int("candidates", len(ranked)),
		zap.Int("returned", len(res.Rows)),
		zap.Int("found", len(found)),
	)

	return res, nil
}
