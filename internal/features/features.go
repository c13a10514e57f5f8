// Package features builds one FeatureRecord per property from raw listing records.
package features

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/comps-cli/internal/model"
	"github.com/sells-group/comps-cli/internal/parse"
)

// Options controls feature extraction.
type Options struct {
	// ClampNegativeAge floors ages derived from a future construction year at 0.
	ClampNegativeAge bool
	// Concurrency bounds parallel candidate extraction. Values <= 1 run sequentially.
	Concurrency int
}

// IdentityFunc names the property at index i of its input list.
type IdentityFunc func(i int, p model.RawProperty) string

// SubjectIdentity always names the subject "subject".
func SubjectIdentity(int, model.RawProperty) string {
	return model.SubjectIdentity
}

// CandidateIdentity uses the record's id, or "property_<i>" when it has none.
// The placeholder depends only on the position in the candidate pool.
func CandidateIdentity(i int, p model.RawProperty) string {
	if id, ok := p.ID(); ok {
		return id
	}
	return fmt.Sprintf("property_%d", i)
}

// ResolveEffectiveYear picks the single year used for age resolution: the
// subject's effective_date, else the first candidate with a valid one, else
// the year of now.
func ResolveEffectiveYear(subject model.RawProperty, candidates []model.RawProperty, now time.Time) int {
	if t, ok := parse.Date(subject.Text(model.FieldEffectiveDate)); ok {
		return t.Year()
	}
	for _, c := range candidates {
		if t, ok := parse.Date(c.Text(model.FieldEffectiveDate)); ok {
			zap.L().Debug("features: effective date taken from candidate",
				zap.String("candidate", c.Text(model.FieldID)),
				zap.Int("year", t.Year()),
			)
			return t.Year()
		}
	}
	return now.Year()
}

// Extract builds the FeatureRecord for p.
func Extract(p model.RawProperty, i int, effectiveYear int, identify IdentityFunc, opts Options) model.FeatureRecord {
	age := parse.Age(p.Text(model.FieldYearBuilt), effectiveYear)
	if age < 0 && opts.ClampNegativeAge {
		age = 0
	}
	return model.FeatureRecord{
		Identity:      identify(i, p),
		GLA:           parse.Area(p.Text(model.FieldGLA)),
		Rooms:         parse.Rooms(p.Text(model.FieldRoomTotal)),
		Age:           age,
		StructureType: parse.StructureType(p.Text(model.FieldStructureType)),
	}
}

// ExtractSubject builds the subject's FeatureRecord.
func ExtractSubject(subject model.RawProperty, effectiveYear int, opts Options) model.FeatureRecord {
	return Extract(subject, 0, effectiveYear, SubjectIdentity, opts)
}

// ExtractAll builds FeatureRecords for every candidate, preserving input order.
func ExtractAll(ctx context.Context, candidates []model.RawProperty, effectiveYear int, opts Options) ([]model.FeatureRecord, error) {
	out := make([]model.FeatureRecord, len(candidates))

	if opts.Concurrency <= 1 {
		for i, c := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, eris.Wrap(err, "features: context cancelled")
			}
			out[i] = Extract(c, i, effectiveYear, CandidateIdentity, opts)
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = Extract(c, i, effectiveYear, CandidateIdentity, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "features: extract candidates")
	}
	return out, nil
}
