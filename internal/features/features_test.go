package features

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comps-cli/internal/model"
)

func raw(s string) model.RawProperty {
	return model.NewRawProperty([]byte(s))
}

var now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestResolveEffectiveYear(t *testing.T) {
	tests := []struct {
		name       string
		subject    string
		candidates []string
		want       int
	}{
		{"subject date", `{"effective_date":"2020-01-01"}`, []string{`{"effective_date":"2018-05-05"}`}, 2020},
		{"candidate fallback", `{}`, []string{`{}`, `{"effective_date":"2018-05-05"}`, `{"effective_date":"2017-01-01"}`}, 2018},
		{"invalid subject date falls through", `{"effective_date":"Jan 2020"}`, []string{`{"effective_date":"2019-02-02"}`}, 2019},
		{"current year", `{"effective_date":null}`, []string{`{"effective_date":"garbage"}`}, 2026},
		{"no candidates", `{}`, nil, 2026},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cands []model.RawProperty
			for _, c := range tt.candidates {
				cands = append(cands, raw(c))
			}
			assert.Equal(t, tt.want, ResolveEffectiveYear(raw(tt.subject), cands, now))
		})
	}
}

func TestExtractSubject(t *testing.T) {
	subject := raw(`{"id":"S-9","gla":"1500 SqFt","room_total":3,"year_built":"1990","structure_type":"Detached","effective_date":"2020-01-01"}`)

	got := ExtractSubject(subject, 2020, Options{})
	assert.Equal(t, model.FeatureRecord{
		Identity:      "subject",
		GLA:           1500,
		Rooms:         3,
		Age:           30,
		StructureType: "Detached",
	}, got)
}

func TestExtract_MissingFieldsDefault(t *testing.T) {
	got := Extract(raw(`{"id":"B","gla":null,"year_built":null}`), 4, 2020, CandidateIdentity, Options{})
	assert.Equal(t, model.FeatureRecord{
		Identity:      "B",
		GLA:           0,
		Rooms:         0,
		Age:           0,
		StructureType: model.UnknownStructureType,
	}, got)
}

func TestExtract_NegativeAge(t *testing.T) {
	p := raw(`{"year_built":2030}`)

	assert.Equal(t, -10, Extract(p, 0, 2020, CandidateIdentity, Options{}).Age)
	assert.Equal(t, 0, Extract(p, 0, 2020, CandidateIdentity, Options{ClampNegativeAge: true}).Age)
}

func TestCandidateIdentity(t *testing.T) {
	assert.Equal(t, "A", CandidateIdentity(0, raw(`{"id":"A"}`)))
	assert.Equal(t, "17", CandidateIdentity(0, raw(`{"id":17}`)))
	assert.Equal(t, "property_3", CandidateIdentity(3, raw(`{"gla":"900"}`)))
	assert.Equal(t, "property_5", CandidateIdentity(5, raw(`{"id":""}`)))
	assert.Equal(t, "subject", SubjectIdentity(3, raw(`{"id":"A"}`)))
}

func TestExtractAll_PreservesOrder(t *testing.T) {
	var cands []model.RawProperty
	for i := range 50 {
		if i%3 == 0 {
			cands = append(cands, raw(fmt.Sprintf(`{"gla":"%d"}`, 1000+i)))
			continue
		}
		cands = append(cands, raw(fmt.Sprintf(`{"id":"c%d","gla":"%d","room_total":%d}`, i, 1000+i, i%7)))
	}

	sequential, err := ExtractAll(context.Background(), cands, 2020, Options{})
	require.NoError(t, err)
	parallel, err := ExtractAll(context.Background(), cands, 2020, Options{Concurrency: 8})
	require.NoError(t, err)

	require.Len(t, sequential, 50)
	assert.Equal(t, sequential, parallel)
	assert.Equal(t, "property_0", sequential[0].Identity)
	assert.Equal(t, "c1", sequential[1].Identity)
	assert.InDelta(t, 1049.0, sequential[49].GLA, 1e-9)
}

func TestExtractAll_Empty(t *testing.T) {
	got, err := ExtractAll(context.Background(), nil, 2020, Options{Concurrency: 4})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractAll(ctx, []model.RawProperty{raw(`{}`)}, 2020, Options{})
	assert.Error(t, err)
}
