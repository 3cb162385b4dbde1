package boxoffice

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxoffice-api/boxoffice/pkg/errors"
)

func TestParseKind(t *testing.T) {
	for _, k := range GetKinds() {
		got, err := ParseKind(k)
		require.NoError(t, err)
		assert.Equal(t, Kind(k), got)
	}

	got, err := ParseKind(" Daily ")
	require.NoError(t, err)
	assert.Equal(t, KindDaily, got)

	_, err = ParseKind("hourly")
	assert.Error(t, err)
}

func TestParseSeason(t *testing.T) {
	for _, s := range GetSeasons() {
		got, err := ParseSeason(s)
		require.NoError(t, err)
		assert.Equal(t, Season(s), got)
	}

	_, err := ParseSeason("autumn")
	assert.Error(t, err)
}

func TestParseQueryFromValues_Args(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		values url.Values
		want   []string
	}{
		{
			name:   "daily",
			kind:   KindDaily,
			values: url.Values{"date": {"2024-03-20"}},
			want:   []string{"daily", "2024-03-20"},
		},
		{
			name:   "weekend",
			kind:   KindWeekend,
			values: url.Values{"year": {"2024"}, "week": {"12"}},
			want:   []string{"weekend", "2024", "12"},
		},
		{
			name:   "weekly",
			kind:   KindWeekly,
			values: url.Values{"year": {"2024"}, "week": {"1"}},
			want:   []string{"weekly", "2024", "1"},
		},
		{
			name:   "monthly",
			kind:   KindMonthly,
			values: url.Values{"year": {"2023"}, "month": {"12"}},
			want:   []string{"monthly", "2023", "12"},
		},
		{
			name:   "seasonal lowercases season",
			kind:   KindSeasonal,
			values: url.Values{"year": {"2024"}, "season": {"Summer"}},
			want:   []string{"seasonal", "2024", "summer"},
		},
		{
			name:   "quarterly passes quarter before year",
			kind:   KindQuarterly,
			values: url.Values{"year": {"2024"}, "quarter": {"2"}},
			want:   []string{"quarterly", "2", "2024"},
		},
		{
			name:   "yearly",
			kind:   KindYearly,
			values: url.Values{"year": {"2019"}},
			want:   []string{"yearly", "2019"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQueryFromValues(tt.kind, tt.values)
			require.NoError(t, err)

			args, err := q.Args()
			require.NoError(t, err)
			assert.Equal(t, tt.want, args)
		})
	}
}

func TestParseQueryFromValues_Missing(t *testing.T) {
	tests := []struct {
		kind   Kind
		values url.Values
		want   string
	}{
		{KindDaily, url.Values{}, "Date parameter is required"},
		{KindWeekend, url.Values{"year": {"2024"}}, "Year and week parameters are required"},
		{KindWeekly, url.Values{"week": {"3"}}, "Year and week parameters are required"},
		{KindMonthly, url.Values{}, "Year and month parameters are required"},
		{KindSeasonal, url.Values{"season": {"fall"}}, "Year and season parameters are required"},
		{KindQuarterly, url.Values{"year": {"2024"}, "quarter": {" "}}, "Year and quarter parameters are required"},
		{KindYearly, url.Values{}, "Year parameter is required"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			_, err := ParseQueryFromValues(tt.kind, tt.values)
			require.Error(t, err)

			se, ok := errors.As(err)
			require.True(t, ok, "expected structured error, got %T", err)
			assert.Equal(t, errors.ErrCodeInvalidRequest, se.Code)
			assert.Equal(t, tt.want, se.Message)
		})
	}
}

func TestParseQueryFromValues_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		values url.Values
		param  string
	}{
		{"bad date", KindDaily, url.Values{"date": {"03/20/2024"}}, ParamDate},
		{"impossible date", KindDaily, url.Values{"date": {"2024-02-30"}}, ParamDate},
		{"non-numeric year", KindYearly, url.Values{"year": {"twenty"}}, ParamYear},
		{"year out of range", KindYearly, url.Values{"year": {"1800"}}, ParamYear},
		{"week out of range", KindWeekly, url.Values{"year": {"2024"}, "week": {"54"}}, ParamWeek},
		{"month out of range", KindMonthly, url.Values{"year": {"2024"}, "month": {"13"}}, ParamMonth},
		{"quarter out of range", KindQuarterly, url.Values{"year": {"2024"}, "quarter": {"5"}}, ParamQuarter},
		{"unknown season", KindSeasonal, url.Values{"year": {"2024"}, "season": {"autumn"}}, ParamSeason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQueryFromValues(tt.kind, tt.values)
			require.Error(t, err)

			se, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeInvalidRequest, se.Code)
			assert.Equal(t, tt.param, se.Context["parameter"])
		})
	}
}

func TestParseQueryFromValues_InvalidKind(t *testing.T) {
	_, err := ParseQueryFromValues(Kind("hourly"), url.Values{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestParseQueryFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/monthly?year=2024&month=3", nil)

	q, err := ParseQueryFromRequest(KindMonthly, r)
	require.NoError(t, err)
	assert.Equal(t, 2024, q.Year)
	assert.Equal(t, 3, q.Month)

	_, err = ParseQueryFromRequest(KindMonthly, nil)
	assert.Error(t, err)
}

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   *Query
		wantErr bool
	}{
		{"nil query", nil, true},
		{"unknown kind", &Query{Kind: "hourly"}, true},
		{"valid yearly", &Query{Kind: KindYearly, Year: 2024}, false},
		{"yearly ignores unrelated fields", &Query{Kind: KindYearly, Year: 2024, Month: 99}, false},
		{"missing quarter", &Query{Kind: KindQuarterly, Year: 2024}, true},
		{"valid seasonal", &Query{Kind: KindSeasonal, Year: 2024, Season: SeasonWinter}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKindParams(t *testing.T) {
	assert.Equal(t, []string{ParamYear, ParamQuarter}, KindQuarterly.Params())
	assert.Empty(t, Kind("hourly").Params())

	// Params returns a copy.
	p := KindDaily.Params()
	p[0] = "mutated"
	assert.Equal(t, []string{ParamDate}, KindDaily.Params())
}
