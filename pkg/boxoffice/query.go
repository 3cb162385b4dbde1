package boxoffice

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/boxoffice-api/boxoffice/pkg/errors"
)

// DateLayout is the layout of daily query dates.
const DateLayout = "2006-01-02"

// Year bounds accepted by every year-based query.
const (
	MinYear = 1900
	MaxYear = 9999
)

// Query is a single box office lookup. Only the fields used by Kind are read.
type Query struct {
	Kind    Kind
	Date    string
	Year    int
	Week    int
	Month   int
	Season  Season
	Quarter int
}

// ParseQueryFromRequest parses a query of the given kind from HTTP query parameters.
func ParseQueryFromRequest(kind Kind, r *http.Request) (*Query, error) {
	if r == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	return ParseQueryFromValues(kind, r.URL.Query())
}

// ParseQueryFromValues parses and validates a query of the given kind from URL values.
// Missing parameters are reported together, e.g. "Year and week parameters are required".
func ParseQueryFromValues(kind Kind, values url.Values) (*Query, error) {
	if !kind.IsValid() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid query kind: %s", kind),
			map[string]any{"supported": GetKinds()})
	}

	params := kind.Params()
	for _, p := range params {
		if strings.TrimSpace(values.Get(p)) == "" {
			return nil, missingParams(params)
		}
	}

	q := &Query{Kind: kind}
	for _, p := range params {
		raw := strings.TrimSpace(values.Get(p))
		var err error
		switch p {
		case ParamDate:
			q.Date = raw
		case ParamYear:
			q.Year, err = parseInt(p, raw)
		case ParamWeek:
			q.Week, err = parseInt(p, raw)
		case ParamMonth:
			q.Month, err = parseInt(p, raw)
		case ParamQuarter:
			q.Quarter, err = parseInt(p, raw)
		case ParamSeason:
			q.Season = Season(strings.ToLower(raw))
		}
		if err != nil {
			return nil, err
		}
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks that every parameter required by the query kind is present
// and within range.
func (q *Query) Validate() error {
	if q == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "query cannot be nil")
	}
	if !q.Kind.IsValid() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid query kind: %s", q.Kind),
			map[string]any{"supported": GetKinds()})
	}

	params := q.Kind.Params()
	for _, p := range params {
		if !q.has(p) {
			return missingParams(params)
		}
	}

	for _, p := range params {
		if err := q.check(p); err != nil {
			return err
		}
	}
	return nil
}

// Args returns the script arguments for the query: the kind followed by its
// positional parameters.
func (q *Query) Args() ([]string, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	year := strconv.Itoa(q.Year)
	switch q.Kind {
	case KindDaily:
		return []string{q.Kind.String(), q.Date}, nil
	case KindWeekend, KindWeekly:
		return []string{q.Kind.String(), year, strconv.Itoa(q.Week)}, nil
	case KindMonthly:
		return []string{q.Kind.String(), year, strconv.Itoa(q.Month)}, nil
	case KindSeasonal:
		return []string{q.Kind.String(), year, string(q.Season)}, nil
	case KindQuarterly:
		// The script reads the quarter before the year.
		return []string{q.Kind.String(), strconv.Itoa(q.Quarter), year}, nil
	case KindYearly:
		return []string{q.Kind.String(), year}, nil
	default:
		return nil, fmt.Errorf("unhandled query kind: %s", q.Kind)
	}
}

func (q *Query) has(param string) bool {
	switch param {
	case ParamDate:
		return strings.TrimSpace(q.Date) != ""
	case ParamYear:
		return q.Year != 0
	case ParamWeek:
		return q.Week != 0
	case ParamMonth:
		return q.Month != 0
	case ParamSeason:
		return q.Season != ""
	case ParamQuarter:
		return q.Quarter != 0
	default:
		return false
	}
}

func (q *Query) check(param string) error {
	switch param {
	case ParamDate:
		if _, err := time.Parse(DateLayout, q.Date); err != nil {
			return invalidParam(param, q.Date, "must be a date in YYYY-MM-DD format")
		}
	case ParamYear:
		if q.Year < MinYear || q.Year > MaxYear {
			return invalidParam(param, q.Year, fmt.Sprintf("must be between %d and %d", MinYear, MaxYear))
		}
	case ParamWeek:
		if q.Week < 1 || q.Week > 53 {
			return invalidParam(param, q.Week, "must be between 1 and 53")
		}
	case ParamMonth:
		if q.Month < 1 || q.Month > 12 {
			return invalidParam(param, q.Month, "must be between 1 and 12")
		}
	case ParamQuarter:
		if q.Quarter < 1 || q.Quarter > 4 {
			return invalidParam(param, q.Quarter, "must be between 1 and 4")
		}
	case ParamSeason:
		if _, err := ParseSeason(string(q.Season)); err != nil {
			return invalidParam(param, q.Season,
				fmt.Sprintf("must be one of %s", strings.Join(GetSeasons(), ", ")))
		}
	}
	return nil
}

func parseInt(param, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam(param, raw, "must be an integer")
	}
	return n, nil
}

func invalidParam(param string, value any, reason string) error {
	return errors.NewWithContext(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid %s %q: %s", param, fmt.Sprint(value), reason),
		map[string]any{"parameter": param})
}

// missingParams builds the error for absent parameters, e.g.
// "Date parameter is required" or "Year and week parameters are required".
func missingParams(params []string) error {
	var msg string
	switch len(params) {
	case 1:
		msg = fmt.Sprintf("%s parameter is required", capitalize(params[0]))
	default:
		head := strings.Join(params[:len(params)-1], ", ")
		msg = fmt.Sprintf("%s and %s parameters are required",
			capitalize(head), params[len(params)-1])
	}
	return errors.NewWithContext(errors.ErrCodeInvalidRequest, msg,
		map[string]any{"required": params})
}

// capitalize title-cases the first word of s. Casers are stateful, so one is
// built per call.
func capitalize(s string) string {
	first, rest, found := strings.Cut(s, " ")
	first = cases.Title(language.English).String(first)
	if !found {
		return first
	}
	return first + " " + rest
}
