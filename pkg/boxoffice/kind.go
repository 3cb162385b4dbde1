package boxoffice

import (
	"fmt"
	"strings"
)

// Kind identifies a box office query and is passed as the script subcommand.
type Kind string

// Supported query kinds.
const (
	KindDaily     Kind = "daily"
	KindWeekend   Kind = "weekend"
	KindWeekly    Kind = "weekly"
	KindMonthly   Kind = "monthly"
	KindSeasonal  Kind = "seasonal"
	KindQuarterly Kind = "quarterly"
	KindYearly    Kind = "yearly"
)

// Query parameter names.
const (
	ParamDate    = "date"
	ParamYear    = "year"
	ParamWeek    = "week"
	ParamMonth   = "month"
	ParamSeason  = "season"
	ParamQuarter = "quarter"
)

var kindParams = map[Kind][]string{
	KindDaily:     {ParamDate},
	KindWeekend:   {ParamYear, ParamWeek},
	KindWeekly:    {ParamYear, ParamWeek},
	KindMonthly:   {ParamYear, ParamMonth},
	KindSeasonal:  {ParamYear, ParamSeason},
	KindQuarterly: {ParamYear, ParamQuarter},
	KindYearly:    {ParamYear},
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid query kind: %s", s)
	}
	return k, nil
}

// IsValid reports whether k is a supported kind.
func (k Kind) IsValid() bool {
	_, ok := kindParams[k]
	return ok
}

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Params returns the parameter names the kind requires, in the order they
// appear in error messages.
func (k Kind) Params() []string {
	return append([]string(nil), kindParams[k]...)
}

// GetKinds returns all supported kinds from finest to coarsest period.
func GetKinds() []string {
	return []string{
		string(KindDaily),
		string(KindWeekend),
		string(KindWeekly),
		string(KindMonthly),
		string(KindSeasonal),
		string(KindQuarterly),
		string(KindYearly),
	}
}

// Season is a calendar season accepted by seasonal queries.
type Season string

// Supported seasons.
const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// ParseSeason parses a string into a Season.
func ParseSeason(s string) (Season, error) {
	switch Season(strings.ToLower(strings.TrimSpace(s))) {
	case SeasonSpring:
		return SeasonSpring, nil
	case SeasonSummer:
		return SeasonSummer, nil
	case SeasonFall:
		return SeasonFall, nil
	case SeasonWinter:
		return SeasonWinter, nil
	default:
		return "", fmt.Errorf("invalid season: %s", s)
	}
}

// GetSeasons returns all supported seasons in calendar order.
func GetSeasons() []string {
	return []string{
		string(SeasonSpring),
		string(SeasonSummer),
		string(SeasonFall),
		string(SeasonWinter),
	}
}
