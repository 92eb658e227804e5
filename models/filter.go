package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cinecontext/internal/validation"
)

// Historical bounds for the year range filter.
const (
	MinFilterYear = 1900
	MaxFilterYear = 2100
)

// SortKey selects the listing order.
type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortRating     SortKey = "rating"
	SortYear       SortKey = "year"
	SortTitle      SortKey = "title"
)

// YearRange is inclusive on both ends.
type YearRange struct {
	Min int `json:"min" validate:"gte=1900,lte=2100"`
	Max int `json:"max" validate:"gte=1900,lte=2100,gtefield=Min"`
}

// FilterState holds the user's narrowing and ordering choices for a listing.
type FilterState struct {
	MediaTypes []Kind    `json:"mediaTypes" validate:"dive,oneof=movie show"`
	GenreIDs   []int64   `json:"genreIds" validate:"dive,gt=0"`
	YearRange  YearRange `json:"yearRange"`
	MinRating  float64   `json:"minRating" validate:"gte=0,lte=10"`
	SortKey    SortKey   `json:"sortKey" validate:"oneof=popularity rating year title"`
}

// DefaultFilterState shows everything ordered by popularity.
func DefaultFilterState() FilterState {
	return FilterState{
		MediaTypes: []Kind{KindMovie, KindShow},
		YearRange:  YearRange{Min: MinFilterYear, Max: MaxFilterYear},
		SortKey:    SortPopularity,
	}
}

func (f FilterState) Validate() error {
	return validation.Struct(f)
}

// AllowsKind reports whether kind is among the selected media types.
func (f FilterState) AllowsKind(kind Kind) bool {
	for _, k := range f.MediaTypes {
		if k == kind {
			return true
		}
	}
	return false
}

// FilterStateFromQuery reads a FilterState from URL parameters, starting
// from the defaults. List parameters may repeat or be comma separated:
//
//	types=movie,show genres=28,12 from=1990 to=2025 minRating=5 sort=rating
func FilterStateFromQuery(q url.Values) (FilterState, error) {
	f := DefaultFilterState()

	if q.Has("types") {
		f.MediaTypes = []Kind{}
		for _, part := range splitList(strings.Join(q["types"], ",")) {
			kind, ok := ParseKind(part)
			if !ok || kind == KindPerson {
				return f, fmt.Errorf("unknown media type %q", part)
			}
			f.MediaTypes = append(f.MediaTypes, kind)
		}
	}
	for _, part := range splitList(strings.Join(q["genres"], ",")) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return f, fmt.Errorf("bad genre id %q", part)
		}
		f.GenreIDs = append(f.GenreIDs, id)
	}
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("bad year %q", v)
		}
		f.YearRange.Min = year
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("bad year %q", v)
		}
		f.YearRange.Max = year
	}
	if v := strings.TrimSpace(q.Get("minRating")); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("bad rating %q", v)
		}
		f.MinRating = rating
	}
	if v := strings.TrimSpace(q.Get("sort")); v != "" {
		f.SortKey = SortKey(strings.ToLower(v))
	}

	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

// Query encodes f back into URL parameters accepted by FilterStateFromQuery.
func (f FilterState) Query() url.Values {
	q := url.Values{}
	kinds := make([]string, len(f.MediaTypes))
	for i, k := range f.MediaTypes {
		kinds[i] = string(k)
	}
	q.Set("types", strings.Join(kinds, ","))
	if len(f.GenreIDs) > 0 {
		ids := make([]string, len(f.GenreIDs))
		for i, id := range f.GenreIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		q.Set("genres", strings.Join(ids, ","))
	}
	q.Set("from", strconv.Itoa(f.YearRange.Min))
	q.Set("to", strconv.Itoa(f.YearRange.Max))
	if f.MinRating > 0 {
		q.Set("minRating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	q.Set("sort", string(f.SortKey))
	return q
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
