package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates catalog entries.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindShow   Kind = "show"
	KindPerson Kind = "person"
)

// TrendingPopularityThreshold is the provider popularity above which items
// and people are flagged as trending.
const TrendingPopularityThreshold = 50.0

// YearTBA is the year shown for items without a parsable release date.
const YearTBA = "TBA"

// ParseKind accepts the application kinds plus the provider's "tv".
func ParseKind(value string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movie", "movies":
		return KindMovie, true
	case "show", "shows", "tv", "series":
		return KindShow, true
	case "person", "people":
		return KindPerson, true
	default:
		return "", false
	}
}

// ProviderPath returns the path segment the metadata provider uses for k.
func (k Kind) ProviderPath() string {
	if k == KindShow {
		return "tv"
	}
	return string(k)
}

// CatalogItem is the normalized movie/show record every view renders.
type CatalogItem struct {
	ID           int64    `json:"id"`
	Kind         Kind     `json:"kind"`
	Title        string   `json:"title"`
	Year         string   `json:"year"`
	ReleaseDate  string   `json:"releaseDate,omitempty"`
	Rating       float64  `json:"rating"`
	Popularity   float64  `json:"popularity"`
	Genres       []string `json:"genres"`
	MoodTags     []string `json:"moodTags"`
	PosterPath   string   `json:"posterPath,omitempty"`
	BackdropPath string   `json:"backdropPath,omitempty"`
	Overview     string   `json:"overview"`
	IsNew        bool     `json:"isNew"`
	IsTrending   bool     `json:"isTrending"`
}

// Key identifies the item across source lists and in the watchlist.
func (c CatalogItem) Key() string {
	return WatchlistKey(c.Kind, c.ID)
}

// PersonItem is the normalized record for cast, crew and trending people.
type PersonItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	ProfilePath string  `json:"profilePath,omitempty"`
	Department  string  `json:"department"`
	KnownFor    string  `json:"knownFor"`
	Popularity  float64 `json:"popularity"`
	IsTrending  bool    `json:"isTrending"`
}

// WatchlistKey builds the "{kind}-{id}" identity string.
func WatchlistKey(kind Kind, id int64) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

// ParseWatchlistKey splits a key produced by WatchlistKey.
func ParseWatchlistKey(key string) (Kind, int64, error) {
	idx := strings.LastIndex(key, "-")
	if idx <= 0 || idx == len(key)-1 {
		return "", 0, fmt.Errorf("malformed watchlist key %q", key)
	}
	kind, ok := ParseKind(key[:idx])
	if !ok || kind == KindPerson {
		return "", 0, fmt.Errorf("unknown kind in watchlist key %q", key)
	}
	id, err := strconv.ParseInt(key[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad id in watchlist key %q: %w", key, err)
	}
	return kind, id, nil
}
