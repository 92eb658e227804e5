package catalog

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"

	"cinecontext/models"
	"cinecontext/services/metadata"
)

// OverviewPlaceholder replaces a missing overview.
const OverviewPlaceholder = "No overview available."

// UntitledPlaceholder replaces a missing title or name.
const UntitledPlaceholder = "Untitled"

// Source names the endpoint family a record was fetched from. It drives the
// IsNew and IsTrending flags.
type Source string

const (
	SourceTrending   Source = "trending"
	SourcePopular    Source = "popular"
	SourceTopRated   Source = "top_rated"
	SourceUpcoming   Source = "upcoming"
	SourceNowPlaying Source = "now_playing"
	SourceSearch     Source = "search"
	SourceDetail     Source = "detail"
	SourceCredits    Source = "credits"
)

// IsMovieRecord reports whether raw has the movie shape: both a title and a
// release_date field, regardless of their values.
func IsMovieRecord(raw metadata.RawRecord) bool {
	return raw.Title != nil && raw.ReleaseDate != nil
}

// Tag decides a record's kind once. A provider media_type wins, then the
// endpoint hint, then the record's shape.
func Tag(raw metadata.RawRecord, hint models.Kind) metadata.Tagged {
	switch raw.MediaType {
	case "movie":
		return metadata.Tagged{Kind: models.KindMovie, Record: raw}
	case "tv":
		return metadata.Tagged{Kind: models.KindShow, Record: raw}
	case "person":
		return metadata.Tagged{Kind: models.KindPerson, Record: raw}
	}
	switch hint {
	case models.KindMovie, models.KindShow, models.KindPerson:
		return metadata.Tagged{Kind: hint, Record: raw}
	}
	if IsMovieRecord(raw) {
		return metadata.Tagged{Kind: models.KindMovie, Record: raw}
	}
	return metadata.Tagged{Kind: models.KindShow, Record: raw}
}

// TagAll tags every record of a list with the same endpoint hint.
func TagAll(records []metadata.RawRecord, hint models.Kind) []metadata.Tagged {
	out := make([]metadata.Tagged, len(records))
	for i, raw := range records {
		out[i] = Tag(raw, hint)
	}
	return out
}

func TitleOf(t metadata.Tagged) string {
	if t.Kind == models.KindMovie {
		return deref(t.Record.Title)
	}
	return deref(t.Record.Name)
}

func DateOf(t metadata.Tagged) string {
	switch t.Kind {
	case models.KindMovie:
		return deref(t.Record.ReleaseDate)
	case models.KindShow:
		return deref(t.Record.FirstAirDate)
	default:
		return ""
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01", "2006"}

// parseDate returns the parsed time and the layout that matched.
func parseDate(date string) (time.Time, string, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, layout, true
		}
	}
	return time.Time{}, "", false
}

// YearOf returns the 4-digit year of an ISO date, or "TBA".
func YearOf(date string) string {
	t, _, ok := parseDate(date)
	if !ok {
		return models.YearTBA
	}
	return t.Format("2006")
}

// RatingOf rounds to one decimal place, half-up on the shortest decimal
// form of x, so 7.05 gives 7.1 even though the float is below 7.05.
// Negative values round away from zero. Out-of-range values pass through.
func RatingOf(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= 1e15 {
		return x
	}
	neg := x < 0
	digits := strconv.FormatFloat(math.Abs(x), 'f', -1, 64)
	whole, frac, _ := strings.Cut(digits, ".")
	if len(frac) <= 1 {
		return x
	}
	tenths, err := strconv.ParseInt(whole+frac[:1], 10, 64)
	if err != nil {
		return x
	}
	if frac[1] >= '5' {
		tenths++
	}
	if tenths == 0 {
		return 0
	}
	if neg {
		tenths = -tenths
	}
	return float64(tenths) / 10
}

type moodRule struct {
	tag      string
	keywords []string
}

var moodRules = []moodRule{
	{tag: "Romance", keywords: []string{"love", "romance"}},
	{tag: "Family", keywords: []string{"family"}},
	{tag: "Epic", keywords: []string{"war", "battle", "epic"}},
	{tag: "Dark", keywords: []string{"murder", "crime", "killer"}},
	{tag: "Heartwarming", keywords: []string{"friend"}},
	{tag: "Mind-bending", keywords: []string{"space", "future", "alien"}},
	{tag: "Spooky", keywords: []string{"ghost", "haunt", "horror"}},
	{tag: "Funny", keywords: []string{"comedy", "funny", "laugh"}},
}

// MaxMoodTags caps MoodTagsOf.
const MaxMoodTags = 3

// MoodTagsOf derives up to three mood tags from an overview. Keywords are
// matched as substrings of the ASCII-folded, lower-cased text.
func MoodTagsOf(overview string, kind models.Kind) []string {
	text := strings.ToLower(unidecode.Unidecode(overview))
	tags := make([]string, 0, MaxMoodTags)
	for _, rule := range moodRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, rule.tag)
				break
			}
		}
		if len(tags) == MaxMoodTags {
			break
		}
	}
	if len(tags) == 0 {
		if kind == models.KindShow {
			return []string{"Binge-worthy"}
		}
		return []string{"Cinematic"}
	}
	return tags
}

// Truncate shortens text to at most limit runes plus "...". A non-positive
// limit leaves text unchanged.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:limit]), " \t\n,.;:") + "..."
}

// ToCatalogItem converts a tagged movie or show record into the display
// shape. Genres come from the record's genre objects when present, else
// from its genre ids via the table.
func ToCatalogItem(t metadata.Tagged, genres GenreTable, source Source) models.CatalogItem {
	raw := t.Record
	title := strings.TrimSpace(TitleOf(t))
	if title == "" {
		title = firstNonEmpty(raw.OriginalTitle, raw.OriginalName, UntitledPlaceholder)
	}
	overview := strings.TrimSpace(raw.Overview)
	if overview == "" {
		overview = OverviewPlaceholder
	}

	var names []string
	if len(raw.Genres) > 0 {
		names = make([]string, 0, len(raw.Genres))
		for _, g := range raw.Genres {
			names = append(names, g.Name)
		}
	} else {
		names = genres.Names(raw.GenreIDs)
	}

	date := DateOf(t)
	popularity := math.Max(raw.Popularity, 0)
	return models.CatalogItem{
		ID:           raw.ID,
		Kind:         t.Kind,
		Title:        title,
		Year:         YearOf(date),
		ReleaseDate:  date,
		Rating:       RatingOf(raw.VoteAverage),
		Popularity:   popularity,
		Genres:       names,
		MoodTags:     MoodTagsOf(raw.Overview, t.Kind),
		PosterPath:   raw.PosterPath,
		BackdropPath: raw.BackdropPath,
		Overview:     overview,
		IsNew:        source == SourceUpcoming || source == SourceNowPlaying,
		IsTrending:   source == SourceTrending || popularity > models.TrendingPopularityThreshold,
	}
}

// ToCatalogItems converts every movie and show in list, skipping people.
func ToCatalogItems(list []metadata.Tagged, genres GenreTable, source Source) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(list))
	for _, t := range list {
		if t.Kind == models.KindPerson {
			continue
		}
		out = append(out, ToCatalogItem(t, genres, source))
	}
	return out
}

// ToPersonItem converts a person record. KnownFor joins at most two titles.
func ToPersonItem(p metadata.PersonRecord) models.PersonItem {
	titles := make([]string, 0, 2)
	for _, raw := range p.KnownFor {
		if len(titles) == 2 {
			break
		}
		if title := strings.TrimSpace(TitleOf(Tag(raw, ""))); title != "" {
			titles = append(titles, title)
		}
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = UntitledPlaceholder
	}
	department := strings.TrimSpace(p.KnownForDepartment)
	if department == "" {
		department = "Unknown"
	}
	return models.PersonItem{
		ID:          p.ID,
		Name:        name,
		ProfilePath: p.ProfilePath,
		Department:  department,
		KnownFor:    strings.Join(titles, ", "),
		Popularity:  math.Max(p.Popularity, 0),
		IsTrending:  p.Popularity > models.TrendingPopularityThreshold,
	}
}

// PersonFromRecord reads a person-shaped search hit.
func PersonFromRecord(raw metadata.RawRecord) metadata.PersonRecord {
	return metadata.PersonRecord{
		ID:                 raw.ID,
		Name:               deref(raw.Name),
		ProfilePath:        raw.ProfilePath,
		KnownForDepartment: raw.KnownForDepartment,
		Popularity:         raw.Popularity,
		KnownFor:           raw.KnownFor,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
