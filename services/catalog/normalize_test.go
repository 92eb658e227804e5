package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinecontext/models"
	"cinecontext/services/metadata"
)

func strPtr(s string) *string { return &s }

func movieRecord(id int64, title, date string) metadata.RawRecord {
	return metadata.RawRecord{ID: id, Title: strPtr(title), ReleaseDate: strPtr(date)}
}

func showRecord(id int64, name, date string) metadata.RawRecord {
	return metadata.RawRecord{ID: id, Name: strPtr(name), FirstAirDate: strPtr(date)}
}

func TestIsMovieRecordChecksPresence(t *testing.T) {
	assert.True(t, IsMovieRecord(movieRecord(1, "", "")), "empty values still count as present")
	assert.False(t, IsMovieRecord(metadata.RawRecord{Title: strPtr("Only title")}))
	assert.False(t, IsMovieRecord(showRecord(2, "Show", "2020-01-01")))
}

func TestTagPrecedence(t *testing.T) {
	movie := movieRecord(1, "Film", "2001-01-01")

	assert.Equal(t, models.KindMovie, Tag(movie, "").Kind)
	assert.Equal(t, models.KindShow, Tag(showRecord(2, "Show", ""), "").Kind)
	assert.Equal(t, models.KindShow, Tag(movie, models.KindShow).Kind, "endpoint hint beats shape")

	movie.MediaType = "tv"
	assert.Equal(t, models.KindShow, Tag(movie, models.KindMovie).Kind, "media_type beats hint")
	movie.MediaType = "person"
	assert.Equal(t, models.KindPerson, Tag(movie, "").Kind)
}

func TestTitleAndDateByKind(t *testing.T) {
	rec := metadata.RawRecord{
		Title: strPtr("Movie Title"), ReleaseDate: strPtr("1999-03-30"),
		Name: strPtr("Show Name"), FirstAirDate: strPtr("2008-01-20"),
	}
	movie := metadata.Tagged{Kind: models.KindMovie, Record: rec}
	show := metadata.Tagged{Kind: models.KindShow, Record: rec}

	assert.Equal(t, "Movie Title", TitleOf(movie))
	assert.Equal(t, "1999-03-30", DateOf(movie))
	assert.Equal(t, "Show Name", TitleOf(show))
	assert.Equal(t, "2008-01-20", DateOf(show))
	assert.Equal(t, "", TitleOf(metadata.Tagged{Kind: models.KindMovie}))
}

func TestYearOf(t *testing.T) {
	tests := map[string]string{
		"1999-03-30":           "1999",
		"2024-11":              "2024",
		"1984":                 "1984",
		"2010-07-16T00:00:00Z": "2010",
		"":                     "TBA",
		"   ":                  "TBA",
		"not a date":           "TBA",
		"199":                  "TBA",
		"2020-13-45":           "TBA",
	}
	for input, expect := range tests {
		assert.Equal(t, expect, YearOf(input), "YearOf(%q)", input)
	}
}

func TestRatingOfRoundsHalfUp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{7.05, 7.1},
		{7.04, 7.0},
		{8.25, 8.3},
		{8.249, 8.2},
		{0, 0},
		{10, 10},
		{6.999, 7.0},
		{-0.05, -0.1},
		{-0.04, 0},
		{12.34, 12.3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, RatingOf(tc.in), "RatingOf(%v)", tc.in)
	}
}

func TestRatingOfHasOneDecimal(t *testing.T) {
	for r := 0.0; r <= 10.0; r += 0.037 {
		got := RatingOf(r)
		assert.Equal(t, got, RatingOf(got), "rounding %v is not stable", r)
		assert.InDelta(t, r, got, 0.05+1e-9)
	}
}

func TestMoodTagsOf(t *testing.T) {
	assert.Equal(t, []string{"Romance", "Family"}, MoodTagsOf("A tale of love and family", models.KindMovie))
	assert.Equal(t, []string{"Cinematic"}, MoodTagsOf("Nothing matches here.", models.KindMovie))
	assert.Equal(t, []string{"Binge-worthy"}, MoodTagsOf("", models.KindShow))

	// Rule order, not text order, and never more than three.
	tags := MoodTagsOf("A funny ghost in space befriends a killer during the war", models.KindShow)
	assert.Equal(t, []string{"Epic", "Dark", "Heartwarming"}, tags)

	// Text is folded before matching.
	assert.Equal(t, []string{"Spooky"}, MoodTagsOf("HÄUNTED house", models.KindMovie)[:1])
	assert.Equal(t, MoodTagsOf("Love in the future", models.KindMovie), MoodTagsOf("Love in the future", models.KindMovie))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Hello...", Truncate("Hello, world", 6))
	assert.Equal(t, "héllo...", Truncate("héllo wörld", 5))
	assert.Equal(t, "unchanged", Truncate("unchanged", 0))
}

func TestToCatalogItem(t *testing.T) {
	genres := NewGenreTable([]models.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}})
	rec := movieRecord(603, "The Matrix", "1999-03-30")
	rec.VoteAverage = 8.217
	rec.Popularity = 80.5
	rec.GenreIDs = []int64{28, 878, 9999}
	rec.PosterPath = "/p.jpg"
	rec.Overview = "A hacker learns the future of reality."

	item := ToCatalogItem(Tag(rec, models.KindMovie), genres, SourcePopular)
	require.Equal(t, "movie-603", item.Key())
	assert.Equal(t, "The Matrix", item.Title)
	assert.Equal(t, "1999", item.Year)
	assert.Equal(t, 8.2, item.Rating)
	assert.Equal(t, []string{"Action", "Science Fiction"}, item.Genres)
	assert.Equal(t, []string{"Mind-bending"}, item.MoodTags)
	assert.True(t, item.IsTrending, "popularity above threshold")
	assert.False(t, item.IsNew)

	bare := ToCatalogItem(metadata.Tagged{Kind: models.KindShow, Record: metadata.RawRecord{ID: 7, Popularity: 3}}, genres, SourceUpcoming)
	assert.Equal(t, UntitledPlaceholder, bare.Title)
	assert.Equal(t, OverviewPlaceholder, bare.Overview)
	assert.Equal(t, "TBA", bare.Year)
	assert.Empty(t, bare.Genres)
	assert.True(t, bare.IsNew)
	assert.False(t, bare.IsTrending)

	rec.Popularity = 1
	trending := ToCatalogItem(Tag(rec, ""), genres, SourceTrending)
	assert.True(t, trending.IsTrending, "trending source flags regardless of popularity")
}

func TestToCatalogItemPrefersGenreObjects(t *testing.T) {
	rec := showRecord(1399, "Show", "2011-04-17")
	rec.Genres = []models.Genre{{ID: 18, Name: "Drama"}}
	rec.GenreIDs = []int64{28}
	item := ToCatalogItem(Tag(rec, models.KindShow), NewGenreTable([]models.Genre{{ID: 28, Name: "Action"}}), SourceDetail)
	assert.Equal(t, []string{"Drama"}, item.Genres)
}

func TestToPersonItem(t *testing.T) {
	person := metadata.PersonRecord{
		ID:                 6384,
		Name:               "Keanu Reeves",
		KnownForDepartment: "Acting",
		Popularity:         72,
		KnownFor: []metadata.RawRecord{
			movieRecord(603, "The Matrix", "1999-03-30"),
			showRecord(1, "Some Show", "2001-01-01"),
			movieRecord(604, "John Wick", "2014-10-22"),
		},
	}
	item := ToPersonItem(person)
	assert.Equal(t, "The Matrix, Some Show", item.KnownFor)
	assert.True(t, item.IsTrending)
	assert.Equal(t, "Acting", item.Department)

	quiet := ToPersonItem(metadata.PersonRecord{ID: 1, Name: "Nobody", Popularity: 50})
	assert.False(t, quiet.IsTrending, "threshold is exclusive")
	assert.Equal(t, "", quiet.KnownFor)
	assert.Equal(t, "Unknown", quiet.Department)
}
