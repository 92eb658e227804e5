package catalog

import (
	"sort"
	"strconv"

	"cinecontext/models"
)

// Apply filters and sorts pool according to f. It never modifies pool; the
// result is a fresh slice.
//
// Filters run in order: media type, genre, year range, minimum rating. An
// empty media-type selection yields nothing. Items with an unparsable year
// ("TBA") never pass the year filter.
func Apply(pool []models.CatalogItem, f models.FilterState, genres GenreTable) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(pool))
	if len(f.MediaTypes) == 0 {
		return out
	}

	var selected map[int64]struct{}
	if len(f.GenreIDs) > 0 {
		selected = make(map[int64]struct{}, len(f.GenreIDs))
		for _, id := range f.GenreIDs {
			selected[id] = struct{}{}
		}
	}

	for _, item := range pool {
		if !f.AllowsKind(item.Kind) {
			continue
		}
		if selected != nil && !matchesGenre(item, selected, genres) {
			continue
		}
		year, err := strconv.Atoi(item.Year)
		if err != nil || year < f.YearRange.Min || year > f.YearRange.Max {
			continue
		}
		if item.Rating < f.MinRating {
			continue
		}
		out = append(out, copyItem(item))
	}

	sortItems(out, f.SortKey)
	return out
}

func matchesGenre(item models.CatalogItem, selected map[int64]struct{}, genres GenreTable) bool {
	for _, name := range item.Genres {
		for _, id := range genres.IDsFor(name) {
			if _, ok := selected[id]; ok {
				return true
			}
		}
	}
	return false
}

// copyItem detaches the slice fields so callers can't reach the pool
// through the result.
func copyItem(item models.CatalogItem) models.CatalogItem {
	item.Genres = append([]string(nil), item.Genres...)
	item.MoodTags = append([]string(nil), item.MoodTags...)
	return item
}

func sortItems(items []models.CatalogItem, key models.SortKey) {
	var less func(a, b models.CatalogItem) bool
	switch key {
	case models.SortRating:
		less = func(a, b models.CatalogItem) bool {
			aPerson, bPerson := a.Kind == models.KindPerson, b.Kind == models.KindPerson
			if aPerson != bPerson {
				return bPerson
			}
			return a.Rating > b.Rating
		}
	case models.SortYear:
		less = func(a, b models.CatalogItem) bool {
			return yearSortKey(a.Year) > yearSortKey(b.Year)
		}
	case models.SortTitle:
		less = func(a, b models.CatalogItem) bool {
			return a.Title < b.Title
		}
	default:
		less = func(a, b models.CatalogItem) bool {
			return a.Popularity > b.Popularity
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}

func yearSortKey(year string) string {
	if year == models.YearTBA {
		return "0"
	}
	return year
}
