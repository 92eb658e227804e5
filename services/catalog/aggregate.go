package catalog

import "cinecontext/models"

// HomePrecedence is the order in which the home feed's source lists are
// aggregated: the first list an item appears in supplies its record and
// flags. Within each source the movie list comes before the show list.
var HomePrecedence = []Source{
	SourceTrending,
	SourcePopular,
	SourceTopRated,
	SourceUpcoming,
	SourceNowPlaying,
}

// Aggregate merges lists into one pool keyed by kind and id. The first
// occurrence wins and later duplicates are dropped unmerged; output keeps
// insertion order.
func Aggregate(lists ...[]models.CatalogItem) []models.CatalogItem {
	total := 0
	for _, list := range lists {
		total += len(list)
	}
	seen := make(map[string]struct{}, total)
	out := make([]models.CatalogItem, 0, total)
	for _, list := range lists {
		for _, item := range list {
			key := item.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}
