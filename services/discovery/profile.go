package discovery

import (
	"context"

	"cinecontext/models"
	"cinecontext/services/catalog"
	"cinecontext/services/metadata"
)

// ProfileView lists the watchlist resolved to catalog items.
type ProfileView struct {
	Items []models.CatalogItem `json:"items"`
	// Missing holds keys the provider no longer knows (404) and keys that
	// do not parse.
	Missing []string `json:"missing"`
}

// Profile resolves every watchlist key with one details call per key, in
// watchlist order. A 404 lands the key in Missing; any other failure fails
// the whole view.
func (s *Service) Profile(scope *Scope, keys []string) (*ProfileView, error) {
	view := &ProfileView{Items: []models.CatalogItem{}, Missing: []string{}}

	type slot struct {
		key      string
		kind     models.Kind
		id       int64
		item     models.CatalogItem
		notFound bool
	}
	slots := make([]*slot, 0, len(keys))
	for _, key := range keys {
		kind, id, err := models.ParseWatchlistKey(key)
		if err != nil {
			view.Missing = append(view.Missing, key)
			continue
		}
		slots = append(slots, &slot{key: key, kind: kind, id: id})
	}
	if len(slots) == 0 {
		return view, nil
	}

	tasks := make([]task, 0, len(slots))
	for _, sl := range slots {
		sl := sl
		tasks = append(tasks, func(ctx context.Context) error {
			var raw metadata.RawRecord
			var err error
			if sl.kind == models.KindMovie {
				var movie *metadata.MovieDetail
				if movie, err = s.provider.MovieDetails(ctx, sl.id); err == nil {
					raw = movie.RawRecord
				}
			} else {
				var show *metadata.ShowDetail
				if show, err = s.provider.ShowDetails(ctx, sl.id); err == nil {
					raw = show.RawRecord
				}
			}
			if metadata.IsNotFound(err) {
				sl.notFound = true
				return nil
			}
			if err != nil {
				return err
			}
			sl.item = catalog.ToCatalogItem(catalog.Tag(raw, sl.kind), catalog.GenreTable{}, catalog.SourceDetail)
			return nil
		})
	}

	err := runBatch(scope, s.maxParallel, tasks...)
	s.logBatch(scope, "profile", err)
	if err != nil {
		return nil, err
	}

	for _, sl := range slots {
		if sl.notFound {
			view.Missing = append(view.Missing, sl.key)
			continue
		}
		view.Items = append(view.Items, sl.item)
	}
	s.cards(view.Items)
	return view, nil
}
