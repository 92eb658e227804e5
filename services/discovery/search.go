package discovery

import (
	"context"
	"strings"

	"cinecontext/models"
	"cinecontext/services/catalog"
	"cinecontext/services/metadata"
)

// SearchView is one page of mixed search results.
type SearchView struct {
	Query        string               `json:"query"`
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"totalPages"`
	TotalResults int                  `json:"totalResults"`
	Movies       []models.CatalogItem `json:"movies"`
	Shows        []models.CatalogItem `json:"shows"`
	People       []models.PersonItem  `json:"people"`
	Results      []models.CatalogItem `json:"results"`
	Rejected     int                  `json:"rejected"`
	Filter       models.FilterState   `json:"filter"`
	Genres       []models.Genre       `json:"genres"`
}

// Search runs /search/multi together with both genre lists. Movies and
// shows go through the filter pipeline; people are listed as they come. A
// blank query returns an empty view without calling the provider.
func (s *Service) Search(scope *Scope, query string, page int, filter models.FilterState) (*SearchView, error) {
	query = strings.TrimSpace(query)
	if page < 1 {
		page = 1
	}
	view := &SearchView{
		Query:   query,
		Page:    page,
		Filter:  filter,
		Movies:  []models.CatalogItem{},
		Shows:   []models.CatalogItem{},
		People:  []models.PersonItem{},
		Results: []models.CatalogItem{},
		Genres:  []models.Genre{},
	}
	if query == "" {
		return view, nil
	}

	var (
		result                  metadata.SearchPage
		movieGenres, showGenres []models.Genre
	)
	tasks := append([]task{
		func(ctx context.Context) (err error) {
			result, err = s.provider.SearchMulti(ctx, query, page)
			return err
		},
	}, s.genreTasks(&movieGenres, &showGenres)...)

	err := runBatch(scope, s.maxParallel, tasks...)
	s.logBatch(scope, "search", err)
	if err != nil {
		return nil, err
	}

	genres := catalog.NewGenreTable(movieGenres, showGenres)
	view.TotalPages = result.TotalPages
	view.TotalResults = result.TotalResults
	view.Rejected = result.Rejected
	view.Genres = genres.Genres()

	pool := make([]models.CatalogItem, 0, len(result.Results))
	for _, hit := range result.Results {
		switch hit.Kind {
		case models.KindPerson:
			view.People = append(view.People, catalog.ToPersonItem(catalog.PersonFromRecord(hit.Record)))
		case models.KindMovie:
			item := catalog.ToCatalogItem(hit, genres, catalog.SourceSearch)
			view.Movies = append(view.Movies, item)
			pool = append(pool, item)
		case models.KindShow:
			item := catalog.ToCatalogItem(hit, genres, catalog.SourceSearch)
			view.Shows = append(view.Shows, item)
			pool = append(pool, item)
		}
	}
	s.cards(view.Movies)
	s.cards(view.Shows)
	view.Results = s.cards(catalog.Apply(pool, filter, genres))
	return view, nil
}
