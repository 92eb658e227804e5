package discovery

import (
	"context"

	"cinecontext/models"
	"cinecontext/services/catalog"
	"cinecontext/services/metadata"
)

// HomeQuery carries the home page's transient UI state.
type HomeQuery struct {
	Window metadata.Window
	Page   int
	Filter models.FilterState
}

// Row is one horizontal shelf on the home page.
type Row struct {
	Source catalog.Source       `json:"source"`
	Kind   models.Kind          `json:"kind,omitempty"`
	Title  string               `json:"title"`
	Items  []models.CatalogItem `json:"items"`
}

type HomeView struct {
	Window   metadata.Window      `json:"window"`
	Page     int                  `json:"page"`
	Hero     *models.CatalogItem  `json:"hero,omitempty"`
	Rows     []Row                `json:"rows"`
	People   []models.PersonItem  `json:"people"`
	Pool     []models.CatalogItem `json:"-"`
	Filtered []models.CatalogItem `json:"filtered"`
	Filter   models.FilterState   `json:"filter"`
	Genres   []models.Genre       `json:"genres"`
}

type homeSource struct {
	source   catalog.Source
	kind     models.Kind
	title    string
	endpoint string
}

// Order follows catalog.HomePrecedence, movies before shows.
func homeSources(window metadata.Window) []homeSource {
	return []homeSource{
		{catalog.SourceTrending, "", "Trending now", metadata.TrendingEndpoint(metadata.TrendingAll, window)},
		{catalog.SourcePopular, models.KindMovie, "Popular movies", metadata.EndpointMoviePopular},
		{catalog.SourcePopular, models.KindShow, "Popular shows", metadata.EndpointShowPopular},
		{catalog.SourceTopRated, models.KindMovie, "Top rated movies", metadata.EndpointMovieTopRated},
		{catalog.SourceTopRated, models.KindShow, "Top rated shows", metadata.EndpointShowTopRated},
		{catalog.SourceUpcoming, models.KindMovie, "Coming soon", metadata.EndpointMovieUpcoming},
		{catalog.SourceNowPlaying, models.KindMovie, "Now playing", metadata.EndpointMovieNowPlaying},
	}
}

// Home fetches every home shelf, both genre lists and trending people in
// one batch, then aggregates the shelves into a pool and filters it.
func (s *Service) Home(scope *Scope, q HomeQuery) (*HomeView, error) {
	if q.Window == "" {
		q.Window = metadata.WindowDay
	}
	if q.Page < 1 {
		q.Page = 1
	}

	sources := homeSources(q.Window)
	collections := make([]metadata.Collection, len(sources))
	var movieGenres, showGenres []models.Genre
	var people metadata.PeoplePage

	tasks := make([]task, 0, len(sources)+3)
	for i, src := range sources {
		i, src := i, src
		tasks = append(tasks, func(ctx context.Context) error {
			col, err := s.provider.FetchCollection(ctx, src.endpoint, q.Page)
			collections[i] = col
			return err
		})
	}
	tasks = append(tasks, s.genreTasks(&movieGenres, &showGenres)...)
	tasks = append(tasks, func(ctx context.Context) error {
		page, err := s.provider.TrendingPeople(ctx, q.Window, 1)
		people = page
		return err
	})

	err := runBatch(scope, s.maxParallel, tasks...)
	s.logBatch(scope, "home", err)
	if err != nil {
		return nil, err
	}

	genres := catalog.NewGenreTable(movieGenres, showGenres)
	view := &HomeView{
		Window: q.Window,
		Page:   q.Page,
		Filter: q.Filter,
		Genres: genres.Genres(),
		Rows:   make([]Row, 0, len(sources)),
	}
	lists := make([][]models.CatalogItem, 0, len(sources))
	for i, src := range sources {
		items := s.cards(catalog.ToCatalogItems(catalog.TagAll(collections[i].Items, src.kind), genres, src.source))
		lists = append(lists, items)
		view.Rows = append(view.Rows, Row{Source: src.source, Kind: src.kind, Title: src.title, Items: items})
	}
	view.Pool = catalog.Aggregate(lists...)
	view.Filtered = catalog.Apply(view.Pool, q.Filter, genres)

	for _, item := range lists[0] {
		if item.BackdropPath != "" {
			hero := item
			view.Hero = &hero
			break
		}
	}

	view.People = make([]models.PersonItem, 0, len(people.Results))
	for _, p := range people.Results {
		view.People = append(view.People, catalog.ToPersonItem(p))
	}
	return view, nil
}
