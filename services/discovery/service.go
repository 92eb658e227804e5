package discovery

import (
	"context"
	"errors"
	"log/slog"

	"cinecontext/config"
	"cinecontext/models"
	"cinecontext/services/catalog"
	"cinecontext/services/metadata"
)

// ErrUnsupportedKind is returned for a title lookup with a person kind.
var ErrUnsupportedKind = errors.New("unsupported kind")

// Provider is the subset of the metadata client the views fetch from.
type Provider interface {
	FetchCollection(ctx context.Context, endpoint string, page int) (metadata.Collection, error)
	SearchMulti(ctx context.Context, query string, page int) (metadata.SearchPage, error)
	MovieDetails(ctx context.Context, id int64) (*metadata.MovieDetail, error)
	ShowDetails(ctx context.Context, id int64) (*metadata.ShowDetail, error)
	PersonDetails(ctx context.Context, id int64) (*metadata.PersonRecord, error)
	Credits(ctx context.Context, kind models.Kind, id int64) (*metadata.Credits, error)
	Videos(ctx context.Context, kind models.Kind, id int64) ([]metadata.Video, error)
	Images(ctx context.Context, kind models.Kind, id int64) (*metadata.ImageSet, error)
	PersonImages(ctx context.Context, id int64) ([]metadata.ImageRecord, error)
	PersonCredits(ctx context.Context, id int64) (*metadata.PersonCredits, error)
	Genres(ctx context.Context, kind models.Kind) ([]models.Genre, error)
	TrendingPeople(ctx context.Context, window metadata.Window, page int) (metadata.PeoplePage, error)
}

var _ Provider = (*metadata.Client)(nil)

// Service assembles page views from batched provider calls.
type Service struct {
	provider       Provider
	language       string
	overviewLength int
	castLimit      int
	maxParallel    int
	log            *slog.Logger
}

// NewService wires the views to provider. language is the provider locale,
// used to pick logos.
func NewService(provider Provider, language string, ui config.UISettings, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	castLimit := ui.CastLimit
	if castLimit <= 0 {
		castLimit = 12
	}
	return &Service{
		provider:       provider,
		language:       metadata.NormalizeLanguage(language),
		overviewLength: ui.OverviewLength,
		castLimit:      castLimit,
		maxParallel:    8,
		log:            logger.With("component", "discovery"),
	}
}

// cards truncates overviews for list display.
func (s *Service) cards(items []models.CatalogItem) []models.CatalogItem {
	for i := range items {
		items[i].Overview = catalog.Truncate(items[i].Overview, s.overviewLength)
	}
	return items
}

// genreTasks loads both genre lists into the given slices.
func (s *Service) genreTasks(movie, show *[]models.Genre) []task {
	return []task{
		func(ctx context.Context) error {
			genres, err := s.provider.Genres(ctx, models.KindMovie)
			*movie = genres
			return err
		},
		func(ctx context.Context) error {
			genres, err := s.provider.Genres(ctx, models.KindShow)
			*show = genres
			return err
		},
	}
}

func (s *Service) logBatch(scope *Scope, view string, err error) {
	if err != nil {
		s.log.Warn("view batch failed", "view", view, "scope", scope.ID(), "elapsed", scope.Elapsed(), "error", err)
		return
	}
	s.log.Debug("view batch complete", "view", view, "scope", scope.ID(), "elapsed", scope.Elapsed())
}
