package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cinecontext/models"
	"cinecontext/services/catalog"
	"cinecontext/services/metadata"
)

const maxBackdrops = 8

// key crew jobs shown on the title page, in display order.
var keyCrewJobs = []string{"Director", "Creator", "Screenplay", "Writer", "Novel", "Original Music Composer"}

// Title loads a movie or show page: details, credits, videos and images.
func (s *Service) Title(scope *Scope, kind models.Kind, id int64) (*models.TitleDetail, error) {
	if kind != models.KindMovie && kind != models.KindShow {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}

	var (
		movie   *metadata.MovieDetail
		show    *metadata.ShowDetail
		credits *metadata.Credits
		videos  []metadata.Video
		images  *metadata.ImageSet
	)
	details := func(ctx context.Context) error {
		var err error
		if kind == models.KindMovie {
			movie, err = s.provider.MovieDetails(ctx, id)
		} else {
			show, err = s.provider.ShowDetails(ctx, id)
		}
		return err
	}
	err := runBatch(scope, s.maxParallel,
		details,
		func(ctx context.Context) (err error) {
			credits, err = s.provider.Credits(ctx, kind, id)
			return err
		},
		func(ctx context.Context) (err error) {
			videos, err = s.provider.Videos(ctx, kind, id)
			return err
		},
		func(ctx context.Context) (err error) {
			images, err = s.provider.Images(ctx, kind, id)
			return err
		},
	)
	s.logBatch(scope, "title", err)
	if err != nil {
		return nil, err
	}

	var detail models.TitleDetail
	if movie != nil {
		detail.CatalogItem = catalog.ToCatalogItem(catalog.Tag(movie.RawRecord, models.KindMovie), catalog.GenreTable{}, catalog.SourceDetail)
		detail.Tagline = movie.Tagline
		detail.Status = movie.Status
		detail.RuntimeMinutes = movie.Runtime
		detail.Homepage = movie.Homepage
	} else {
		detail.CatalogItem = catalog.ToCatalogItem(catalog.Tag(show.RawRecord, models.KindShow), catalog.GenreTable{}, catalog.SourceDetail)
		detail.Tagline = show.Tagline
		detail.Status = show.Status
		detail.Seasons = show.NumberOfSeasons
		detail.Episodes = show.NumberOfEpisodes
		if len(show.EpisodeRunTime) > 0 {
			detail.RuntimeMinutes = show.EpisodeRunTime[0]
		}
		detail.Homepage = show.Homepage
	}

	var creators []metadata.CrewCredit
	if show != nil {
		creators = show.CreatedBy
	}
	detail.Cast = s.castOf(credits)
	detail.Crew = keyCrew(credits, creators)
	detail.Trailers = trailersOf(videos)
	if images != nil {
		detail.Logo = bestLogo(images.Logos, s.language)
		detail.Backdrops = topImages(images.Backdrops, maxBackdrops)
	} else {
		detail.Backdrops = []models.ImageAsset{}
	}
	return &detail, nil
}

func (s *Service) castOf(credits *metadata.Credits) []models.CastMember {
	if credits == nil {
		return []models.CastMember{}
	}
	cast := append([]metadata.CastCredit(nil), credits.Cast...)
	sort.SliceStable(cast, func(i, j int) bool { return cast[i].Order < cast[j].Order })
	if len(cast) > s.castLimit {
		cast = cast[:s.castLimit]
	}
	out := make([]models.CastMember, 0, len(cast))
	for _, c := range cast {
		out = append(out, models.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: c.ProfilePath,
			Order:       c.Order,
		})
	}
	return out
}

// keyCrew keeps one entry per person and job, for the jobs in keyCrewJobs,
// ordered by that list. Show creators come first as "Creator".
func keyCrew(credits *metadata.Credits, creators []metadata.CrewCredit) []models.CrewMember {
	crew := make([]metadata.CrewCredit, 0, len(creators))
	for _, c := range creators {
		c.Job = "Creator"
		c.Department = "Writing"
		crew = append(crew, c)
	}
	if credits != nil {
		crew = append(crew, credits.Crew...)
	}

	rank := make(map[string]int, len(keyCrewJobs))
	for i, job := range keyCrewJobs {
		rank[job] = i
	}
	seen := make(map[string]struct{})
	out := make([]models.CrewMember, 0)
	for _, c := range crew {
		if _, ok := rank[c.Job]; !ok {
			continue
		}
		key := fmt.Sprintf("%d/%s", c.ID, c.Job)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, models.CrewMember{
			ID:          c.ID,
			Name:        c.Name,
			Job:         c.Job,
			Department:  c.Department,
			ProfilePath: c.ProfilePath,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return rank[out[i].Job] < rank[out[j].Job] })
	return out
}

// trailersOf keeps YouTube trailers and teasers: official before
// unofficial, trailers before teasers, provider order otherwise.
func trailersOf(videos []metadata.Video) []models.Trailer {
	out := make([]models.Trailer, 0, len(videos))
	for _, v := range videos {
		if !strings.EqualFold(v.Site, "YouTube") || v.Key == "" {
			continue
		}
		if v.Type != "Trailer" && v.Type != "Teaser" {
			continue
		}
		out = append(out, models.Trailer{
			Key:          v.Key,
			Name:         v.Name,
			Type:         v.Type,
			Official:     v.Official,
			EmbedURL:     "https://www.youtube.com/embed/" + v.Key,
			WatchURL:     "https://www.youtube.com/watch?v=" + v.Key,
			ThumbnailURL: "https://img.youtube.com/vi/" + v.Key + "/hqdefault.jpg",
		})
	}
	score := func(t models.Trailer) int {
		n := 0
		if !t.Official {
			n += 2
		}
		if t.Type != "Trailer" {
			n++
		}
		return n
	}
	sort.SliceStable(out, func(i, j int) bool { return score(out[i]) < score(out[j]) })
	return out
}

// bestLogo prefers the provider language, then English, then a
// language-neutral logo; ties go to the higher vote average.
func bestLogo(logos []metadata.ImageRecord, language string) *models.ImageAsset {
	want := strings.SplitN(language, "-", 2)[0]
	rank := func(lang string) int {
		switch lang {
		case want:
			return 0
		case "en":
			return 1
		case "":
			return 2
		default:
			return 3
		}
	}
	var best *metadata.ImageRecord
	for i := range logos {
		logo := &logos[i]
		if logo.FilePath == "" {
			continue
		}
		if best == nil || rank(logo.Language) < rank(best.Language) ||
			(rank(logo.Language) == rank(best.Language) && logo.VoteAverage > best.VoteAverage) {
			best = logo
		}
	}
	if best == nil {
		return nil
	}
	asset := imageAsset(*best)
	return &asset
}

func topImages(images []metadata.ImageRecord, limit int) []models.ImageAsset {
	sorted := append([]metadata.ImageRecord(nil), images...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].VoteAverage > sorted[j].VoteAverage })
	out := make([]models.ImageAsset, 0, limit)
	for _, img := range sorted {
		if len(out) == limit {
			break
		}
		if img.FilePath == "" {
			continue
		}
		out = append(out, imageAsset(img))
	}
	return out
}

func imageAsset(img metadata.ImageRecord) models.ImageAsset {
	return models.ImageAsset{
		Path:        img.FilePath,
		Language:    img.Language,
		AspectRatio: img.AspectRatio,
		Width:       img.Width,
		Height:      img.Height,
		VoteAverage: img.VoteAverage,
	}
}
