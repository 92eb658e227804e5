package discovery

import (
	"context"
	"sort"

	"cinecontext/models"
	"cinecontext/services/catalog"
	"cinecontext/services/metadata"
)

const (
	maxPersonImages = 12
	maxFilmography  = 40
)

// Person loads a person page: details, profile images and combined credits.
func (s *Service) Person(scope *Scope, id int64) (*models.PersonDetail, error) {
	var (
		person  *metadata.PersonRecord
		images  []metadata.ImageRecord
		credits *metadata.PersonCredits
	)
	err := runBatch(scope, s.maxParallel,
		func(ctx context.Context) (err error) {
			person, err = s.provider.PersonDetails(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			images, err = s.provider.PersonImages(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			credits, err = s.provider.PersonCredits(ctx, id)
			return err
		},
	)
	s.logBatch(scope, "person", err)
	if err != nil {
		return nil, err
	}

	filmography := s.filmography(credits)
	record := *person
	if len(record.KnownFor) == 0 {
		record.KnownFor = knownForRecords(credits, filmography)
	}

	return &models.PersonDetail{
		PersonItem:   catalog.ToPersonItem(record),
		Biography:    person.Biography,
		Birthday:     person.Birthday,
		Deathday:     person.Deathday,
		PlaceOfBirth: person.PlaceOfBirth,
		Images:       topImages(images, maxPersonImages),
		Filmography:  filmography,
	}, nil
}

// filmography merges cast then crew credits, one entry per title, most
// popular first.
func (s *Service) filmography(credits *metadata.PersonCredits) []models.CatalogItem {
	if credits == nil {
		return []models.CatalogItem{}
	}
	cast := catalog.ToCatalogItems(catalog.TagAll(credits.Cast, ""), catalog.GenreTable{}, catalog.SourceCredits)
	crew := catalog.ToCatalogItems(catalog.TagAll(credits.Crew, ""), catalog.GenreTable{}, catalog.SourceCredits)
	items := catalog.Aggregate(cast, crew)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Popularity > items[j].Popularity })
	if len(items) > maxFilmography {
		items = items[:maxFilmography]
	}
	return s.cards(items)
}

// knownForRecords picks the raw credits behind the two most popular
// filmography entries, for the "known for" line.
func knownForRecords(credits *metadata.PersonCredits, filmography []models.CatalogItem) []metadata.RawRecord {
	if credits == nil {
		return nil
	}
	byKey := make(map[string]metadata.RawRecord)
	for _, raw := range append(append([]metadata.RawRecord(nil), credits.Cast...), credits.Crew...) {
		t := catalog.Tag(raw, "")
		key := models.WatchlistKey(t.Kind, raw.ID)
		if _, ok := byKey[key]; !ok {
			byKey[key] = raw
		}
	}
	out := make([]metadata.RawRecord, 0, 2)
	for _, item := range filmography {
		if len(out) == 2 {
			break
		}
		if raw, ok := byKey[item.Key()]; ok {
			out = append(out, raw)
		}
	}
	return out
}
