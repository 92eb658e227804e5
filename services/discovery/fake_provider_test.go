package discovery

import (
	"context"
	"fmt"
	"sync"

	"cinecontext/models"
	"cinecontext/services/metadata"
)

func strPtr(s string) *string { return &s }

func movieRaw(id int64, title, date string, popularity float64) metadata.RawRecord {
	return metadata.RawRecord{ID: id, Title: strPtr(title), ReleaseDate: strPtr(date), Popularity: popularity, VoteAverage: 7, GenreIDs: []int64{18}}
}

func showRaw(id int64, name, date string, popularity float64) metadata.RawRecord {
	return metadata.RawRecord{ID: id, Name: strPtr(name), FirstAirDate: strPtr(date), Popularity: popularity, VoteAverage: 8, GenreIDs: []int64{18}}
}

// fakeProvider serves canned data. Calls named in fail return that error;
// calls named in block wait for cancellation.
type fakeProvider struct {
	mu          sync.Mutex
	calls       []string
	collections map[string]metadata.Collection
	search      metadata.SearchPage
	movies      map[int64]*metadata.MovieDetail
	shows       map[int64]*metadata.ShowDetail
	person      *metadata.PersonRecord
	credits     *metadata.Credits
	videos      []metadata.Video
	images      *metadata.ImageSet
	personCreds *metadata.PersonCredits
	fail        map[string]error
	block       map[string]bool
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		collections: map[string]metadata.Collection{},
		movies:      map[int64]*metadata.MovieDetail{},
		shows:       map[int64]*metadata.ShowDetail{},
		fail:        map[string]error{},
		block:       map[string]bool{},
	}
}

func (f *fakeProvider) record(ctx context.Context, name string) error {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	err := f.fail[name]
	block := f.block[name]
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return &metadata.ProviderError{Endpoint: name, Err: ctx.Err()}
	}
	return err
}

func (f *fakeProvider) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (f *fakeProvider) FetchCollection(ctx context.Context, endpoint string, page int) (metadata.Collection, error) {
	if err := f.record(ctx, endpoint); err != nil {
		return metadata.Collection{}, err
	}
	return f.collections[endpoint], nil
}

func (f *fakeProvider) SearchMulti(ctx context.Context, query string, page int) (metadata.SearchPage, error) {
	if err := f.record(ctx, "search"); err != nil {
		return metadata.SearchPage{}, err
	}
	return f.search, nil
}

func (f *fakeProvider) MovieDetails(ctx context.Context, id int64) (*metadata.MovieDetail, error) {
	if err := f.record(ctx, fmt.Sprintf("movie/%d", id)); err != nil {
		return nil, err
	}
	if m, ok := f.movies[id]; ok {
		return m, nil
	}
	return nil, &metadata.ProviderError{Endpoint: fmt.Sprintf("/movie/%d", id), StatusCode: 404, Status: "404 Not Found"}
}

func (f *fakeProvider) ShowDetails(ctx context.Context, id int64) (*metadata.ShowDetail, error) {
	if err := f.record(ctx, fmt.Sprintf("show/%d", id)); err != nil {
		return nil, err
	}
	if s, ok := f.shows[id]; ok {
		return s, nil
	}
	return nil, &metadata.ProviderError{Endpoint: fmt.Sprintf("/tv/%d", id), StatusCode: 404, Status: "404 Not Found"}
}

func (f *fakeProvider) PersonDetails(ctx context.Context, id int64) (*metadata.PersonRecord, error) {
	if err := f.record(ctx, "person"); err != nil {
		return nil, err
	}
	return f.person, nil
}

func (f *fakeProvider) Credits(ctx context.Context, kind models.Kind, id int64) (*metadata.Credits, error) {
	if err := f.record(ctx, "credits"); err != nil {
		return nil, err
	}
	return f.credits, nil
}

func (f *fakeProvider) Videos(ctx context.Context, kind models.Kind, id int64) ([]metadata.Video, error) {
	if err := f.record(ctx, "videos"); err != nil {
		return nil, err
	}
	return f.videos, nil
}

func (f *fakeProvider) Images(ctx context.Context, kind models.Kind, id int64) (*metadata.ImageSet, error) {
	if err := f.record(ctx, "images"); err != nil {
		return nil, err
	}
	return f.images, nil
}

func (f *fakeProvider) PersonImages(ctx context.Context, id int64) ([]metadata.ImageRecord, error) {
	if err := f.record(ctx, "person-images"); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeProvider) PersonCredits(ctx context.Context, id int64) (*metadata.PersonCredits, error) {
	if err := f.record(ctx, "person-credits"); err != nil {
		return nil, err
	}
	return f.personCreds, nil
}

func (f *fakeProvider) Genres(ctx context.Context, kind models.Kind) ([]models.Genre, error) {
	if err := f.record(ctx, "genres/"+string(kind)); err != nil {
		return nil, err
	}
	if kind == models.KindMovie {
		return []models.Genre{{ID: 18, Name: "Drama"}, {ID: 28, Name: "Action"}}, nil
	}
	return []models.Genre{{ID: 18, Name: "Drama"}, {ID: 10759, Name: "Action & Adventure"}}, nil
}

func (f *fakeProvider) TrendingPeople(ctx context.Context, window metadata.Window, page int) (metadata.PeoplePage, error) {
	if err := f.record(ctx, "people/"+string(window)); err != nil {
		return metadata.PeoplePage{}, err
	}
	return metadata.PeoplePage{Results: []metadata.PersonRecord{{ID: 1, Name: "Star", Popularity: 90, KnownForDepartment: "Acting"}}}, nil
}
