package metadata

import "cinecontext/models"

// RawRecord is a movie, show or person entry as the provider sends it in
// list, search and credit payloads. Title, Name and the two date fields are
// pointers so that presence can be told apart from an empty value.
type RawRecord struct {
	ID                 int64          `json:"id"`
	MediaType          string         `json:"media_type,omitempty"`
	Title              *string        `json:"title,omitempty"`
	OriginalTitle      string         `json:"original_title,omitempty"`
	Name               *string        `json:"name,omitempty"`
	OriginalName       string         `json:"original_name,omitempty"`
	ReleaseDate        *string        `json:"release_date,omitempty"`
	FirstAirDate       *string        `json:"first_air_date,omitempty"`
	Overview           string         `json:"overview"`
	PosterPath         string         `json:"poster_path"`
	BackdropPath       string         `json:"backdrop_path"`
	ProfilePath        string         `json:"profile_path,omitempty"`
	VoteAverage        float64        `json:"vote_average"`
	VoteCount          int            `json:"vote_count"`
	Popularity         float64        `json:"popularity"`
	GenreIDs           []int64        `json:"genre_ids,omitempty"`
	Genres             []models.Genre `json:"genres,omitempty"`
	OriginalLanguage   string         `json:"original_language,omitempty"`
	Adult              bool           `json:"adult"`
	KnownForDepartment string         `json:"known_for_department,omitempty"`
	KnownFor           []RawRecord    `json:"known_for,omitempty"`

	// Set on combined_credits entries.
	Character  string `json:"character,omitempty"`
	Job        string `json:"job,omitempty"`
	Department string `json:"department,omitempty"`
}

// Tagged is a record whose kind was decided once, at ingestion.
type Tagged struct {
	Kind   models.Kind
	Record RawRecord
}

// Collection is one page of a list endpoint.
type Collection struct {
	Items        []RawRecord `json:"results"`
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// SearchPage is one page of /search/multi with every hit already tagged.
// Rejected counts hits dropped for a missing or unknown media_type.
type SearchPage struct {
	Results      []Tagged
	Rejected     int
	Page         int
	TotalPages   int
	TotalResults int
}

// MovieDetail is the /movie/{id} payload.
type MovieDetail struct {
	RawRecord
	Runtime  int    `json:"runtime"`
	Tagline  string `json:"tagline"`
	Status   string `json:"status"`
	Homepage string `json:"homepage"`
	IMDBID   string `json:"imdb_id"`
}

// ShowDetail is the /tv/{id} payload.
type ShowDetail struct {
	RawRecord
	NumberOfSeasons  int          `json:"number_of_seasons"`
	NumberOfEpisodes int          `json:"number_of_episodes"`
	EpisodeRunTime   []int        `json:"episode_run_time"`
	Tagline          string       `json:"tagline"`
	Status           string       `json:"status"`
	Homepage         string       `json:"homepage"`
	CreatedBy        []CrewCredit `json:"created_by"`
	LastAirDate      string       `json:"last_air_date"`
	InProduction     bool         `json:"in_production"`
}

// PersonRecord is the /person/{id} payload and a /trending/person entry.
type PersonRecord struct {
	ID                 int64       `json:"id"`
	Name               string      `json:"name"`
	ProfilePath        string      `json:"profile_path"`
	KnownForDepartment string      `json:"known_for_department"`
	Popularity         float64     `json:"popularity"`
	KnownFor           []RawRecord `json:"known_for,omitempty"`
	Biography          string      `json:"biography,omitempty"`
	Birthday           string      `json:"birthday,omitempty"`
	Deathday           string      `json:"deathday,omitempty"`
	PlaceOfBirth       string      `json:"place_of_birth,omitempty"`
}

// PeoplePage is one page of /trending/person/{window}.
type PeoplePage struct {
	Results      []PersonRecord `json:"results"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type CastCredit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type CrewCredit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// Credits is the /{movie|tv}/{id}/credits payload.
type Credits struct {
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}

// PersonCredits is the /person/{id}/combined_credits payload. Entries carry
// media_type.
type PersonCredits struct {
	Cast []RawRecord `json:"cast"`
	Crew []RawRecord `json:"crew"`
}

type Video struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	Language    string `json:"iso_639_1"`
	PublishedAt string `json:"published_at"`
}

type ImageRecord struct {
	FilePath    string  `json:"file_path"`
	Language    string  `json:"iso_639_1"`
	AspectRatio float64 `json:"aspect_ratio"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// ImageSet is the /{movie|tv}/{id}/images payload.
type ImageSet struct {
	Logos     []ImageRecord `json:"logos"`
	Backdrops []ImageRecord `json:"backdrops"`
	Posters   []ImageRecord `json:"posters"`
}
