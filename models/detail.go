package models

// Genre is one entry of the provider's genre id→name table.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profilePath,omitempty"`
	Order       int    `json:"order"`
}

type CrewMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profilePath,omitempty"`
}

// Trailer is a video hosted on YouTube, ready for the trailer modal.
type Trailer struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Official     bool   `json:"official"`
	EmbedURL     string `json:"embedUrl"`
	WatchURL     string `json:"watchUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// ImageAsset is a logo, backdrop, poster or profile image.
type ImageAsset struct {
	Path        string  `json:"path"`
	Language    string  `json:"language,omitempty"`
	AspectRatio float64 `json:"aspectRatio"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	VoteAverage float64 `json:"voteAverage"`
}

// TitleDetail backs the movie and show detail pages.
type TitleDetail struct {
	CatalogItem
	Tagline        string       `json:"tagline,omitempty"`
	Status         string       `json:"status,omitempty"`
	RuntimeMinutes int          `json:"runtimeMinutes,omitempty"`
	Seasons        int          `json:"seasons,omitempty"`
	Episodes       int          `json:"episodes,omitempty"`
	Homepage       string       `json:"homepage,omitempty"`
	Cast           []CastMember `json:"cast"`
	Crew           []CrewMember `json:"crew"`
	Trailers       []Trailer    `json:"trailers"`
	Logo           *ImageAsset  `json:"logo,omitempty"`
	Backdrops      []ImageAsset `json:"backdrops"`
}

// PrimaryTrailer returns the trailer the page opens first, or nil.
func (d TitleDetail) PrimaryTrailer() *Trailer {
	if len(d.Trailers) == 0 {
		return nil
	}
	return &d.Trailers[0]
}

// PersonDetail backs the person page.
type PersonDetail struct {
	PersonItem
	Biography    string        `json:"biography"`
	Birthday     string        `json:"birthday,omitempty"`
	Deathday     string        `json:"deathday,omitempty"`
	PlaceOfBirth string        `json:"placeOfBirth,omitempty"`
	Images       []ImageAsset  `json:"images"`
	Filmography  []CatalogItem `json:"filmography"`
}
