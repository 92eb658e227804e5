package metadata

import "strings"

const (
	// DefaultImageBaseURL is the TMDB image CDN.
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	// PlaceholderImageURL stands in for any missing poster, backdrop, logo or
	// profile image.
	PlaceholderImageURL = "/static/placeholder.svg"
)

type imageSizes struct {
	allowed  []string
	fallback string
}

var (
	posterSizes   = imageSizes{allowed: []string{"w92", "w154", "w185", "w342", "w500", "w780", "original"}, fallback: "w500"}
	backdropSizes = imageSizes{allowed: []string{"w300", "w780", "w1280", "original"}, fallback: "w1280"}
	logoSizes     = imageSizes{allowed: []string{"w45", "w92", "w154", "w185", "w300", "w500", "original"}, fallback: "w300"}
	profileSizes  = imageSizes{allowed: []string{"w45", "w185", "h632", "original"}, fallback: "w185"}
)

func (s imageSizes) pick(size string) string {
	for _, allowed := range s.allowed {
		if size == allowed {
			return size
		}
	}
	return s.fallback
}

// ImageCDN builds image URLs against a configurable CDN base.
type ImageCDN struct {
	BaseURL string
}

// DefaultCDN points at the public TMDB image CDN.
var DefaultCDN = ImageCDN{BaseURL: DefaultImageBaseURL}

func (c ImageCDN) build(path, size string, sizes imageSizes) string {
	if path == "" {
		return PlaceholderImageURL
	}
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = DefaultImageBaseURL
	}
	return base + "/" + sizes.pick(size) + path
}

func (c ImageCDN) Poster(path, size string) string   { return c.build(path, size, posterSizes) }
func (c ImageCDN) Backdrop(path, size string) string { return c.build(path, size, backdropSizes) }
func (c ImageCDN) Logo(path, size string) string     { return c.build(path, size, logoSizes) }
func (c ImageCDN) Profile(path, size string) string  { return c.build(path, size, profileSizes) }

// BuildImageURL returns the poster URL for path, or the placeholder when
// path is empty. Unknown sizes fall back to w500.
func BuildImageURL(path, size string) string {
	return DefaultCDN.Poster(path, size)
}

// BuildBackdropURL is BuildImageURL for backdrops (default w1280).
func BuildBackdropURL(path, size string) string {
	return DefaultCDN.Backdrop(path, size)
}

// BuildLogoURL is BuildImageURL for logos (default w300).
func BuildLogoURL(path, size string) string {
	return DefaultCDN.Logo(path, size)
}

// BuildProfileURL is BuildImageURL for people (default w185).
func BuildProfileURL(path, size string) string {
	return DefaultCDN.Profile(path, size)
}
