package metadata

import (
	"fmt"

	"cinecontext/models"
)

// List endpoints. Each is paginated.
const (
	EndpointMoviePopular    = "/movie/popular"
	EndpointShowPopular     = "/tv/popular"
	EndpointMovieTopRated   = "/movie/top_rated"
	EndpointShowTopRated    = "/tv/top_rated"
	EndpointMovieNowPlaying = "/movie/now_playing"
	EndpointMovieUpcoming   = "/movie/upcoming"
	EndpointSearchMulti     = "/search/multi"
)

// Window is the trending time window.
type Window string

const (
	WindowDay  Window = "day"
	WindowWeek Window = "week"
)

// ParseWindow defaults anything unrecognized to the daily window.
func ParseWindow(value string) Window {
	if Window(value) == WindowWeek {
		return WindowWeek
	}
	return WindowDay
}

// Trending media types accepted by TrendingEndpoint.
const (
	TrendingAll    = "all"
	TrendingMovie  = "movie"
	TrendingTV     = "tv"
	TrendingPerson = "person"
)

func TrendingEndpoint(mediaType string, window Window) string {
	return fmt.Sprintf("/trending/%s/%s", mediaType, window)
}

func detailEndpoint(kind models.Kind, id int64, suffix string) string {
	path := fmt.Sprintf("/%s/%d", kind.ProviderPath(), id)
	if suffix != "" {
		path += "/" + suffix
	}
	return path
}

func genreEndpoint(kind models.Kind) string {
	return fmt.Sprintf("/genre/%s/list", kind.ProviderPath())
}
