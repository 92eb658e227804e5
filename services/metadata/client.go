package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"

	"cinecontext/config"
	"cinecontext/models"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	retryDelay     = 300 * time.Millisecond
	maxErrorBody   = 4 << 10
)

// Client issues authenticated GET requests against TMDB. It holds no
// cache; every call reaches the network.
type Client struct {
	apiKey   string
	language string
	baseURL  string
	attempts uint
	httpc    *http.Client
	log      *slog.Logger
}

// NewClient builds a client from the provider settings. A nil httpClient
// gets one with the configured timeout; a nil logger uses slog.Default.
func NewClient(settings config.ProviderSettings, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: settings.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(settings.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	attempts := settings.Attempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		apiKey:   strings.TrimSpace(settings.APIKey),
		language: NormalizeLanguage(settings.Language),
		baseURL:  baseURL,
		attempts: uint(attempts),
		httpc:    httpClient,
		log:      logger.With("component", "tmdb"),
	}
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Language is the normalized locale sent with every call.
func (c *Client) Language() string {
	return c.language
}

// FetchCollection loads one page of a list endpoint such as
// EndpointMoviePopular or a TrendingEndpoint path.
func (c *Client) FetchCollection(ctx context.Context, endpoint string, page int) (Collection, error) {
	var out Collection
	if err := c.get(ctx, endpoint, pageParams(page), &out); err != nil {
		return Collection{}, err
	}
	return out, nil
}

// SearchMulti queries movies, shows and people at once. Each hit is tagged
// from its media_type; hits without a usable discriminator are dropped.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (SearchPage, error) {
	params := pageParams(page)
	params.Set("query", query)
	params.Set("include_adult", "false")

	var raw Collection
	if err := c.get(ctx, EndpointSearchMulti, params, &raw); err != nil {
		return SearchPage{}, err
	}

	out := SearchPage{
		Results:      make([]Tagged, 0, len(raw.Items)),
		Page:         raw.Page,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
	}
	for _, rec := range raw.Items {
		kind, ok := kindFromMediaType(rec.MediaType)
		if !ok {
			out.Rejected++
			c.log.Warn("dropping search hit without usable media_type", "id", rec.ID, "media_type", rec.MediaType)
			continue
		}
		out.Results = append(out.Results, Tagged{Kind: kind, Record: rec})
	}
	return out, nil
}

func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieDetail, error) {
	var out MovieDetail
	if err := c.get(ctx, detailEndpoint(models.KindMovie, id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ShowDetails(ctx context.Context, id int64) (*ShowDetail, error) {
	var out ShowDetail
	if err := c.get(ctx, detailEndpoint(models.KindShow, id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PersonDetails(ctx context.Context, id int64) (*PersonRecord, error) {
	var out PersonRecord
	if err := c.get(ctx, detailEndpoint(models.KindPerson, id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Credits returns cast and crew for a movie or show.
func (c *Client) Credits(ctx context.Context, kind models.Kind, id int64) (*Credits, error) {
	var out Credits
	if err := c.get(ctx, detailEndpoint(kind, id, "credits"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Videos(ctx context.Context, kind models.Kind, id int64) ([]Video, error) {
	var out struct {
		Results []Video `json:"results"`
	}
	if err := c.get(ctx, detailEndpoint(kind, id, "videos"), nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Images returns logos, backdrops and posters for a movie or show in the
// client language, English, and language-neutral variants.
func (c *Client) Images(ctx context.Context, kind models.Kind, id int64) (*ImageSet, error) {
	params := url.Values{}
	params.Set("include_image_language", c.imageLanguages())
	var out ImageSet
	if err := c.get(ctx, detailEndpoint(kind, id, "images"), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PersonImages(ctx context.Context, id int64) ([]ImageRecord, error) {
	var out struct {
		Profiles []ImageRecord `json:"profiles"`
	}
	if err := c.get(ctx, detailEndpoint(models.KindPerson, id, "images"), nil, &out); err != nil {
		return nil, err
	}
	return out.Profiles, nil
}

func (c *Client) PersonCredits(ctx context.Context, id int64) (*PersonCredits, error) {
	var out PersonCredits
	if err := c.get(ctx, detailEndpoint(models.KindPerson, id, "combined_credits"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Genres returns the id→name table for movies or shows.
func (c *Client) Genres(ctx context.Context, kind models.Kind) ([]models.Genre, error) {
	var out struct {
		Genres []models.Genre `json:"genres"`
	}
	if err := c.get(ctx, genreEndpoint(kind), nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

func (c *Client) TrendingPeople(ctx context.Context, window Window, page int) (PeoplePage, error) {
	var out PeoplePage
	if err := c.get(ctx, TrendingEndpoint(TrendingPerson, window), pageParams(page), &out); err != nil {
		return PeoplePage{}, err
	}
	return out, nil
}

func (c *Client) imageLanguages() string {
	base := strings.SplitN(c.language, "-", 2)[0]
	if base == "en" {
		return "en,null"
	}
	return base + ",en,null"
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	if !c.IsConfigured() {
		return &ProviderError{Endpoint: endpoint, Err: ErrNotConfigured}
	}

	query := url.Values{}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	query.Set("api_key", c.apiKey)
	if query.Get("language") == "" {
		query.Set("language", c.language)
	}
	target := c.baseURL + endpoint + "?" + query.Encode()

	start := time.Now()
	err := retry.Do(
		func() error { return c.doGET(ctx, endpoint, target, v) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var perr *ProviderError
			return errors.As(err, &perr) && perr.Temporary() && ctx.Err() == nil
		}),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("retrying provider call", "endpoint", endpoint, "attempt", n+1, "error", err)
		}),
	)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		if errors.Is(err, context.Canceled) {
			outcome = "canceled"
		}
	}
	observeRequest(endpoint, outcome, time.Since(start).Seconds())
	return err
}

func (c *Client) doGET(ctx context.Context, endpoint, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &ProviderError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &ProviderError{Endpoint: endpoint, Err: redactURL(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := &ProviderError{Endpoint: endpoint, StatusCode: resp.StatusCode, Status: resp.Status}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var status struct {
			StatusMessage string `json:"status_message"`
		}
		if json.Unmarshal(body, &status) == nil {
			perr.Message = status.StatusMessage
		}
		return perr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &ProviderError{Endpoint: endpoint, StatusCode: resp.StatusCode, Status: resp.Status, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// redactURL strips the query string (and with it api_key) from transport
// errors before they reach logs.
func redactURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if idx := strings.IndexByte(uerr.URL, '?'); idx >= 0 {
			uerr.URL = uerr.URL[:idx]
		}
	}
	return err
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return params
}

func kindFromMediaType(mediaType string) (models.Kind, bool) {
	switch mediaType {
	case "movie":
		return models.KindMovie, true
	case "tv":
		return models.KindShow, true
	case "person":
		return models.KindPerson, true
	default:
		return "", false
	}
}
