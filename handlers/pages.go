package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"cinecontext/api"
	"cinecontext/internal/validation"
	"cinecontext/models"
	"cinecontext/services/discovery"
	"cinecontext/services/metadata"
)

// view is what a loader produces: the page title plus the data the page
// template and the JSON twin both receive.
type view struct {
	title string
	nav   string
	data  any
}

type loader func(r *http.Request, scope *discovery.Scope) (view, error)

// requestError marks a failure caused by the request's own parameters.
type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{err: err}
}

// HomePage is the home page state: the view plus the URL parameters that
// produced it.
type HomePage struct {
	*discovery.HomeView
	Filters FilterForm `json:"-"`
}

// TitlePage carries the detail view and the trailer modal state.
type TitlePage struct {
	*models.TitleDetail
	ActiveTrailer *models.Trailer `json:"activeTrailer,omitempty"`
}

type SearchPage struct {
	*discovery.SearchView
	Filters FilterForm `json:"-"`
}

// FilterForm drives the filter controls partial.
type FilterForm struct {
	Action string
	Query  string
	Tab    string
	Filter models.FilterState
	Genres []models.Genre
}

func (h *Handlers) page(name string, load loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := discovery.NewScope(r.Context())
		defer scope.Close()

		v, err := load(r, scope)
		if err != nil {
			h.fail(w, r, err, false)
			return
		}
		h.renderPage(w, r, http.StatusOK, name, v)
	}
}

func (h *Handlers) api(load loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := discovery.NewScope(r.Context())
		defer scope.Close()

		v, err := load(r, scope)
		if err != nil {
			h.fail(w, r, err, true)
			return
		}
		writeJSON(w, http.StatusOK, v.data)
	}
}

func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, v view) {
	data := PageData{
		Title:     v.title,
		Nav:       v.nav,
		Path:      r.URL.RequestURI(),
		Query:     r.URL.Query().Get("q"),
		RequestID: api.GetRequestID(r),
		Data:      v.data,
	}
	if err := h.render.Page(w, status, name, data); err != nil {
		h.log.Error("render page failed", "page", name, "error", err, "request_id", data.RequestID)
	}
}

func (h *Handlers) loadHome(r *http.Request, scope *discovery.Scope) (view, error) {
	q := r.URL.Query()
	filter, err := models.FilterStateFromQuery(q)
	if err != nil {
		return view{}, badRequest(err)
	}
	window := metadata.ParseWindow(q.Get("tab"))
	page, err := pageParam(q.Get("page"))
	if err != nil {
		return view{}, err
	}

	home, err := h.discovery.Home(scope, discovery.HomeQuery{Window: window, Page: page, Filter: filter})
	if err != nil {
		return view{}, err
	}
	return view{
		title: "Home",
		nav:   "home",
		data: HomePage{
			HomeView: home,
			Filters:  FilterForm{Action: "/home", Tab: string(window), Filter: filter, Genres: home.Genres},
		},
	}, nil
}

func (h *Handlers) loadTitle(kind models.Kind) loader {
	return func(r *http.Request, scope *discovery.Scope) (view, error) {
		id, err := idParam(r)
		if err != nil {
			return view{}, err
		}
		detail, err := h.discovery.Title(scope, kind, id)
		if err != nil {
			return view{}, err
		}

		data := TitlePage{TitleDetail: detail}
		if key := r.URL.Query().Get("trailer"); key != "" {
			for i := range detail.Trailers {
				if detail.Trailers[i].Key == key {
					data.ActiveTrailer = &detail.Trailers[i]
					break
				}
			}
		}
		return view{title: detail.Title, data: data}, nil
	}
}

func (h *Handlers) loadPerson(r *http.Request, scope *discovery.Scope) (view, error) {
	id, err := idParam(r)
	if err != nil {
		return view{}, err
	}
	person, err := h.discovery.Person(scope, id)
	if err != nil {
		return view{}, err
	}
	return view{title: person.Name, data: person}, nil
}

func (h *Handlers) loadSearch(r *http.Request, scope *discovery.Scope) (view, error) {
	q := r.URL.Query()
	filter, err := models.FilterStateFromQuery(q)
	if err != nil {
		return view{}, badRequest(err)
	}
	page, err := pageParam(q.Get("page"))
	if err != nil {
		return view{}, err
	}
	query := q.Get("q")

	result, err := h.discovery.Search(scope, query, page, filter)
	if err != nil {
		return view{}, err
	}
	title := "Search"
	if result.Query != "" {
		title = "Search: " + result.Query
	}
	return view{
		title: title,
		nav:   "search",
		data: SearchPage{
			SearchView: result,
			Filters:    FilterForm{Action: "/search", Query: result.Query, Filter: filter, Genres: result.Genres},
		},
	}, nil
}

func (h *Handlers) loadProfile(r *http.Request, scope *discovery.Scope) (view, error) {
	profile, err := h.discovery.Profile(scope, h.watchlist.Keys())
	if err != nil {
		return view{}, err
	}
	return view{title: "My List", nav: "profile", data: profile}, nil
}

// fail maps a load error onto a status and renders it as a page or JSON.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error, asJSON bool) {
	requestID := api.GetRequestID(r)

	if errors.Is(err, discovery.ErrScopeClosed) && r.Context().Err() != nil {
		h.log.Debug("request abandoned", "path", r.URL.Path, "request_id", requestID)
		return
	}

	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", r.URL.Path, "status", status, "error", err, "request_id", requestID)
	} else {
		h.log.Info("request rejected", "path", r.URL.Path, "status", status, "error", err, "request_id", requestID)
	}

	if asJSON {
		writeJSON(w, status, map[string]any{"error": message, "status": status, "requestId": requestID})
		return
	}
	h.renderPage(w, r, status, "error", view{
		title: http.StatusText(status),
		data: ErrorPage{
			Status:  status,
			Message: message,
			Retry:   status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout,
			RetryTo: r.URL.RequestURI(),
		},
	})
}

// ErrorPage is rendered for every failed page load.
type ErrorPage struct {
	Status  int
	Message string
	Retry   bool
	RetryTo string
}

func classify(err error) (int, string) {
	var rerr *requestError
	var verr *validation.Error
	var perr *metadata.ProviderError
	switch {
	case errors.As(err, &rerr), errors.As(err, &verr):
		return http.StatusBadRequest, "The request could not be understood: " + err.Error()
	case errors.Is(err, discovery.ErrUnsupportedKind):
		return http.StatusBadRequest, "That kind of title is not supported here."
	case metadata.IsNotFound(err):
		return http.StatusNotFound, "We couldn't find that title or person."
	case errors.Is(err, metadata.ErrNotConfigured):
		return http.StatusServiceUnavailable, "The movie database is not configured. Set an API key and reload."
	case errors.Is(err, discovery.ErrScopeClosed):
		return http.StatusServiceUnavailable, "The page was interrupted before it finished loading."
	case errors.As(err, &perr):
		return http.StatusBadGateway, "The movie database is unavailable right now."
	default:
		return http.StatusInternalServerError, "Something went wrong."
	}
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found", "status": http.StatusNotFound})
		return
	}
	h.renderPage(w, r, http.StatusNotFound, "error", view{
		title: "Not Found",
		data:  ErrorPage{Status: http.StatusNotFound, Message: "There is nothing at this address."},
	})
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest(errors.New("invalid id"))
	}
	return id, nil
}

func pageParam(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 || page > 500 {
		return 0, badRequest(errors.New("invalid page"))
	}
	return page, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
