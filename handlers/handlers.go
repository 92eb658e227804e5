package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"cinecontext/models"
	"cinecontext/services/accounts"
	"cinecontext/services/discovery"
	"cinecontext/services/watchlist"
)

type discoveryService interface {
	Home(scope *discovery.Scope, q discovery.HomeQuery) (*discovery.HomeView, error)
	Title(scope *discovery.Scope, kind models.Kind, id int64) (*models.TitleDetail, error)
	Person(scope *discovery.Scope, id int64) (*models.PersonDetail, error)
	Search(scope *discovery.Scope, query string, page int, filter models.FilterState) (*discovery.SearchView, error)
	Profile(scope *discovery.Scope, keys []string) (*discovery.ProfileView, error)
}

var _ discoveryService = (*discovery.Service)(nil)

type watchlistStore interface {
	IsWatchlisted(kind models.Kind, id int64) bool
	Toggle(kind models.Kind, id int64) (bool, error)
	Keys() []string
}

var _ watchlistStore = (*watchlist.Store)(nil)

type accountsService interface {
	Login(form models.LoginForm) (models.FormResult, error)
	Signup(form models.SignupForm) (models.FormResult, error)
	ForgotPassword(form models.ForgotPasswordForm) (models.FormResult, error)
}

var _ accountsService = (*accounts.Service)(nil)

// Handlers serves the HTML pages and their JSON twins.
type Handlers struct {
	discovery discoveryService
	watchlist watchlistStore
	accounts  accountsService
	render    *Renderer
	log       *slog.Logger
}

func New(disc discoveryService, store watchlistStore, accts accountsService, render *Renderer, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		discovery: disc,
		watchlist: store,
		accounts:  accts,
		render:    render,
		log:       logger.With("component", "handlers"),
	}
}

// Register mounts every page, API and form route on r.
func (h *Handlers) Register(r *mux.Router) {
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", NewStaticHandler()))

	r.HandleFunc("/", h.page("home", h.loadHome)).Methods(http.MethodGet)
	r.HandleFunc("/home", h.page("home", h.loadHome)).Methods(http.MethodGet)
	r.HandleFunc("/movie/{id:[0-9]+}", h.page("title", h.loadTitle(models.KindMovie))).Methods(http.MethodGet)
	r.HandleFunc("/show/{id:[0-9]+}", h.page("title", h.loadTitle(models.KindShow))).Methods(http.MethodGet)
	r.HandleFunc("/person/{id:[0-9]+}", h.page("person", h.loadPerson)).Methods(http.MethodGet)
	r.HandleFunc("/search", h.page("search", h.loadSearch)).Methods(http.MethodGet)
	r.HandleFunc("/profile", h.page("profile", h.loadProfile)).Methods(http.MethodGet)

	r.HandleFunc("/watchlist/{kind}/{id:[0-9]+}", h.ToggleWatchlist).Methods(http.MethodPost)

	r.HandleFunc("/login", h.LoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/signup", h.SignupForm).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/forgot-password", h.ForgotPasswordForm).Methods(http.MethodGet)
	r.HandleFunc("/forgot-password", h.ForgotPassword).Methods(http.MethodPost)

	apiRoutes := r.PathPrefix("/api").Subrouter()
	apiRoutes.HandleFunc("/home", h.api(h.loadHome)).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/movie/{id:[0-9]+}", h.api(h.loadTitle(models.KindMovie))).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/show/{id:[0-9]+}", h.api(h.loadTitle(models.KindShow))).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/person/{id:[0-9]+}", h.api(h.loadPerson)).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/search", h.api(h.loadSearch)).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/profile", h.api(h.loadProfile)).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/watchlist", h.ListWatchlist).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/watchlist/{kind}/{id:[0-9]+}", h.ToggleWatchlist).Methods(http.MethodPost)
	apiRoutes.HandleFunc("/version", h.Version).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(h.notFound)
}
