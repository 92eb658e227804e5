package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"golang.org/x/net/html"

	"cinecontext/models"
	"cinecontext/services/discovery"
	"cinecontext/services/metadata"
	"cinecontext/services/watchlist"
)

type fakeDiscovery struct {
	home    *discovery.HomeView
	title   *models.TitleDetail
	person  *models.PersonDetail
	search  *discovery.SearchView
	profile *discovery.ProfileView
	err     error

	lastHome   discovery.HomeQuery
	lastKind   models.Kind
	lastID     int64
	lastQuery  string
	lastFilter models.FilterState
	lastKeys   []string
	scope      *discovery.Scope
}

func (f *fakeDiscovery) Home(scope *discovery.Scope, q discovery.HomeQuery) (*discovery.HomeView, error) {
	f.scope, f.lastHome = scope, q
	if f.err != nil {
		return nil, f.err
	}
	return f.home, nil
}

func (f *fakeDiscovery) Title(scope *discovery.Scope, kind models.Kind, id int64) (*models.TitleDetail, error) {
	f.scope, f.lastKind, f.lastID = scope, kind, id
	if f.err != nil {
		return nil, f.err
	}
	return f.title, nil
}

func (f *fakeDiscovery) Person(scope *discovery.Scope, id int64) (*models.PersonDetail, error) {
	f.scope, f.lastID = scope, id
	if f.err != nil {
		return nil, f.err
	}
	return f.person, nil
}

func (f *fakeDiscovery) Search(scope *discovery.Scope, query string, page int, filter models.FilterState) (*discovery.SearchView, error) {
	f.scope, f.lastQuery, f.lastFilter = scope, query, filter
	if f.err != nil {
		return nil, f.err
	}
	return f.search, nil
}

func (f *fakeDiscovery) Profile(scope *discovery.Scope, keys []string) (*discovery.ProfileView, error) {
	f.scope, f.lastKeys = scope, keys
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeStore struct {
	keys    []string
	saveErr error
}

func (s *fakeStore) IsWatchlisted(kind models.Kind, id int64) bool {
	key := models.WatchlistKey(kind, id)
	for _, k := range s.keys {
		if k == key {
			return true
		}
	}
	return false
}

func (s *fakeStore) Toggle(kind models.Kind, id int64) (bool, error) {
	if kind == models.KindPerson {
		return false, watchlist.ErrUnsupportedKind
	}
	if s.saveErr != nil {
		return false, s.saveErr
	}
	key := models.WatchlistKey(kind, id)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return false, nil
		}
	}
	s.keys = append(s.keys, key)
	return true, nil
}

func (s *fakeStore) Keys() []string {
	return append([]string(nil), s.keys...)
}

type fakeAccounts struct {
	result models.FormResult
	err    error
	login  models.LoginForm
	signup models.SignupForm
	forgot models.ForgotPasswordForm
}

func (a *fakeAccounts) Login(form models.LoginForm) (models.FormResult, error) {
	a.login = form
	return a.result, a.err
}

func (a *fakeAccounts) Signup(form models.SignupForm) (models.FormResult, error) {
	a.signup = form
	return a.result, a.err
}

func (a *fakeAccounts) ForgotPassword(form models.ForgotPasswordForm) (models.FormResult, error) {
	a.forgot = form
	return a.result, a.err
}

func newTestRouter(t *testing.T, disc *fakeDiscovery, store *fakeStore, accts *fakeAccounts) http.Handler {
	t.Helper()
	if disc == nil {
		disc = &fakeDiscovery{}
	}
	if store == nil {
		store = &fakeStore{}
	}
	if accts == nil {
		accts = &fakeAccounts{}
	}
	render, err := NewRenderer(RendererOptions{
		Images:        metadata.DefaultCDN,
		Locale:        "en-US",
		IsWatchlisted: store.IsWatchlisted,
	})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	h := New(disc, store, accts, render, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := mux.NewRouter()
	h.Register(r)
	return r
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func withClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func withTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func movie(id int64, title string) models.CatalogItem {
	return models.CatalogItem{
		ID:         id,
		Kind:       models.KindMovie,
		Title:      title,
		Year:       "2024",
		Rating:     7.5,
		Genres:     []string{"Drama"},
		MoodTags:   []string{"Emotional"},
		PosterPath: "/p" + title + ".jpg",
		Overview:   "About " + title,
	}
}
