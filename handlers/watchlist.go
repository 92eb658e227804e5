package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"cinecontext/api"
	"cinecontext/models"
	"cinecontext/services/watchlist"
)

// ToggleResponse is returned by POST /api/watchlist/{kind}/{id}.
type ToggleResponse struct {
	Key         string `json:"key"`
	Watchlisted bool   `json:"watchlisted"`
}

// ToggleWatchlist flips one title in the watchlist. The form variant
// redirects back to the page it came from.
func (h *Handlers) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	asJSON := strings.HasPrefix(r.URL.Path, "/api/")

	kind, ok := models.ParseKind(mux.Vars(r)["kind"])
	if !ok {
		h.fail(w, r, badRequest(errors.New("unknown kind")), asJSON)
		return
	}
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err, asJSON)
		return
	}

	on, err := h.watchlist.Toggle(kind, id)
	if errors.Is(err, watchlist.ErrUnsupportedKind) {
		h.fail(w, r, badRequest(err), asJSON)
		return
	}
	if err != nil {
		h.log.Error("toggle watchlist failed", "kind", kind, "id", id, "error", err, "request_id", api.GetRequestID(r))
		if asJSON {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to save watchlist", "status": http.StatusInternalServerError})
			return
		}
		h.renderPage(w, r, http.StatusInternalServerError, "error", view{
			title: "Error",
			data:  ErrorPage{Status: http.StatusInternalServerError, Message: "Your list could not be saved. Please try again."},
		})
		return
	}
	h.log.Debug("watchlist toggled", "kind", kind, "id", id, "watchlisted", on)

	if asJSON {
		writeJSON(w, http.StatusOK, ToggleResponse{Key: models.WatchlistKey(kind, id), Watchlisted: on})
		return
	}
	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

// ListWatchlist returns the raw keys in insertion order.
func (h *Handlers) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"keys": h.watchlist.Keys()})
}

// redirectTarget picks where a form post returns to: an explicit "next"
// field, then the referring page, both only when same-origin.
func redirectTarget(r *http.Request) string {
	if next := r.FormValue("next"); isLocalPath(next) {
		return next
	}
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host && isLocalPath(ref.RequestURI()) {
		return ref.RequestURI()
	}
	return "/profile"
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, "\\")
}
