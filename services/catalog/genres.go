package catalog

import (
	"sort"
	"strings"

	"cinecontext/models"
)

// GenreTable maps genre ids to names across the movie and show lists, and
// back. The two provider lists share most ids; when they do not, a name
// resolves to every id that carries it.
type GenreTable struct {
	names map[int64]string
	ids   map[string][]int64
	order []int64
}

// NewGenreTable merges genre lists. The first name seen for an id wins.
func NewGenreTable(lists ...[]models.Genre) GenreTable {
	t := GenreTable{
		names: make(map[int64]string),
		ids:   make(map[string][]int64),
	}
	for _, list := range lists {
		for _, g := range list {
			if _, ok := t.names[g.ID]; ok {
				continue
			}
			t.names[g.ID] = g.Name
			t.order = append(t.order, g.ID)
			key := genreKey(g.Name)
			t.ids[key] = append(t.ids[key], g.ID)
		}
	}
	return t
}

func genreKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (t GenreTable) Len() int {
	return len(t.order)
}

func (t GenreTable) Name(id int64) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// Names resolves ids in order, skipping unknown ones.
func (t GenreTable) Names(ids []int64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := t.names[id]; ok {
			out = append(out, name)
		}
	}
	return out
}

// IDsFor is the reverse lookup. Names compare case-insensitively.
func (t GenreTable) IDsFor(name string) []int64 {
	return t.ids[genreKey(name)]
}

// Genres lists the table sorted by name, for the filter controls.
func (t GenreTable) Genres() []models.Genre {
	out := make([]models.Genre, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, models.Genre{ID: id, Name: t.names[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
