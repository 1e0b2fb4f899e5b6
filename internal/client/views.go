package client

import (
	"sort"
	"time"

	"example.com/mynotes/internal/notes"
	"example.com/mynotes/internal/render"
	"example.com/mynotes/internal/stringsx"
)

const previewLength = 100

// Card is one tile in the note grid.
type Card struct {
	ID        string
	Title     string
	Preview   string
	Tags      []string
	CreatedAt time.Time
}

// Grid returns the snapshot as grid cards, in snapshot (newest-first)
// order.
func (c *Controller) Grid() []Card {
	cards := make([]Card, 0, len(c.notes))
	for _, n := range c.notes {
		cards = append(cards, Card{
			ID:        n.ID,
			Title:     n.Title,
			Preview:   stringsx.Preview(n.Content, previewLength),
			Tags:      stringsx.CleanTags(n.Tags),
			CreatedAt: n.CreatedAt,
		})
	}
	return cards
}

// TagEntry is one row of the tag index.
type TagEntry struct {
	Name   string
	All    bool // the synthetic "All Notes" entry that clears the filter
	Active bool
}

// TagIndex recomputes the tag list from the current snapshot: distinct
// trimmed non-empty tags, sorted, behind a synthetic "All Notes" entry.
func (c *Controller) TagIndex() []TagEntry {
	seen := map[string]struct{}{}
	for _, n := range c.notes {
		for _, t := range stringsx.CleanTags(n.Tags) {
			seen[t] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for t := range seen {
		names = append(names, t)
	}
	sort.Strings(names)

	index := make([]TagEntry, 0, len(names)+1)
	index = append(index, TagEntry{Name: "All Notes", All: true, Active: c.activeTag == ""})
	for _, t := range names {
		index = append(index, TagEntry{Name: t, Active: c.activeTag == t})
	}
	return index
}

// DetailView is the open note with its markdown rendered to HTML.
type DetailView struct {
	ID        string
	Title     string
	HTML      string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Detail returns the open note's view, if one is open.
func (c *Controller) Detail() (DetailView, bool) {
	if c.detail == nil {
		return DetailView{}, false
	}
	return DetailView{
		ID:        c.detail.ID,
		Title:     c.detail.Title,
		HTML:      render.HTML(c.detail.Content),
		Tags:      stringsx.CleanTags(c.detail.Tags),
		CreatedAt: c.detail.CreatedAt,
		UpdatedAt: c.detail.UpdatedAt,
	}, true
}

// Notes exposes a copy of the snapshot for callers that need raw notes.
func (c *Controller) Notes() []notes.Note {
	return append([]notes.Note(nil), c.notes...)
}
