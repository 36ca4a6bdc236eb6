package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/dkeye/Lobby/internal/thumbnail"
)

const (
	SourceRooms     = "rooms"
	SourceFavorites = "favorites"
	SourceScenes    = "scenes"

	FilterPublic   = "public"
	FilterActive   = "active"
	FilterFeatured = "featured"
	FilterAll      = "all"

	DefaultPageSize = 24
	MaxPageSize     = 100
)

// MediaSources lists the browser sources in navigation order.
var MediaSources = []string{SourceRooms, SourceFavorites, SourceScenes}

type Facet struct {
	TextKey string            `json:"text_key"`
	Params  map[string]string `json:"params"`
}

func facet(key, filter string) Facet {
	return Facet{TextKey: "media-browser.facet." + key, Params: map[string]string{"filter": filter}}
}

var sourceFacets = map[string][]Facet{
	SourceRooms:  {facet("public", FilterPublic), facet("active", FilterActive)},
	SourceScenes: {facet("featured", FilterFeatured), facet("all", FilterAll)},
}

type BrowseRequest struct {
	Source string
	Filter string
	Query  string
	Cursor string
	Auth   domain.AuthContext
}

// MediaEntry is one tile in the browser grid.
type MediaEntry struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	URL          string `json:"url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	MemberCount  int    `json:"member_count"`
}

type SourceTab struct {
	Source   string `json:"source"`
	TitleKey string `json:"title_key"`
	Active   bool   `json:"active"`
}

type FacetTab struct {
	Facet
	Active bool `json:"active"`
}

type BrowserView struct {
	Source              string       `json:"source"`
	ShowFavoritesHeader bool         `json:"show_favorites_header"`
	Query               string       `json:"query"`
	Sources             []SourceTab  `json:"sources"`
	ActiveFilter        string       `json:"active_filter,omitempty"`
	Facets              []FacetTab   `json:"facets,omitempty"`
	Entries             []MediaEntry `json:"entries"`
	HasNext             bool         `json:"has_next"`
	HasPrevious         bool         `json:"has_previous"`
	ShowPager           bool         `json:"show_pager"`
	NextCursor          string       `json:"next_cursor,omitempty"`
	PrevCursor          string       `json:"prev_cursor,omitempty"`
}

type RoomLister interface {
	core.FavoriteRoomsProvider
	core.PublicRoomsProvider
}

type MediaBrowser struct {
	Rooms      RoomLister
	Scenes     []domain.Scene
	PageSize   int
	Thumbnails *thumbnail.Scaler
}

// ClampPageSize applies the default and the upper bound.
func ClampPageSize(size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return size
}

func (b *MediaBrowser) Browse(ctx context.Context, req BrowseRequest) (BrowserView, error) {
	source := req.Source
	if source == "" {
		source = SourceRooms
	}
	if !isSource(source) {
		return BrowserView{}, fmt.Errorf("%q: %w", source, domain.ErrUnknownSource)
	}
	offset, err := parseCursor(req.Cursor)
	if err != nil {
		return BrowserView{}, err
	}

	facets := sourceFacets[source]
	filter := req.Filter
	if len(facets) > 0 && !hasFilter(facets, filter) {
		filter = facets[0].Params["filter"]
	}
	if len(facets) == 0 {
		filter = ""
	}

	entries, err := b.entries(ctx, source, filter, req.Auth)
	if err != nil {
		return BrowserView{}, err
	}
	query := strings.TrimSpace(req.Query)
	if source != SourceFavorites {
		entries = matchQuery(entries, query)
	}

	size := ClampPageSize(b.PageSize)
	total := len(entries)
	start := min(offset, total)
	end := min(start+size, total)

	v := BrowserView{
		Source:              source,
		ShowFavoritesHeader: source == SourceFavorites,
		Query:               query,
		ActiveFilter:        filter,
		Entries:             entries[start:end],
		HasPrevious:         offset > 0,
		HasNext:             end < total,
	}
	v.ShowPager = v.HasNext || v.HasPrevious
	if v.HasNext {
		v.NextCursor = strconv.Itoa(end)
	}
	if v.HasPrevious {
		v.PrevCursor = strconv.Itoa(max(0, start-size))
	}
	for _, s := range MediaSources {
		v.Sources = append(v.Sources, SourceTab{Source: s, TitleKey: "media-browser.nav_title." + s, Active: s == source})
	}
	for _, f := range facets {
		v.Facets = append(v.Facets, FacetTab{Facet: f, Active: filter == f.Params["filter"]})
	}
	return v, nil
}

func (b *MediaBrowser) entries(ctx context.Context, source, filter string, auth domain.AuthContext) ([]MediaEntry, error) {
	switch source {
	case SourceScenes:
		out := make([]MediaEntry, 0, len(b.Scenes))
		for _, s := range b.Scenes {
			if filter == FilterFeatured && !s.Featured {
				continue
			}
			out = append(out, MediaEntry{
				ID:           s.ID,
				Type:         domain.SceneEntryType,
				Name:         s.Name,
				Description:  s.Description,
				ThumbnailURL: b.Thumbnails.Scaled(s.ScreenshotURL, thumbnail.TileWidth, thumbnail.TileHeight),
			})
		}
		return out, nil
	case SourceFavorites:
		if auth.UserID == "" {
			return nil, nil
		}
		rooms, err := b.Rooms.FavoriteRooms(ctx, auth.UserID)
		if err != nil {
			return nil, fmt.Errorf("favorite rooms: %w", err)
		}
		return b.roomEntries(ComposeFeatured(rooms, nil)), nil
	default:
		rooms, err := b.Rooms.PublicRooms(ctx)
		if err != nil {
			return nil, fmt.Errorf("public rooms: %w", err)
		}
		rooms = ComposeFeatured(nil, rooms)
		if filter == FilterActive {
			active := rooms[:0]
			for _, r := range rooms {
				if r.MemberCount > 0 {
					active = append(active, r)
				}
			}
			rooms = active
		}
		return b.roomEntries(rooms), nil
	}
}

func (b *MediaBrowser) roomEntries(rooms []domain.Room) []MediaEntry {
	out := make([]MediaEntry, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, MediaEntry{
			ID:           string(r.ID),
			Type:         domain.RoomEntryType,
			Name:         r.Name,
			Description:  r.Description,
			URL:          r.URL,
			ThumbnailURL: b.Thumbnails.Scaled(r.Images.Preview.URL, thumbnail.TileWidth, thumbnail.TileHeight),
			MemberCount:  r.MemberCount,
		})
	}
	return out
}

func matchQuery(entries []MediaEntry, query string) []MediaEntry {
	if query == "" {
		return entries
	}
	fold := cases.Fold()
	q := fold.String(query)
	out := entries[:0:0]
	for _, e := range entries {
		if strings.Contains(fold.String(e.Name), q) || strings.Contains(fold.String(e.Description), q) {
			out = append(out, e)
		}
	}
	return out
}

func parseCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(cursor)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q: %w", cursor, domain.ErrInvalidCursor)
	}
	return n, nil
}

func isSource(s string) bool {
	for _, src := range MediaSources {
		if src == s {
			return true
		}
	}
	return false
}

func hasFilter(facets []Facet, filter string) bool {
	for _, f := range facets {
		if f.Params["filter"] == filter {
			return true
		}
	}
	return false
}
