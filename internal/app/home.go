package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/dkeye/Lobby/internal/thumbnail"
)

const (
	FeatureDisableRoomCreation = "disable_room_creation"
	FeatureShowFeaturePanels   = "show_feature_panels"
	FeatureShowDiscordBotLink  = "show_discord_bot_link"
)

// FeaturePanel is one of the marketing panels shown when nothing is featured.
type FeaturePanel struct {
	TitleKey string
	BlurbKey string
	ImageURL string
}

type RoomTile struct {
	Room         domain.Room
	ThumbnailURL string
}

// HomeView is everything the landing page template needs.
type HomeView struct {
	Featured           []domain.Room
	Tiles              []RoomTile
	ShowDescription    bool
	CenterLogo         bool
	CanCreateRooms     bool
	ShowFeaturePanels  bool
	FeaturePanels      []FeaturePanel
	ShowDiscordBotLink bool
	DiscordLogoURL     string
	PageStyle          string
	LogoURL            string
}

// Home builds the landing page. All collaborators are injected.
type Home struct {
	Favorites  core.FavoriteRoomsProvider
	Public     core.PublicRoomsProvider
	Flags      core.FeatureFlagLookup
	Images     core.ImageAssetLookup
	Thumbnails *thumbnail.Scaler
}

// FeaturedRooms fetches both lists concurrently and composes them. A failing
// provider counts as an empty list.
func (h *Home) FeaturedRooms(ctx context.Context, auth domain.AuthContext) []domain.Room {
	var favorites, public []domain.Room
	g, gctx := errgroup.WithContext(ctx)
	if h.Favorites != nil && auth.UserID != "" {
		g.Go(func() error {
			rooms, err := h.Favorites.FavoriteRooms(gctx, auth.UserID)
			if err != nil {
				log.Warn().Err(err).Str("module", "app.home").Str("user", string(auth.UserID)).Msg("favorite rooms unavailable")
				return nil
			}
			favorites = rooms
			return nil
		})
	}
	if h.Public != nil {
		g.Go(func() error {
			rooms, err := h.Public.PublicRooms(gctx)
			if err != nil {
				log.Warn().Err(err).Str("module", "app.home").Msg("public rooms unavailable")
				return nil
			}
			public = rooms
			return nil
		})
	}
	_ = g.Wait()
	return ComposeFeatured(favorites, public)
}

// CanCreateRooms is true unless room creation is disabled for non-admins.
func CanCreateRooms(flags core.FeatureFlagLookup, auth domain.AuthContext) bool {
	return !flags.Feature(FeatureDisableRoomCreation) || auth.IsAdmin
}

func (h *Home) Build(ctx context.Context, auth domain.AuthContext) HomeView {
	featured := h.FeaturedRooms(ctx, auth)
	showDescription := ShowDescription(featured)

	v := HomeView{
		Featured:           featured,
		ShowDescription:    showDescription,
		CenterLogo:         !showDescription,
		CanCreateRooms:     CanCreateRooms(h.Flags, auth),
		ShowFeaturePanels:  showDescription && h.Flags.Feature(FeatureShowFeaturePanels),
		ShowDiscordBotLink: h.Flags.Feature(FeatureShowDiscordBotLink),
		DiscordLogoURL:     h.Images.Image("discord_logo", false),
		PageStyle:          h.Images.Image("home_background", true),
		LogoURL:            h.Images.Image("logo", false),
	}
	if v.ShowFeaturePanels {
		v.FeaturePanels = []FeaturePanel{
			{TitleKey: "home.rooms_title", BlurbKey: "home.rooms_blurb", ImageURL: h.Images.Image("landing_rooms_thumb", false)},
			{TitleKey: "home.communicate_title", BlurbKey: "home.communicate_blurb", ImageURL: h.Images.Image("landing_communicate_thumb", false)},
			{TitleKey: "home.media_title", BlurbKey: "home.media_blurb", ImageURL: h.Images.Image("landing_media_thumb", false)},
		}
	}
	v.Tiles = make([]RoomTile, 0, len(featured))
	for _, r := range featured {
		v.Tiles = append(v.Tiles, RoomTile{
			Room:         r,
			ThumbnailURL: h.Thumbnails.Scaled(r.Images.Preview.URL, thumbnail.TileWidth, thumbnail.TileHeight),
		})
	}
	return v
}
