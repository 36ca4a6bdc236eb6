package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Lobby/internal/domain"
	"github.com/dkeye/Lobby/internal/thumbnail"
)

var homeImages = images{
	"logo":                      "https://cdn.example.com/logo.png",
	"home_background":           "https://cdn.example.com/bg.jpg",
	"landing_rooms_thumb":       "https://cdn.example.com/rooms.png",
	"landing_communicate_thumb": "https://cdn.example.com/talk.png",
	"landing_media_thumb":       "https://cdn.example.com/media.png",
}

func TestHome_EmptyShowsDescriptionAndPanels(t *testing.T) {
	h := &Home{
		Favorites: &staticRooms{},
		Public:    &staticRooms{},
		Flags:     flags{FeatureShowFeaturePanels: true},
		Images:    homeImages,
	}

	v := h.Build(context.Background(), domain.AuthContext{UserID: "u1"})

	assert.True(t, v.ShowDescription)
	assert.False(t, v.CenterLogo)
	assert.True(t, v.ShowFeaturePanels)
	require.Len(t, v.FeaturePanels, 3)
	assert.Equal(t, "https://cdn.example.com/talk.png", v.FeaturePanels[1].ImageURL)
	assert.Equal(t, `url("https://cdn.example.com/bg.jpg")`, v.PageStyle)
	assert.Equal(t, "https://cdn.example.com/logo.png", v.LogoURL)
	assert.True(t, v.CanCreateRooms)
	assert.Empty(t, v.Tiles)
}

func TestHome_FeaturedRoomsHidePanels(t *testing.T) {
	rooms := &staticRooms{
		favorites: map[domain.UserID][]domain.Room{"u1": {room("fav", 1)}},
		public:    []domain.Room{room("pub", 8), room("fav", 1)},
	}
	rooms.public[0].Images.Preview.URL = "https://cdn.example.com/pub.png"
	h := &Home{
		Favorites:  rooms,
		Public:     rooms,
		Flags:      flags{FeatureShowFeaturePanels: true, FeatureShowDiscordBotLink: true},
		Images:     homeImages,
		Thumbnails: thumbnail.New("thumbs.example.com"),
	}

	v := h.Build(context.Background(), domain.AuthContext{UserID: "u1"})

	assert.False(t, v.ShowDescription)
	assert.True(t, v.CenterLogo)
	assert.False(t, v.ShowFeaturePanels)
	assert.Nil(t, v.FeaturePanels)
	assert.True(t, v.ShowDiscordBotLink)
	require.Len(t, v.Featured, 2)
	assert.Equal(t, domain.RoomID("pub"), v.Featured[0].ID)
	require.Len(t, v.Tiles, 2)
	assert.Contains(t, v.Tiles[0].ThumbnailURL, "https://thumbs.example.com/thumbnail/")
	assert.Contains(t, v.Tiles[0].ThumbnailURL, "w=355&h=200")
}

func TestHome_AnonymousSkipsFavorites(t *testing.T) {
	rooms := &staticRooms{
		favorites: map[domain.UserID][]domain.Room{"": {room("fav", 1)}},
	}
	h := &Home{Favorites: rooms, Public: rooms, Flags: flags{}, Images: images{}}

	assert.Empty(t, h.FeaturedRooms(context.Background(), domain.AuthContext{}))
}

func TestHome_ProviderErrorsCountAsEmpty(t *testing.T) {
	rooms := &staticRooms{favErr: errUnavailable, public: []domain.Room{room("pub", 2)}}
	h := &Home{Favorites: rooms, Public: rooms, Flags: flags{}, Images: images{}}

	assert.Equal(t, []domain.Room{room("pub", 2)}, h.FeaturedRooms(context.Background(), domain.AuthContext{UserID: "u1"}))

	rooms.pubErr = errUnavailable
	assert.Empty(t, h.FeaturedRooms(context.Background(), domain.AuthContext{UserID: "u1"}))
}

func TestCanCreateRooms(t *testing.T) {
	assert.True(t, CanCreateRooms(flags{}, domain.AuthContext{}))
	assert.False(t, CanCreateRooms(flags{FeatureDisableRoomCreation: true}, domain.AuthContext{}))
	assert.True(t, CanCreateRooms(flags{FeatureDisableRoomCreation: true}, domain.AuthContext{IsAdmin: true}))
}
