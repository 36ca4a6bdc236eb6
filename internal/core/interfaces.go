package core

import (
	"context"

	"github.com/dkeye/Lobby/internal/domain"
)

// Navigator performs a full page navigation to target.
type Navigator interface {
	Navigate(target string)
}

type FavoriteRoomsProvider interface {
	FavoriteRooms(ctx context.Context, uid domain.UserID) ([]domain.Room, error)
}

type PublicRoomsProvider interface {
	PublicRooms(ctx context.Context) ([]domain.Room, error)
}

type FeatureFlagLookup interface {
	Feature(name string) bool
}

// ImageAssetLookup resolves a configured image key. With background set the
// result is a CSS background-image value instead of a bare URL.
type ImageAssetLookup interface {
	Image(key string, background bool) string
}

// HubRequest carries the arguments of a hub creation. Empty Name and SceneID
// mean "not provided".
type HubRequest struct {
	Name          string
	SceneID       string
	ForceRedirect bool
	Auth          domain.AuthContext
}

type HubCreator interface {
	CreateAndRedirectToNewHub(ctx context.Context, req HubRequest, nav Navigator) (domain.Room, error)
}

// HubDirectory is the storage of hubs, public listing, favorites and live
// member counts.
type HubDirectory interface {
	FavoriteRoomsProvider
	PublicRoomsProvider

	CreateHub(ctx context.Context, room domain.Room) error
	GetHub(ctx context.Context, id domain.RoomID) (domain.Room, error)
	AddFavorite(ctx context.Context, uid domain.UserID, id domain.RoomID) error
	RemoveFavorite(ctx context.Context, uid domain.UserID, id domain.RoomID) error
	SetMemberCount(ctx context.Context, id domain.RoomID, n int) error
}
