package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Lobby/internal/adapters/store"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

var testScenes = scenes{
	{ID: "atrium", Name: "Atrium", ScreenshotURL: "https://cdn.example.com/atrium.png", Featured: true},
	{ID: "gallery", Name: "Gallery", ScreenshotURL: "https://cdn.example.com/gallery.png"},
}

func newTestHubs(dir core.HubDirectory, f flags) *Hubs {
	h := NewHubs(dir, f, testScenes, "atrium", 24)
	h.now = func() time.Time { return time.Unix(1700000000, 0) }
	return h
}

func TestHubs_CreateWithDefaults(t *testing.T) {
	dir := store.NewMemory()
	h := newTestHubs(dir, flags{})
	h.newID = func() string { return "abc1234" }
	h.newName = func() string { return "Sunny Calm Grove" }
	nav := &recordingNavigator{}

	room, err := h.CreateAndRedirectToNewHub(context.Background(), core.HubRequest{ForceRedirect: true}, nav)
	require.NoError(t, err)

	assert.Equal(t, domain.RoomID("abc1234"), room.ID)
	assert.Equal(t, "Sunny Calm Grove", room.Name)
	assert.Equal(t, "sunny-calm-grove", room.Slug)
	assert.Equal(t, "/abc1234/sunny-calm-grove", room.URL)
	assert.Equal(t, "atrium", room.SceneID)
	assert.Equal(t, "https://cdn.example.com/atrium.png", room.Images.Preview.URL)
	assert.Equal(t, int64(1700000000), room.CreatedAt)
	assert.False(t, room.Public)
	assert.Equal(t, []string{"/abc1234/sunny-calm-grove"}, nav.targets)

	stored, err := dir.GetHub(context.Background(), "abc1234")
	require.NoError(t, err)
	assert.Equal(t, room, stored)
}

func TestHubs_NoRedirectWithoutForce(t *testing.T) {
	h := newTestHubs(store.NewMemory(), flags{})
	nav := &recordingNavigator{}

	room, err := h.CreateAndRedirectToNewHub(context.Background(), core.HubRequest{Name: "Book Club", SceneID: "gallery"}, nav)
	require.NoError(t, err)

	assert.Equal(t, "Book Club", room.Name)
	assert.Equal(t, "gallery", room.SceneID)
	assert.Len(t, string(room.ID), hubIDLen)
	assert.Empty(t, nav.targets)
}

func TestHubs_CreationDisabled(t *testing.T) {
	h := newTestHubs(store.NewMemory(), flags{FeatureDisableRoomCreation: true})

	_, err := h.CreateAndRedirectToNewHub(context.Background(), core.HubRequest{}, &recordingNavigator{})
	assert.ErrorIs(t, err, domain.ErrRoomCreationDisabled)

	_, err = h.CreateAndRedirectToNewHub(context.Background(), core.HubRequest{Auth: domain.AuthContext{IsAdmin: true}}, &recordingNavigator{})
	assert.NoError(t, err)
}

func TestHubs_UnknownScene(t *testing.T) {
	h := newTestHubs(store.NewMemory(), flags{})
	_, err := h.CreateAndRedirectToNewHub(context.Background(), core.HubRequest{SceneID: "moon"}, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownScene)
}

func TestHubs_RetriesIDCollision(t *testing.T) {
	dir := store.NewMemory()
	require.NoError(t, dir.CreateHub(context.Background(), domain.Room{ID: "taken01"}))
	h := newTestHubs(dir, flags{})
	ids := []string{"taken01", "free002"}
	h.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	room, err := h.CreateAndRedirectToNewHub(context.Background(), core.HubRequest{Name: "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomID("free002"), room.ID)
}

func TestHubs_GivesUpAfterRepeatedCollisions(t *testing.T) {
	dir := store.NewMemory()
	require.NoError(t, dir.CreateHub(context.Background(), domain.Room{ID: "taken01"}))
	h := newTestHubs(dir, flags{})
	h.newID = func() string { return "taken01" }

	_, err := h.CreateAndRedirectToNewHub(context.Background(), core.HubRequest{Name: "x"}, nil)
	assert.ErrorIs(t, err, domain.ErrHubExists)
}

func TestSlugify(t *testing.T) {
	for in, want := range map[string]string{
		"Sunny Calm Grove":  "sunny-calm-grove",
		"  Book -- Club!! ": "book-club",
		"Café Noir":         "café-noir",
		"":                  "",
		"###":               "",
	} {
		assert.Equal(t, want, Slugify(in), fmt.Sprintf("Slugify(%q)", in))
	}
}

func TestGenerateHubName(t *testing.T) {
	for range 20 {
		name := GenerateHubName()
		assert.Regexp(t, `^[A-Z][a-z]+ [A-Z][a-z]+ [A-Z][a-z]+$`, name)
	}
}

func TestHubs_EnsureIsIdempotent(t *testing.T) {
	dir := store.NewMemory()
	h := newTestHubs(dir, flags{FeatureDisableRoomCreation: true})
	ctx := context.Background()

	seed := domain.Room{ID: "lobby01", Name: "Main Lobby", Public: true}
	require.NoError(t, h.Ensure(ctx, seed))

	got, err := dir.GetHub(ctx, "lobby01")
	require.NoError(t, err)
	assert.Equal(t, "main-lobby", got.Slug)
	assert.Equal(t, "/lobby01/main-lobby", got.URL)
	assert.Equal(t, 24, got.RoomSize)
	assert.Equal(t, domain.RoomEntryType, got.Type)
	assert.Equal(t, int64(1700000000), got.CreatedAt)

	require.NoError(t, dir.SetMemberCount(ctx, "lobby01", 3))
	require.NoError(t, h.Ensure(ctx, domain.Room{ID: "lobby01", Name: "Renamed"}))
	got, err = dir.GetHub(ctx, "lobby01")
	require.NoError(t, err)
	assert.Equal(t, "Main Lobby", got.Name)
	assert.Equal(t, 3, got.MemberCount)
}
