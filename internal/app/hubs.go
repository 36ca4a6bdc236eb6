package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

const (
	hubIDLen       = 7
	maxHubNameLen  = 64
	createAttempts = 3
)

type SceneCatalog interface {
	Scene(id string) (domain.Scene, bool)
}

// Hubs creates new hubs in the directory.
type Hubs struct {
	dir          core.HubDirectory
	flags        core.FeatureFlagLookup
	scenes       SceneCatalog
	defaultScene string
	roomSize     int

	newID   func() string
	newName func() string
	now     func() time.Time
}

func NewHubs(dir core.HubDirectory, flags core.FeatureFlagLookup, scenes SceneCatalog, defaultScene string, roomSize int) *Hubs {
	return &Hubs{
		dir:          dir,
		flags:        flags,
		scenes:       scenes,
		defaultScene: defaultScene,
		roomSize:     roomSize,
		newID:        newHubID,
		newName:      GenerateHubName,
		now:          time.Now,
	}
}

func newHubID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:hubIDLen]
}

// HubURL is the path a hub is reachable at.
func HubURL(id domain.RoomID, slug string) string {
	if slug == "" {
		return "/" + string(id)
	}
	return "/" + string(id) + "/" + slug
}

// Slugify lowercases name and joins its words with dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// CreateAndRedirectToNewHub stores a new hub and, with ForceRedirect,
// navigates to it.
func (h *Hubs) CreateAndRedirectToNewHub(ctx context.Context, req core.HubRequest, nav core.Navigator) (domain.Room, error) {
	if !CanCreateRooms(h.flags, req.Auth) {
		return domain.Room{}, domain.ErrRoomCreationDisabled
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = h.newName()
	}
	if r := []rune(name); len(r) > maxHubNameLen {
		name = string(r[:maxHubNameLen])
	}

	sceneID := req.SceneID
	if sceneID == "" {
		sceneID = h.defaultScene
	}
	var preview string
	if sceneID != "" {
		scene, ok := h.scenes.Scene(sceneID)
		if !ok {
			return domain.Room{}, fmt.Errorf("scene %q: %w", sceneID, domain.ErrUnknownScene)
		}
		preview = scene.ScreenshotURL
	}

	slug := Slugify(name)
	var room domain.Room
	for attempt := 0; ; attempt++ {
		id := domain.RoomID(h.newID())
		room = domain.Room{
			ID:        id,
			Name:      name,
			Slug:      slug,
			URL:       HubURL(id, slug),
			SceneID:   sceneID,
			Type:      domain.RoomEntryType,
			RoomSize:  h.roomSize,
			CreatedAt: h.now().Unix(),
			Images:    domain.RoomImages{Preview: domain.Image{URL: preview}},
		}
		err := h.dir.CreateHub(ctx, room)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrHubExists) && attempt+1 < createAttempts {
			continue
		}
		return domain.Room{}, fmt.Errorf("create hub: %w", err)
	}

	log.Info().
		Str("module", "app.hubs").
		Str("hub", string(room.ID)).
		Str("scene", sceneID).
		Str("user", string(req.Auth.UserID)).
		Msg("hub created")

	if req.ForceRedirect && nav != nil {
		nav.Navigate(room.URL)
	}
	return room, nil
}

// Ensure stores a prepared hub, filling in the derived fields. A hub that
// already exists is left untouched.
func (h *Hubs) Ensure(ctx context.Context, room domain.Room) error {
	if room.Slug == "" {
		room.Slug = Slugify(room.Name)
	}
	if room.URL == "" {
		room.URL = HubURL(room.ID, room.Slug)
	}
	if room.RoomSize == 0 {
		room.RoomSize = h.roomSize
	}
	if room.CreatedAt == 0 {
		room.CreatedAt = h.now().Unix()
	}
	room.Type = domain.RoomEntryType
	room.MemberCount = 0

	err := h.dir.CreateHub(ctx, room)
	if errors.Is(err, domain.ErrHubExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ensure hub %s: %w", room.ID, err)
	}
	log.Info().Str("module", "app.hubs").Str("hub", string(room.ID)).Msg("hub seeded")
	return nil
}
