package http

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

var (
	ErrAdminDisabled = errors.New("admin login disabled")
	ErrBadAdminToken = errors.New("bad admin token")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrHubNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrHubExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRoomCreationDisabled), errors.Is(err, ErrAdminDisabled):
		return http.StatusForbidden
	case errors.Is(err, ErrBadAdminToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnknownScene),
		errors.Is(err, domain.ErrUnknownSource),
		errors.Is(err, domain.ErrInvalidCursor),
		errors.Is(err, domain.ErrUsernameEmpty),
		errors.Is(err, domain.ErrUsernameTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("module", "adapters.http").Str("path", c.FullPath()).Msg("request failed")
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

type featuredResponse struct {
	Rooms           []domain.Room `json:"rooms"`
	ShowDescription bool          `json:"show_description"`
}

func (h *handlers) featured(c *gin.Context) {
	rooms := h.svc.Home.FeaturedRooms(c.Request.Context(), authFrom(c))
	if rooms == nil {
		rooms = []domain.Room{}
	}
	c.JSON(http.StatusOK, featuredResponse{Rooms: rooms, ShowDescription: app.ShowDescription(rooms)})
}

func (h *handlers) media(c *gin.Context) {
	view, err := h.svc.Browser.Browse(c.Request.Context(), browseRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if view.Entries == nil {
		view.Entries = []app.MediaEntry{}
	}
	c.JSON(http.StatusOK, view)
}

type createHubRequest struct {
	Name    string `json:"name"`
	SceneID string `json:"scene_id"`
}

type createHubResponse struct {
	HubID domain.RoomID `json:"hub_id"`
	URL   string        `json:"url"`
	Hub   domain.Room   `json:"hub"`
}

func (h *handlers) createHub(c *gin.Context) {
	var body createHubRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
	}
	req := core.HubRequest{Name: body.Name, SceneID: body.SceneID, Auth: authFrom(c)}
	room, err := h.svc.Hubs.CreateAndRedirectToNewHub(c.Request.Context(), req, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createHubResponse{HubID: room.ID, URL: room.URL, Hub: room})
}

func (h *handlers) getHub(c *gin.Context) {
	room, err := h.svc.Directory.GetHub(c.Request.Context(), domain.RoomID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *handlers) addFavorite(c *gin.Context) {
	auth := authFrom(c)
	if err := h.svc.Directory.AddFavorite(c.Request.Context(), auth.UserID, domain.RoomID(c.Param("id"))); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) removeFavorite(c *gin.Context) {
	auth := authFrom(c)
	if err := h.svc.Directory.RemoveFavorite(c.Request.Context(), auth.UserID, domain.RoomID(c.Param("id"))); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type adminLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *handlers) adminLogin(c *gin.Context) {
	if h.cfg.AdminToken == "" {
		respondError(c, ErrAdminDisabled)
		return
	}
	var body adminLoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(body.Token), []byte(h.cfg.AdminToken)) != 1 {
		log.Warn().Str("module", "adapters.http").Str("ip", c.ClientIP()).Msg("admin login rejected")
		respondError(c, ErrBadAdminToken)
		return
	}
	session := sessions.Default(c)
	session.Set(adminFlag, true)
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	log.Info().Str("module", "adapters.http").Str("client", c.GetString(clientTokenKey)).Msg("admin session opened")
	c.JSON(http.StatusOK, gin.H{"admin": true})
}

func (h *handlers) adminLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(adminFlag)
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type presenceResponse struct {
	Rooms []core.RoomInfo `json:"rooms"`
}

func (h *handlers) listPresence(c *gin.Context) {
	c.JSON(http.StatusOK, presenceResponse{Rooms: h.svc.Orch.Presence()})
}

// evictHub empties a hub's presence room. Admin only.
func (h *handlers) evictHub(c *gin.Context) {
	if !authFrom(c).IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	hub := domain.RoomID(c.Param("id"))
	if _, err := h.svc.Directory.GetHub(c.Request.Context(), hub); err != nil {
		respondError(c, err)
		return
	}
	kicked := h.presence.EvictHub(c.Request.Context(), hub)
	c.JSON(http.StatusOK, gin.H{"hub": hub, "kicked": kicked})
}

func (h *handlers) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "presence_rooms": len(h.svc.Orch.Presence())})
}
