package http

import (
	"context"
	"embed"
	"html/template"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Lobby/internal/adapters/signal"
	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/app/orch"
	"github.com/dkeye/Lobby/internal/config"
	"github.com/dkeye/Lobby/internal/core"
)

const (
	sessionName     = "LobbySessions"
	clientTokenName = "ct"
	clientTokenKey  = "client_token"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Services is everything the router dispatches to.
type Services struct {
	Home      *app.Home
	Browser   *app.MediaBrowser
	Hubs      *app.Hubs
	Directory core.HubDirectory
	Orch      *orch.Orchestrator
}

func genClientToken() string {
	idStr := uuid.NewString()
	return idStr
}

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(clientTokenName)
		if token == "" {
			token = genClientToken()
			c.SetCookie(clientTokenName, token, 3600*24*7, "/", "", false, true)
		}
		c.Set(clientTokenKey, token)
		c.Next()
	}
}

func mediaURL(source, filter, query, cursor string) string {
	qs := url.Values{}
	if source != "" {
		qs.Set("source", source)
	}
	if filter != "" {
		qs.Set("filter", filter)
	}
	if query != "" {
		qs.Set("q", query)
	}
	if cursor != "" {
		qs.Set("cursor", cursor)
	}
	return (&url.URL{Path: "/media", RawQuery: qs.Encode()}).String()
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").
		Funcs(template.FuncMap{"mediaURL": mediaURL}).
		ParseFS(templateFS, "templates/*.tmpl"))
}

func SetupRouter(ctx context.Context, cfg *config.Config, svc Services) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	secret := cfg.Secret
	if secret == "" {
		log.Warn().Str("module", "adapters.http").Msg("no session secret configured, admin sessions will not survive a restart")
		secret = uuid.NewString()
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24, HttpOnly: true})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(ClientTokenMiddleware())
	r.Use(AuthMiddleware())
	r.Use(LanguageMiddleware())

	r.SetHTMLTemplate(loadTemplates())
	r.Static("/static", cfg.StaticPath)

	ctrl := signal.NewSignalWSController(svc.Orch)
	h := &handlers{cfg: cfg, svc: svc, presence: ctrl}
	r.GET("/", h.homePage)
	r.GET("/media", h.mediaPage)
	r.POST("/hubs/new", h.newHubForm)
	r.GET("/healthz", h.healthz)

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	v1 := api.Group("/v1")
	v1.GET("/featured", h.featured)
	v1.GET("/media", h.media)
	v1.POST("/hubs", h.createHub)
	v1.GET("/hubs/:id", h.getHub)
	v1.PUT("/favorites/:id", h.addFavorite)
	v1.DELETE("/favorites/:id", h.removeFavorite)
	v1.POST("/session/admin", h.adminLogin)
	v1.DELETE("/session/admin", h.adminLogout)
	v1.GET("/presence", h.listPresence)
	v1.DELETE("/presence/:id", h.evictHub)

	api.GET("/ws/presence", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("client", c.GetString(clientTokenKey)).Msg("ws presence endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	return r
}
