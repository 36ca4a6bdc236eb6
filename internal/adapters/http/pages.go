package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Lobby/internal/adapters/signal"
	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/config"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/i18n"
)

type handlers struct {
	cfg      *config.Config
	svc      Services
	presence *signal.SignalWSController
}

// redirectNavigator turns navigations into a single HTTP redirect. The first
// target wins; later ones are logged and dropped.
type redirectNavigator struct {
	target string
}

func (n *redirectNavigator) Navigate(target string) {
	if n.target != "" {
		log.Debug().Str("module", "adapters.http").Str("kept", n.target).Str("dropped", target).Msg("navigation already decided")
		return
	}
	n.target = target
}

func pageData(t *i18n.Translator, view any) gin.H {
	return gin.H{
		"Lang": t.Tag().String(),
		"T":    t.T,
		"View": view,
	}
}

func (h *handlers) homePage(c *gin.Context) {
	ctx := c.Request.Context()
	auth := authFrom(c)

	nav := &redirectNavigator{}
	if err := app.NewLegacyLinkRedirector(h.svc.Hubs).Mount(ctx, c.Request.URL, auth, nav); err != nil {
		log.Warn().Err(err).Str("module", "adapters.http").Str("query", c.Request.URL.RawQuery).Msg("legacy link not honoured")
	}
	if nav.target != "" {
		c.Redirect(http.StatusFound, nav.target)
		return
	}

	view := h.svc.Home.Build(ctx, auth)
	data := pageData(translatorFrom(c), view)
	if view.PageStyle != "" {
		// Image URLs come from the service config, not from users.
		data["PageStyle"] = template.CSS("background-image: " + view.PageStyle)
	}
	c.HTML(http.StatusOK, "home.tmpl", data)
}

func (h *handlers) mediaPage(c *gin.Context) {
	view, err := h.svc.Browser.Browse(c.Request.Context(), browseRequest(c))
	if err != nil {
		status := statusFor(err)
		log.Debug().Err(err).Str("module", "adapters.http").Int("status", status).Msg("media page")
		c.String(status, http.StatusText(status))
		return
	}
	c.HTML(http.StatusOK, "media.tmpl", pageData(translatorFrom(c), view))
}

// newHubForm backs the "create room" button of the landing page.
func (h *handlers) newHubForm(c *gin.Context) {
	nav := &redirectNavigator{}
	req := core.HubRequest{
		Name:          c.PostForm("name"),
		SceneID:       c.PostForm("scene_id"),
		ForceRedirect: true,
		Auth:          authFrom(c),
	}
	if _, err := h.svc.Hubs.CreateAndRedirectToNewHub(c.Request.Context(), req, nav); err != nil {
		status := statusFor(err)
		log.Warn().Err(err).Str("module", "adapters.http").Int("status", status).Msg("create hub from form")
		c.String(status, http.StatusText(status))
		return
	}
	c.Redirect(http.StatusSeeOther, nav.target)
}

func browseRequest(c *gin.Context) app.BrowseRequest {
	return app.BrowseRequest{
		Source: c.Query("source"),
		Filter: c.Query("filter"),
		Query:  c.Query("q"),
		Cursor: c.Query("cursor"),
		Auth:   authFrom(c),
	}
}
