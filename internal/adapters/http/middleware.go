package http

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/dkeye/Lobby/internal/domain"
	"github.com/dkeye/Lobby/internal/i18n"
)

const (
	authKey       = "auth"
	translatorKey = "translator"
	adminFlag     = "is_admin"
)

// AuthMiddleware builds the caller's AuthContext from the client token and the
// admin flag kept in the session. It must run after ClientTokenMiddleware.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, _ := sessions.Default(c).Get(adminFlag).(bool)
		c.Set(authKey, domain.AuthContext{
			UserID:  domain.UserID(c.GetString(clientTokenKey)),
			IsAdmin: admin,
		})
		c.Next()
	}
}

// LanguageMiddleware resolves the request language and persists an explicit
// ?lang= choice.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tag, persist := i18n.ResolveTag(c.Request)
		if persist {
			i18n.SetLanguageCookie(c.Writer, tag)
		}
		c.Set(translatorKey, i18n.NewTranslator(tag))
		c.Next()
	}
}

func authFrom(c *gin.Context) domain.AuthContext {
	auth, _ := c.Get(authKey)
	a, _ := auth.(domain.AuthContext)
	return a
}

func translatorFrom(c *gin.Context) *i18n.Translator {
	if v, ok := c.Get(translatorKey); ok {
		if t, ok := v.(*i18n.Translator); ok {
			return t
		}
	}
	return i18n.NewTranslator(i18n.Default())
}
