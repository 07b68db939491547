package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"github.com/nimeshabuddhika/creditpath-web/pkg/session"
	"go.uber.org/zap"
)

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Secure bool
}

// Session loads the session addressed by the session cookie into the Gin context.
// Browsers without a cookie get a fresh anonymous session id.
func Session(store session.Store, opts CookieOptions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(pkg.SessionCookie)
		if err != nil || id == "" {
			id = uuid.New().String()
			SetSessionCookie(c, id, opts)
		}

		sess, err := store.Load(c.Request.Context(), id)
		if err != nil {
			// unreadable store: treat as signed out
			logger.Error("failed to load session", zap.String(pkg.TraceId, c.GetString(pkg.TraceId)), zap.Error(err))
			sess = session.Session{ID: id}
		}
		c.Set(pkg.SessionKey, sess)
		c.Next()
	}
}

// SetSessionCookie writes the session cookie for id.
func SetSessionCookie(c *gin.Context, id string, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(pkg.SessionCookie, id, 0, "/", "", opts.Secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(pkg.SessionCookie, "", -1, "/", "", opts.Secure, true)
}

// CurrentSession returns the session loaded by the Session middleware.
func CurrentSession(c *gin.Context) session.Session {
	if v, ok := c.Get(pkg.SessionKey); ok {
		if sess, ok := v.(session.Session); ok {
			return sess
		}
	}
	return session.Session{}
}

// RequireSession redirects to the login page when the session carries no token.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusFound, pkg.LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated sends signed-in users straight to the main page.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusFound, pkg.MainPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
