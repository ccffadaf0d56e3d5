package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextSessionID is the gin context key holding the session ID.
	ContextSessionID = "sessionID"
	// HeaderName carries the token for clients that do not keep cookies.
	HeaderName = "X-Session-Token"
	// DefaultCookieName is the cookie carrying the token for browsers.
	DefaultCookieName = "session"
)

// Options configures the session cookie.
type Options struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Middleware returns a Gin middleware that attaches a session ID to every request.
// A valid token from the X-Session-Token header or the cookie is reused;
// otherwise a new session is started and its token returned in both places.
func Middleware(iss Issuer, opts Options) gin.HandlerFunc {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	return func(c *gin.Context) {
		// 1. Reuse an existing token
		token := c.GetHeader(HeaderName)
		if token == "" {
			token, _ = c.Cookie(opts.CookieName)
		}
		if token != "" {
			if sid, err := iss.Parse(token); err == nil {
				c.Set(ContextSessionID, sid)
				c.Next()
				return
			}
			slog.Debug("discarding invalid session token", "remote_addr", c.ClientIP())
		}

		// 2. Start a new session
		sid := uuid.NewString()
		token, err := iss.Issue(sid)
		if err != nil {
			slog.Error("failed to issue session token", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(opts.CookieName, token, int(opts.MaxAge.Seconds()), "/", "", opts.Secure, true)
		c.Header(HeaderName, token)
		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

// ID returns the session ID set by Middleware, or "" when none is set.
func ID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
