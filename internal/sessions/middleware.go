package sessions

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gsessions "github.com/gorilla/sessions"

	"codeberg.org/atlasagency/server/internal/logger"
)

const (
	CookieName = "atlas_session"

	// gin context key holding the session id
	ContextKey = "session_id"

	idValueKey = "sid"
)

type CookieOptions struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
}

// NewCookieStore returns the signed cookie store carrying session ids.
// Secure cookies are sent with SameSite=None so a separate frontend origin
// can use them.
func NewCookieStore(opts CookieOptions) *gsessions.CookieStore {
	store := gsessions.NewCookieStore(opts.Secret)

	sameSite := http.SameSiteLaxMode
	if opts.Secure {
		sameSite = http.SameSiteNoneMode
	}

	store.Options = &gsessions.Options{
		Path:     "/",
		MaxAge:   int(opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: sameSite,
	}

	return store
}

// Middleware makes sure every request carries a session id, issuing a new
// signed cookie when the visitor has none or it fails verification.
func Middleware(store gsessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// a tampered or outdated cookie yields a fresh session, not an error
		cookie, _ := store.Get(c.Request, CookieName) //nolint:errcheck

		id, _ := cookie.Values[idValueKey].(string)
		if id == "" {
			id = uuid.NewString()
			cookie.Values[idValueKey] = id
		}

		// refreshes the cookie expiry on every visit
		if err := cookie.Save(c.Request, c.Writer); err != nil {
			logger.FromContext(c.Request.Context()).Warn("failed to save session cookie", "error", err)
		}

		c.Set(ContextKey, id)
		c.Next()
	}
}

// returns the session id set by Middleware
func IDFromContext(c *gin.Context) string {
	return c.GetString(ContextKey)
}
