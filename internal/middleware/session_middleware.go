package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionIDKey = "session_id"

// Session makes sure every visitor carries an opaque session id cookie.
// The id only anchors CSRF tokens and flash messages; nothing else is
// stored server side.
func Session(cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if _, parseErr := uuid.Parse(sessionID); err != nil || parseErr != nil {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sessionID, 0, "/", "", secure, true)
		}
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session, or "" outside it
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
