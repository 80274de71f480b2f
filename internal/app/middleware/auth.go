package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brewshare/internal/pkg"
	"brewshare/internal/store"
)

// Context keys for the authenticated user and session.
const (
	UserKey    = "user"
	SessionKey = "session"
)

// RequireSession resolves the Authorization cookie into a live session
// document and its profile user, aborting with 401 otherwise. Sessions live
// in the store, so signing out invalidates outstanding cookies immediately
// even before their expiry.
func RequireSession(jwtSecret string, sessions *store.Sessions, users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("Authorization")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		sessionID, err := pkg.ParseSessionToken(jwtSecret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		session, err := sessions.Get(sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		user, err := users.GetByAccountID(session.AccountID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized",
			})
			return
		}

		c.Set(SessionKey, session)
		c.Set(UserKey, user)

		c.Next()
	}
}

// CurrentUser returns the user attached by RequireSession.
func CurrentUser(c *gin.Context) (pkg.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return pkg.User{}, false
	}
	user, ok := v.(pkg.User)
	return user, ok
}

// CurrentSession returns the session attached by RequireSession.
func CurrentSession(c *gin.Context) (pkg.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return pkg.Session{}, false
	}
	session, ok := v.(pkg.Session)
	return session, ok
}
