package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balaiwarga/dashboard/internal/sessions"
	"github.com/balaiwarga/dashboard/pkg/logger"
)

// sessionKey is the gin-context key the resolved session is stored under.
const sessionKey = "session"

// SessionAuth returns a middleware that resolves the dashboard session cookie
// to a stored session and gates every dashboard route: requests without a
// valid session are redirected to the login page. The resolved session is
// placed in the gin context for handlers (no package-level session state).
func SessionAuth(svc *sessions.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}
		sess, err := svc.Validate(c.Request.Context(), token)
		if err != nil {
			// store trouble: fail closed, but log the cause
			logger.Errorf("session validation failed: %v", err)
			redirectToLogin(c)
			return
		}
		if sess == nil {
			redirectToLogin(c)
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// SessionFromContext returns the session stored by SessionAuth, or nil when
// the request is unauthenticated.
func SessionFromContext(c *gin.Context) *sessions.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*sessions.Session)
	return s
}
