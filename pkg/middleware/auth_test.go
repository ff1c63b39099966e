package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balaiwarga/dashboard/internal/models"
	"github.com/balaiwarga/dashboard/internal/sessions"
)

func authTestRouter(svc *sessions.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/dashboard", SessionAuth(svc, "dashboard_session"))
	g.GET("", func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess == nil {
			c.String(http.StatusInternalServerError, "no session in context")
			return
		}
		c.String(http.StatusOK, "hello "+sess.User.Name)
	})
	return r
}

func TestSessionAuthRedirectsWithoutCookie(t *testing.T) {
	svc := sessions.NewService(sessions.NewMemoryRepository())
	r := authTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSessionAuthRedirectsOnUnknownToken(t *testing.T) {
	svc := sessions.NewService(sessions.NewMemoryRepository())
	r := authTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "dashboard_session", Value: "bogus"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSessionAuthPassesValidSession(t *testing.T) {
	svc := sessions.NewService(sessions.NewMemoryRepository())
	token, err := svc.Create(context.Background(), models.User{ID: "u1", Name: "Admin"}, "c", time.Hour)
	require.NoError(t, err)

	r := authTestRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "dashboard_session", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello Admin", w.Body.String())
}
