package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/balaiwarga/dashboard/internal/api"
	"github.com/balaiwarga/dashboard/internal/config"
	"github.com/balaiwarga/dashboard/internal/sessions"
	"github.com/balaiwarga/dashboard/internal/storage"
	"github.com/balaiwarga/dashboard/internal/tokens"
	"github.com/balaiwarga/dashboard/pkg/middleware"
)

// Env bundles the dependencies every handler needs. There is no package-level
// state: main constructs one Env and hands it to the handler constructors.
type Env struct {
	Cfg      *config.Config
	API      *api.API
	Store    storage.Storage
	Sessions *sessions.Service
}

// upstreamCtx returns a context carrying the upstream session cookie of the
// authenticated staff member, ready for API client calls.
func (e *Env) upstreamCtx(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if sess := middleware.SessionFromContext(c); sess != nil {
		ctx = api.WithCredential(ctx, sess.UpstreamCookie)
	}
	return ctx
}

// csrf issues a form token bound to the current session for embedding in
// mutating forms.
func (e *Env) csrf(c *gin.Context) string {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return ""
	}
	tok, err := tokens.GenerateFormToken(e.Cfg.Session.Secret, sess.Token, e.Cfg.Session.TTL)
	if err != nil {
		return ""
	}
	return tok
}

// checkCSRF validates the _csrf field of a mutating form submission.
func (e *Env) checkCSRF(c *gin.Context) bool {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return false
	}
	return tokens.ValidateFormToken(e.Cfg.Session.Secret, sess.Token, c.PostForm("_csrf")) == nil
}
