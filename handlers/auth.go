package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balaiwarga/dashboard/internal/api"
	"github.com/balaiwarga/dashboard/internal/validation"
	"github.com/balaiwarga/dashboard/pkg/logger"
	"github.com/balaiwarga/dashboard/pkg/middleware"
)

// AuthHandler implements the session lifecycle: login against the upstream,
// logout, and the staff profile form.
type AuthHandler struct {
	env *Env
}

func NewAuthHandler(env *Env) *AuthHandler {
	return &AuthHandler{env: env}
}

// Register mounts the public auth routes. loginLimiter (may be nil) is a
// rate-limit middleware applied only to the login submission.
func (h *AuthHandler) Register(r *gin.Engine, loginLimiter gin.HandlerFunc) {
	r.GET("/login", h.loginPage)
	if loginLimiter != nil {
		r.POST("/login", loginLimiter, h.login)
	} else {
		r.POST("/login", h.login)
	}
}

// RegisterAuthenticated mounts the routes that require a session.
func (h *AuthHandler) RegisterAuthenticated(rg *gin.RouterGroup) {
	rg.POST("/logout", h.logout)
	rg.GET("/profile", h.profilePage)
	rg.POST("/profile", h.updateProfile)
}

func (h *AuthHandler) loginPage(c *gin.Context) {
	h.env.render(c, http.StatusOK, "login", gin.H{
		"Title":          "Login",
		"CaptchaSiteKey": h.env.Cfg.Captcha.SiteKey,
	})
}

// login forwards credentials upstream. Rejected credentials are always
// reported as "Email or password is wrong" — the backend detail never leaks
// which field was at fault.
func (h *AuthHandler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	captchaToken := c.PostForm("g-recaptcha-response")

	renderErr := func(msg string) {
		h.env.render(c, http.StatusOK, "login", gin.H{
			"Title":          "Login",
			"Error":          msg,
			"Email":          email,
			"CaptchaSiteKey": h.env.Cfg.Captcha.SiteKey,
		})
	}

	if verr := validation.Email(email); verr != nil {
		renderErr(verr.Message)
		return
	}
	if verr := validation.Password(password); verr != nil {
		renderErr(verr.Message)
		return
	}

	ctx := c.Request.Context()
	upstreamCookie, err := h.env.API.Auth.Login(ctx, email, password, captchaToken)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			renderErr("Email or password is wrong")
			return
		}
		logger.Errorf("login: upstream unreachable: %v", err)
		renderErr("Login is temporarily unavailable, please try again")
		return
	}

	// Re-fetch the profile with the fresh cookie; the login response body is
	// not trusted as the source of the current user.
	user, err := h.env.API.Auth.CurrentUser(api.WithCredential(ctx, upstreamCookie))
	if err != nil {
		logger.Errorf("login: current user fetch failed: %v", err)
		renderErr("Email or password is wrong")
		return
	}

	token, err := h.env.Sessions.Create(ctx, *user, upstreamCookie, h.env.Cfg.Session.TTL)
	if err != nil {
		logger.Errorf("login: session create failed: %v", err)
		renderErr("Login is temporarily unavailable, please try again")
		return
	}

	c.SetCookie(h.env.Cfg.Session.CookieName, token, int(h.env.Cfg.Session.TTL.Seconds()), "/", "", h.env.Cfg.Session.Secure, true)
	c.Redirect(http.StatusFound, "/dashboard")
}

// logout invalidates the upstream session best-effort, then always clears the
// dashboard session and cookie.
func (h *AuthHandler) logout(c *gin.Context) {
	if !h.env.checkCSRF(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	sess := middleware.SessionFromContext(c)
	if err := h.env.API.Auth.Logout(h.env.upstreamCtx(c)); err != nil {
		logger.Warnf("logout: upstream logout failed: %v", err)
	}
	if sess != nil {
		if err := h.env.Sessions.Delete(c.Request.Context(), sess.Token); err != nil {
			logger.Warnf("logout: session delete failed: %v", err)
		}
	}
	c.SetCookie(h.env.Cfg.Session.CookieName, "", -1, "/", "", h.env.Cfg.Session.Secure, true)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) profilePage(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	h.env.render(c, http.StatusOK, "profile", gin.H{
		"Title": "Profile",
		"Name":  sess.User.Name,
		"Email": sess.User.Email,
		"CSRF":  h.env.csrf(c),
	})
}

// updateProfile patches name and/or password upstream. The password is
// optional; when present it must satisfy the same rule as login.
func (h *AuthHandler) updateProfile(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	name := c.PostForm("name")
	password := c.PostForm("password")

	renderErr := func(msg string) {
		h.env.render(c, http.StatusOK, "profile", gin.H{
			"Title": "Profile",
			"Name":  name,
			"Email": sess.User.Email,
			"Error": msg,
			"CSRF":  h.env.csrf(c),
		})
	}

	if !h.env.checkCSRF(c) {
		renderErr("The form expired, please try again")
		return
	}
	if verr := validation.Required(name, "Name"); verr != nil {
		renderErr(verr.Message)
		return
	}
	if password != "" {
		if verr := validation.Password(password); verr != nil {
			renderErr(verr.Message)
			return
		}
	}

	user, err := h.env.API.Auth.UpdateProfile(h.env.upstreamCtx(c), name, password)
	if err != nil {
		renderErr(err.Error())
		return
	}

	// keep the session's cached profile in sync
	sess.User = *user
	if err := h.env.Sessions.Update(c.Request.Context(), sess); err != nil {
		logger.Warnf("profile: session refresh failed: %v", err)
	}

	redirectWithFlash(c, "/profile", Flash{Kind: "success", Title: "Success", Message: "Profile updated successfully"})
}
