package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balaiwarga/dashboard/pkg/middleware"
)

const flashCookie = "dashboard_flash"

// Flash is a one-shot notification carried over a redirect in a short-lived
// cookie, standing in for the modal toasts of a single-page client.
type Flash struct {
	Kind    string `json:"kind"` // "success" | "error"
	Title   string `json:"title"`
	Message string `json:"message"`
}

func setFlash(c *gin.Context, f Flash) {
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(b), 60, "/", "", false, true)
}

// popFlash reads and clears the flash cookie. Garbage decodes as no flash.
func popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	return &f
}

// NavItem is one entry of the navigation rail. The registry appends one per
// resource in registration order.
type NavItem struct {
	Slug  string
	Title string
}

var navItems []NavItem

func addNavItem(slug, title string) {
	for _, it := range navItems {
		if it.Slug == slug {
			return
		}
	}
	navItems = append(navItems, NavItem{Slug: slug, Title: title})
}

// NavItems returns the registered navigation entries.
func NavItems() []NavItem { return navItems }

// render executes the named page template with common view data (current
// user, navigation, form token, pending flash) merged in.
func (e *Env) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["User"]; !ok {
		if sess := middleware.SessionFromContext(c); sess != nil {
			data["User"] = sess.User
		}
	}
	if _, ok := data["Flash"]; !ok {
		if f := popFlash(c); f != nil {
			data["Flash"] = f
		}
	}
	if _, ok := data["Nav"]; !ok {
		data["Nav"] = navItems
	}
	if _, ok := data["CSRF"]; !ok {
		data["CSRF"] = e.csrf(c)
	}
	c.HTML(status, name, data)
}

// redirectWithFlash is the standard end of every successful mutation:
// set the notification and go back to the list view, which re-fetches.
func redirectWithFlash(c *gin.Context, location string, f Flash) {
	setFlash(c, f)
	c.Redirect(http.StatusFound, location)
}
