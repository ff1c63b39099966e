package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHome mounts the root redirect and the dashboard landing page.
func RegisterHome(r *gin.Engine, rg *gin.RouterGroup, env *Env) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	rg.GET("", func(c *gin.Context) {
		env.render(c, http.StatusOK, "home", gin.H{
			"Title": "Dashboard",
		})
	})
}
