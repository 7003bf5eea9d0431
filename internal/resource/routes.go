package resource

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/refdata/refdata-api/internal/store"
)

// RegisterRoutes mounts the CRUD endpoints for every built-in resource:
//
//	GET    /api/<resources>
//	POST   /api/<resources>
//	GET    /api/<resources>/:id
//	PATCH  /api/<resources>/:id
//	DELETE /api/<resources>/:id
func RegisterRoutes(r *gin.Engine, st store.Store) {
	for _, s := range Schemas() {
		h := NewHandler(s, st)
		g := r.Group("/api/" + strings.ToLower(s.Plural))
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}
