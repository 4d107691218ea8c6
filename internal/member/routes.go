package member

import (
	"github.com/changhyeonkim/gym-member-api/internal/shared/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the member endpoints on rg. Read endpoints are never cached.
func (h *MemberHandler) RegisterRoutes(rg *gin.RouterGroup) {
	members := rg.Group("/members")
	{
		members.GET("", middleware.NoCache(), h.List)
		members.GET("/stats", middleware.NoCache(), h.Stats)
		members.GET("/:id", middleware.NoCache(), h.Get)
		members.POST("", h.Create)
		members.PUT("/:id", h.Update)
		members.DELETE("/:id", h.Delete)
	}
}
