package router

import (
	"github.com/changhyeonkim/gym-member-api/internal/bootstrap"
	"github.com/changhyeonkim/gym-member-api/internal/config"
	"github.com/changhyeonkim/gym-member-api/internal/member"
	"github.com/changhyeonkim/gym-member-api/internal/meta"
	"github.com/changhyeonkim/gym-member-api/internal/shared/metrics"
	"github.com/gin-gonic/gin"
)

// Setup wires handlers to the store chosen at startup and registers every route.
// m may be nil when metrics are disabled.
func Setup(router *gin.Engine, cfg *config.Config, store *bootstrap.MemberStore, m *metrics.Metrics) {
	metaHandler := meta.NewHandler(cfg, store, store.Degraded)
	router.GET("/health", metaHandler.Health)

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
		m.SetStore(store.Backend(), store.Degraded)
	}

	memberService := member.NewMemberService(store, m)
	memberHandler := member.NewMemberHandler(memberService)

	api := router.Group("/api")
	memberHandler.RegisterRoutes(api)
}
