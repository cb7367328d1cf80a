package router

import (
	"github.com/cravelog/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("cravelog_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 页面引导：会话校验与一次性 token 兑换
	r.GET("/", api.Bootstrap)
	r.GET("/logout", api.Logout)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/languages", api.ListLanguages)

		// 需要认证的 API 路由
		auth := apiGroup.Group("")
		auth.Use(api.AuthRequired())
		{
			auth.PUT("/language", api.SetLanguage)

			auth.GET("/cravings", api.ListCravings)
			auth.POST("/cravings", api.CreateCraving)
			auth.DELETE("/cravings/:id", api.DeleteCraving)
			auth.DELETE("/craving-refs/:ref", api.DeleteCravingByRef)
			auth.GET("/cravings/metrics", api.GetCravingMetrics)
			auth.GET("/cravings/export", api.ExportCravings)

			auth.GET("/insights", api.GetInsights)
			auth.GET("/timer", api.GetTimer)
			auth.POST("/translations", api.TranslateBatch)
		}
	}

	return r
}
