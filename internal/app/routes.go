package app

import (
	"github.com/gin-gonic/gin"
	"github.com/inklet-blog/core/internal/middleware"
	"github.com/inklet-blog/core/internal/models"
	"github.com/inklet-blog/core/internal/modules/auth"
	"github.com/inklet-blog/core/internal/modules/category"
	"github.com/inklet-blog/core/internal/modules/post"
	"github.com/inklet-blog/core/internal/modules/user"
	pkgredis "github.com/inklet-blog/core/internal/pkg/redis"
	"github.com/inklet-blog/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)
	adminMW := middleware.RequireRoles(models.RoleAdmin)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	api := r.Group("/api/v1")
	// OptionalAuth runs before the rate limiter so authenticated traffic is exempt.
	api.Use(middleware.OptionalAuth(db))
	api.Use(middleware.RateLimit(rc.Raw()))

	api.GET("/ping", func(c *gin.Context) {
		response.OK(c, "pong")
	})

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	user.NewHandler(db).RegisterRoutes(api)
	category.NewHandler(category.NewService(db)).RegisterRoutes(api, authMW, adminMW)
	post.NewHandler(post.NewService(db)).RegisterRoutes(api, authMW)
}
