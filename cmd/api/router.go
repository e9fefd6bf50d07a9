package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/user"
	"catalog-backend/internal/shared/middleware"
	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/container"
)

// SetupRouter mounts the middleware chain and all route groups.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	v1.GET("/health", healthHandler(c))

	setupAuthRoutes(v1, c)
	setupAuthorRoutes(v1, c)
	setupBookRoutes(v1, c)
	setupAdminRoutes(v1, c)

	return router
}

func setupAuthRoutes(rg *gin.RouterGroup, c *container.Container) {
	auth := rg.Group("/auth")
	auth.POST("/register", c.UserHandler.Register)
	auth.POST("/login", c.UserHandler.Login)
	auth.GET("/me", middleware.Auth(c.Tokens), c.UserHandler.Me)
}

func setupAuthorRoutes(rg *gin.RouterGroup, c *container.Container) {
	authors := rg.Group("/authors")

	authors.GET("", c.AuthorHandler.List)
	authors.GET("/:id", c.AuthorHandler.GetByID)
	authors.GET("/slug/:slug", c.AuthorHandler.GetBySlug)

	authenticated := authors.Group("", middleware.Auth(c.Tokens))
	authenticated.POST("", c.AuthorHandler.Create)
	authenticated.PATCH("/:id", c.AuthorHandler.Update)
	authenticated.DELETE("/:id", middleware.RequireRole(user.RoleAdmin), c.AuthorHandler.Delete)
}

func setupBookRoutes(rg *gin.RouterGroup, c *container.Container) {
	books := rg.Group("/books")

	books.GET("", c.BookHandler.List)
	books.GET("/:id", c.BookHandler.GetByID)
	books.GET("/slug/:slug", c.BookHandler.GetBySlug)

	authenticated := books.Group("", middleware.Auth(c.Tokens))
	authenticated.POST("", c.BookHandler.Create)
	authenticated.PATCH("/:id", c.BookHandler.Update)
	authenticated.DELETE("/:id", middleware.RequireRole(user.RoleAdmin), c.BookHandler.Delete)
}

func setupAdminRoutes(rg *gin.RouterGroup, c *container.Container) {
	admin := rg.Group("/admin", middleware.Auth(c.Tokens), middleware.RequireRole(user.RoleAdmin))
	admin.GET("/users", c.UserHandler.List)
}

func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{"database": "ok", "cache": "ok"}
		healthy := true

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = err.Error()
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, response.Response{Success: healthy, Data: checks})
	}
}
