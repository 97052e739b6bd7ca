package http

import (
	"github.com/booklyhq/bookly/core"
	"github.com/booklyhq/bookly/service"
	"github.com/gin-gonic/gin"
)

// SetupRouter sets up the Gin router
func SetupRouter(auth *service.AuthService, books *service.BookService, reviews *service.ReviewService) *gin.Engine {
	router := gin.Default()

	authHandlers := NewAuthHandlers(auth)
	bookHandlers := NewBookHandlers(books)
	reviewHandlers := NewReviewHandlers(reviews, auth)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", authHandlers.SignUp)
		authGroup.POST("/login", authHandlers.Login)
		authGroup.GET("/refresh", TokenBearer(auth, service.RequireRefresh), authHandlers.Refresh)
		authGroup.GET("/logout", TokenBearer(auth, service.RequireAccess), authHandlers.Logout)
		authGroup.GET("/me", TokenBearer(auth, service.RequireAccess), authHandlers.Me)
	}

	// Role allow-lists are fixed at route registration
	bookGroup := v1.Group("/books",
		TokenBearer(auth, service.RequireAccess),
		RequireRoles(core.RoleAdmin, core.RoleUser),
	)
	{
		bookGroup.GET("", bookHandlers.List)
		bookGroup.POST("", bookHandlers.Create)
		bookGroup.GET("/user/:uid", bookHandlers.ListByUser)
		bookGroup.GET("/:uid", bookHandlers.Get)
		bookGroup.PATCH("/:uid", bookHandlers.Update)
		bookGroup.DELETE("/:uid", bookHandlers.Delete)
	}

	reviewGroup := v1.Group("/reviews",
		TokenBearer(auth, service.RequireAccess),
		RequireRoles(core.RoleAdmin, core.RoleUser),
	)
	{
		reviewGroup.POST("/book/:uid", reviewHandlers.AddReview)
	}

	return router
}
