package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "clientsapi/docs"
	"clientsapi/internal/handlers"
	"clientsapi/internal/middleware"
)

// Options toggles the optional parts of the router.
type Options struct {
	// JWTSecret enables bearer auth on /api when non-empty.
	JWTSecret string
	Swagger   bool
}

func SetupRoutes(r *gin.Engine, clientHandler *handlers.ClientHandler, opts Options) *gin.Engine {
	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ---- api
	api := r.Group("/api/v1")
	if opts.JWTSecret != "" {
		api.Use(middleware.AuthMiddleware([]byte(opts.JWTSecret)))
	}

	// CLIENTS
	clients := api.Group("/clients")
	{
		clients.GET("", clientHandler.List)
		clients.GET("/search", clientHandler.Search)
		clients.GET("/:id", clientHandler.GetByID)
		clients.POST("", clientHandler.Create)
		clients.PUT("/:id", clientHandler.Update)
		clients.PATCH("/:id", clientHandler.SetEnabled)
		clients.DELETE("/:id", clientHandler.Delete)
	}

	return r
}
