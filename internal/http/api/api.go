// Package api wires the HTTP routes and middleware.
package api

import (
	"net/http"

	"github.com/coderemark/coderemark/internal/http/api/handlers"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the service endpoints on the engine. The health
// endpoint bypasses the rate limiter.
func RegisterRoutes(engine *gin.Engine, comment *handlers.CommentHandler, rateLimitMW gin.HandlerFunc) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	group := engine.Group("/api")
	if rateLimitMW != nil {
		group.Use(rateLimitMW)
	}
	group.POST("/comment", comment.Handle)
}
