package api

import (
	"github.com/gin-gonic/gin"
)

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	// API version prefix
	v1 := router.Group("/api/v1")

	// Health check endpoint
	v1.GET("/health", s.handleHealth)

	// Command queue endpoints
	queue := v1.Group("/queue")
	{
		queue.GET("/stats", s.handleQueueStats)
		queue.POST("/commands", s.handleSubmitCommands)
		queue.POST("/drain", s.handleDrain)
	}

	// Execution journal
	v1.GET("/journal", s.handleJournal)
}
