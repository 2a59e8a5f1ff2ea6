package http

import (
	"github.com/gin-gonic/gin"

	"insight-engine/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	queries := rg.Group("/queries")
	{
		queries.POST("", mw.RateLimit(), h.Process)
	}
}
