package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"maps-scraper/dto"
	"maps-scraper/utils"
)

const requestIDHeader = "X-Request-ID"

// RequestID stamps every request with an id, reusing one supplied by the
// caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Recovery turns a handler panic into the standard 500 envelope.
func Recovery(logger *utils.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("[api] %s %s panicked (request %s): %v",
			c.Request.Method, c.Request.URL.Path, c.GetString("request_id"), recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Endpoint not found"})
}

func newEngine(logger *utils.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), gin.Logger(), Recovery(logger))
	router.NoRoute(notFound)
	return router
}
