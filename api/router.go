package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maps-scraper/api/controllers"
	"maps-scraper/dto"
	"maps-scraper/utils"
)

const (
	ScraperServiceName = "maps-scraper"
	ContactServiceName = "contact-details-server"
)

// NewScraperRouter creates the map scraper service router.
func NewScraperRouter(scrape *controllers.ScrapeController, logger *utils.Logger) *gin.Engine {
	router := newEngine(logger)

	router.GET("/health", health(ScraperServiceName))
	router.POST("/scrape", scrape.Scrape)
	router.POST("/scrape-batch", scrape.ScrapeBatch)
	router.POST("/restart-driver", scrape.RestartDriver)

	return router
}

// NewContactRouter creates the contact-details service router.
func NewContactRouter(contact *controllers.ContactController, logger *utils.Logger) *gin.Engine {
	router := newEngine(logger)

	router.GET("/health", health(ContactServiceName))
	router.POST("/enrich", contact.Enrich)
	router.POST("/extract-single", contact.ExtractSingle)

	return router
}

func health(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:    "healthy",
			Service:   service,
			Timestamp: dto.Now(),
		})
	}
}
