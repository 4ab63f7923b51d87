package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"maps-scraper/dto"
	"maps-scraper/models"
	"maps-scraper/utils"
)

// ScrapeRunner runs single and batch scrapes.
type ScrapeRunner interface {
	Run(ctx context.Context, req models.ScrapeRequest) (*models.ScrapeResult, error)
	RunBatch(ctx context.Context, locations []dto.BatchLocation) []dto.LocationResult
}

// BrowserRestarter recycles the scraping browser.
type BrowserRestarter interface {
	RestartBrowser() error
}

// ScrapeController handles the map scraper endpoints
type ScrapeController struct {
	runner    ScrapeRunner
	restarter BrowserRestarter
	logger    *utils.Logger
}

func NewScrapeController(runner ScrapeRunner, restarter BrowserRestarter, logger *utils.Logger) *ScrapeController {
	return &ScrapeController{runner: runner, restarter: restarter, logger: logger}
}

// Scrape handles POST /scrape.
func (ctrl *ScrapeController) Scrape(c *gin.Context) {
	var req dto.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if req.SearchTerm == "" || req.AreaName == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "search_term and area_name are required"})
		return
	}

	ctrl.logger.Info("[api] Scrape request: %s in %s", req.SearchTerm, req.AreaName)
	result, err := ctrl.runner.Run(c.Request.Context(), req.Model())
	if err != nil {
		ctrl.logger.Error("[api] Scrape failed: %v", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ScrapeResponse{
		Success:   true,
		Data:      result,
		Timestamp: dto.Now(),
	})
}

// ScrapeBatch handles POST /scrape-batch.
func (ctrl *ScrapeController) ScrapeBatch(c *gin.Context) {
	var req dto.BatchScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if len(req.Locations) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No locations provided"})
		return
	}

	results := ctrl.runner.RunBatch(c.Request.Context(), req.Locations)
	ok := 0
	for _, r := range results {
		if r.Success {
			ok++
		}
	}

	c.JSON(http.StatusOK, dto.BatchScrapeResponse{
		Success:           true,
		Results:           results,
		TotalLocations:    len(req.Locations),
		SuccessfulScrapes: ok,
		Timestamp:         dto.Now(),
	})
}

// RestartDriver handles POST /restart-driver.
func (ctrl *ScrapeController) RestartDriver(c *gin.Context) {
	if err := ctrl.restarter.RestartBrowser(); err != nil {
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Driver restarted"})
}
