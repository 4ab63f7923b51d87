package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"maps-scraper/dto"
	"maps-scraper/models"
	"maps-scraper/utils"
)

// BatchEnricher enriches a whole batch, returning every input once.
type BatchEnricher interface {
	EnrichAll(ctx context.Context, businesses []*models.Business) []*models.Business
}

// SingleEnricher enriches one business.
type SingleEnricher interface {
	EnrichBusiness(ctx context.Context, b *models.Business) *models.Business
}

// ContactController handles the contact-details endpoints
type ContactController struct {
	batch  BatchEnricher
	single SingleEnricher
	logger *utils.Logger
}

func NewContactController(batch BatchEnricher, single SingleEnricher, logger *utils.Logger) *ContactController {
	return &ContactController{batch: batch, single: single, logger: logger}
}

// Enrich handles POST /enrich.
func (ctrl *ContactController) Enrich(c *gin.Context) {
	var req dto.EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	businesses := make([]*models.Business, 0, len(req.Businesses))
	for _, b := range req.Businesses {
		if b != nil {
			businesses = append(businesses, b)
		}
	}
	if len(businesses) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No businesses provided"})
		return
	}

	ctrl.logger.Info("[api] Received %d businesses for enrichment", len(businesses))
	enriched := ctrl.batch.EnrichAll(c.Request.Context(), businesses)

	c.JSON(http.StatusOK, dto.EnrichResponse{
		Success:       true,
		Businesses:    enriched,
		TotalEnriched: len(enriched),
		Timestamp:     dto.Now(),
	})
}

// ExtractSingle handles POST /extract-single.
func (ctrl *ContactController) ExtractSingle(c *gin.Context) {
	var req dto.ExtractSingleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if req.Business == nil || *req.Business == (models.Business{}) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No business provided"})
		return
	}

	c.JSON(http.StatusOK, dto.ExtractSingleResponse{
		Success:   true,
		Business:  ctrl.single.EnrichBusiness(c.Request.Context(), req.Business),
		Timestamp: dto.Now(),
	})
}
