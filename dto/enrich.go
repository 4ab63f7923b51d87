package dto

import "maps-scraper/models"

// EnrichRequest is the body of POST /enrich.
type EnrichRequest struct {
	Businesses []*models.Business `json:"businesses"`
}

type EnrichResponse struct {
	Success       bool               `json:"success"`
	Businesses    []*models.Business `json:"businesses"`
	TotalEnriched int                `json:"total_enriched"`
	Timestamp     string             `json:"timestamp"`
}

// ExtractSingleRequest is the body of POST /extract-single.
type ExtractSingleRequest struct {
	Business *models.Business `json:"business"`
}

type ExtractSingleResponse struct {
	Success   bool             `json:"success"`
	Business  *models.Business `json:"business"`
	Timestamp string           `json:"timestamp"`
}
