package dto

import (
	"time"

	"maps-scraper/models"
)

// ScrapeRequest is the body of POST /scrape.
type ScrapeRequest struct {
	SearchTerm string  `json:"search_term"`
	AreaName   string  `json:"area_name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	RadiusKm   float64 `json:"radius_km"`
	MaxResults int     `json:"max_results"`
}

func (r ScrapeRequest) Model() models.ScrapeRequest {
	return models.ScrapeRequest{
		SearchTerm: r.SearchTerm,
		AreaName:   r.AreaName,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		RadiusKm:   r.RadiusKm,
		MaxResults: r.MaxResults,
	}
}

// BatchLocation is one entry of POST /scrape-batch. Coordinates are pointers
// so a missing value can be told apart from zero.
type BatchLocation struct {
	SearchTerm string   `json:"search_term"`
	AreaName   string   `json:"area_name"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	RadiusKm   float64  `json:"radius_km"`
	MaxResults int      `json:"max_results"`
}

// Complete reports whether every required field is present.
func (l BatchLocation) Complete() bool {
	return l.SearchTerm != "" && l.AreaName != "" && l.Latitude != nil && l.Longitude != nil
}

func (l BatchLocation) Model() models.ScrapeRequest {
	r := models.ScrapeRequest{
		SearchTerm: l.SearchTerm,
		AreaName:   l.AreaName,
		RadiusKm:   l.RadiusKm,
		MaxResults: l.MaxResults,
	}
	if l.Latitude != nil {
		r.Latitude = *l.Latitude
	}
	if l.Longitude != nil {
		r.Longitude = *l.Longitude
	}
	return r
}

type BatchScrapeRequest struct {
	Locations []BatchLocation `json:"locations"`
}

type ScrapeResponse struct {
	Success   bool                 `json:"success"`
	Data      *models.ScrapeResult `json:"data"`
	Timestamp string               `json:"timestamp"`
}

// LocationResult reports one location of a batch scrape.
type LocationResult struct {
	Location string               `json:"location"`
	Success  bool                 `json:"success"`
	Data     *models.ScrapeResult `json:"data,omitempty"`
	Error    string               `json:"error,omitempty"`
}

type BatchScrapeResponse struct {
	Success           bool             `json:"success"`
	Results           []LocationResult `json:"results"`
	TotalLocations    int              `json:"total_locations"`
	SuccessfulScrapes int              `json:"successful_scrapes"`
	Timestamp         string           `json:"timestamp"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// Now is the timestamp format used in every response envelope.
func Now() string {
	return time.Now().Format(time.RFC3339)
}
