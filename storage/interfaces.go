package storage

import (
	"errors"

	"maps-scraper/models"
)

// BusinessWriter is the interface any storage backend must satisfy.
type BusinessWriter interface {
	Write(businesses []*models.Business) error
	Close() error
}

// Columns is the column order shared by every tabular backend.
var Columns = []string{
	"name", "rating", "review_count", "address", "category", "phone", "website",
	"email", "facebook", "instagram", "twitter", "linkedin", "youtube", "whatsapp",
	"search_term", "area", "coordinates", "scraped_date",
}

func row(b *models.Business) []string {
	return []string{
		b.Name, b.Rating, b.ReviewCount, b.Address, b.Category, b.Phone, b.Website,
		b.Email, b.Facebook, b.Instagram, b.Twitter, b.LinkedIn, b.YouTube, b.WhatsApp,
		b.SearchTerm, b.Area, b.Coordinates, b.ScrapedDate,
	}
}

func args(b *models.Business) []interface{} {
	r := row(b)
	out := make([]interface{}, len(r))
	for i, v := range r {
		out[i] = v
	}
	return out
}

// MultiWriter fans every batch out to several backends. A failing backend
// does not stop the others; their errors are joined.
type MultiWriter struct {
	writers []BusinessWriter
}

func NewMultiWriter(writers ...BusinessWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (m *MultiWriter) Len() int { return len(m.writers) }

func (m *MultiWriter) Write(businesses []*models.Business) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Write(businesses); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiWriter) Close() error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
