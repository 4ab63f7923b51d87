package services

import (
	"strings"

	"maps-scraper/extract"
	"maps-scraper/models"
	"maps-scraper/utils"
)

const (
	nameDupThreshold  = 0.85
	phoneDupThreshold = 0.90
)

// Deduplicator drops near-duplicate businesses picked up from overlapping
// scrolls. The first occurrence wins; later ones are discarded, not merged.
type Deduplicator struct {
	logger *utils.Logger
}

func NewDeduplicator(logger *utils.Logger) *Deduplicator {
	return &Deduplicator{logger: logger}
}

type dedupeKey struct {
	name  string
	phone string
}

// Dedupe returns records with duplicates removed, preserving order.
func (d *Deduplicator) Dedupe(records []*models.Business) []*models.Business {
	seen := utils.NewStringSet()
	var kept []dedupeKey
	out := make([]*models.Business, 0, len(records))

	for _, r := range records {
		if r == nil {
			continue
		}
		key := dedupeKey{name: normaliseName(r.Name), phone: extract.Digits(r.Phone)}
		if seen.Contains(key.name) {
			d.logger.Debug("[dedupe] Exact duplicate dropped: %s", r.Name)
			continue
		}
		if k, dup := matchAny(key, kept); dup {
			d.logger.Debug("[dedupe] %q dropped as duplicate of %q", r.Name, k.name)
			continue
		}
		seen.Add(key.name)
		kept = append(kept, key)
		out = append(out, r)
	}

	if removed := len(records) - len(out); removed > 0 {
		d.logger.Info("[dedupe] Removed %d duplicates, %d remain", removed, len(out))
	}
	return out
}

func matchAny(key dedupeKey, kept []dedupeKey) (dedupeKey, bool) {
	for _, k := range kept {
		if extract.Similarity(key.name, k.name) >= nameDupThreshold {
			return k, true
		}
		if key.phone != "" && k.phone != "" && extract.Similarity(key.phone, k.phone) >= phoneDupThreshold {
			return k, true
		}
	}
	return dedupeKey{}, false
}

func normaliseName(s string) string {
	return strings.ToLower(extract.CollapseSpace(s))
}
