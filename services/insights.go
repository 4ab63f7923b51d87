package services

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"maps-scraper/models"
	"maps-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(businesses []*models.Business) *models.InsightReport {
	report := &models.InsightReport{
		ByCategory: make(map[string]int),
	}

	if len(businesses) == 0 {
		return report
	}

	report.TotalBusinesses = len(businesses)

	type rated struct {
		biz   *models.Business
		value float64
	}
	var ratings []rated
	var total float64

	for _, b := range businesses {
		if b.Phone != "" {
			report.WithPhone++
		}
		if b.Website != "" {
			report.WithWebsite++
		}
		if b.Address != "" {
			report.WithAddress++
		}
		if b.Email != "" {
			report.WithEmail++
		}
		if b.Contacts().HasSocial() {
			report.WithSocial++
		}
		if b.Category != "" {
			report.ByCategory[b.Category]++
		}
		if v, err := strconv.ParseFloat(b.Rating, 64); err == nil && v > 0 {
			ratings = append(ratings, rated{biz: b, value: v})
			total += v
		}
	}

	if len(ratings) > 0 {
		report.AverageRating = round2(total / float64(len(ratings)))
	}

	// Top 5 by rating
	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].value > ratings[j].value
	})
	for i := 0; i < len(ratings) && i < 5; i++ {
		report.TopRated = append(report.TopRated, ratings[i].biz)
	}

	return report
}

// Summary is a one-line digest for the logs.
func (s *InsightService) Summary(r *models.InsightReport) string {
	return fmt.Sprintf("%d businesses: phone %d, website %d, address %d, email %d, social %d, avg rating %.2f",
		r.TotalBusinesses, r.WithPhone, r.WithWebsite, r.WithAddress, r.WithEmail, r.WithSocial, r.AverageRating)
}

// Render writes the full report in the terminal layout used after smoke
// scrapes.
func (s *InsightService) Render(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 MAPS SCRAPE INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	// Coverage
	fmt.Fprintf(w, "\033[1;33m  Field Coverage\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Total businesses : \033[1m%d\033[0m\n", r.TotalBusinesses)
	fmt.Fprintf(w, "  With phone       : %s\n", coverage(r.WithPhone, r.TotalBusinesses))
	fmt.Fprintf(w, "  With website     : %s\n", coverage(r.WithWebsite, r.TotalBusinesses))
	fmt.Fprintf(w, "  With address     : %s\n", coverage(r.WithAddress, r.TotalBusinesses))
	fmt.Fprintf(w, "  With email       : %s\n", coverage(r.WithEmail, r.TotalBusinesses))
	fmt.Fprintf(w, "  With social link : %s\n", coverage(r.WithSocial, r.TotalBusinesses))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Top Rated\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopRated) == 0 {
		fmt.Fprintf(w, "  No rated businesses found\n")
	} else {
		fmt.Fprintf(w, "  Average rating : \033[1;32m%.2f ★\033[0m\n", r.AverageRating)
		for i, b := range r.TopRated {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%s ★\033[0m (%s)\n",
				i+1, truncate(b.Name, 38), b.Rating, b.ReviewCount)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Businesses by Category\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.ByCategory) == 0 {
		fmt.Fprintf(w, "  No category data\n")
	} else {
		type catCount struct {
			cat   string
			count int
		}
		var cats []catCount
		for cat, cnt := range r.ByCategory {
			cats = append(cats, catCount{cat, cnt})
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].count != cats[j].count {
				return cats[i].count > cats[j].count
			}
			return cats[i].cat < cats[j].cat
		})
		for _, cc := range cats {
			bar := strings.Repeat("█", cc.count)
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(cc.cat, 28), bar, cc.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func coverage(n, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("\033[1m%d\033[0m (%.0f%%)", n, float64(n)*100/float64(total))
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}
