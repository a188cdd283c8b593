package services

import (
	"sort"

	"treehouse-importer/models"
	"treehouse-importer/utils"
)

// InsightService computes aggregate stats over the imported properties.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate builds a StatsReport from the stored properties.
func (s *InsightService) Generate(properties []*models.Property) *models.StatsReport {
	report := &models.StatsReport{
		TopRated:             []*models.Property{},
		PropertiesByLocation: make(map[string]int),
	}

	if len(properties) == 0 {
		return report
	}

	report.TotalProperties = len(properties)

	var priced []*models.Property
	var rated []*models.Property

	for _, p := range properties {
		if p.Price > 0 {
			priced = append(priced, p)
		}
		if p.Rating > 0 {
			rated = append(rated, p)
		}
		if p.Location != "" {
			report.PropertiesByLocation[p.Location]++
		}
	}

	// Price stats (only properties with a resolved price)
	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		report.MostExpensive = priced[0]
		var total int
		for _, p := range priced {
			total += p.Price
			if p.Price < report.MinPrice {
				report.MinPrice = p.Price
			}
			if p.Price > report.MaxPrice {
				report.MaxPrice = p.Price
				report.MostExpensive = p
			}
		}
		report.AveragePrice = round2(float64(total) / float64(len(priced)))
	}

	// Top 5 by rating
	sort.Slice(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	if len(rated) > 5 {
		rated = rated[:5]
	}
	report.TopRated = rated

	return report
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
