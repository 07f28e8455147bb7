package service

import (
	"context"
	"fmt"
	"strings"

	"gavanav/internal/models"

	"go.uber.org/zap"
)

// Searcher is the optional live-search collaborator. Results are hints only:
// a failed or empty search never fails the pipeline.
type Searcher interface {
	Search(ctx context.Context, query SearchQuery) ([]models.SearchHint, error)
}

// SearchQuery names what to look up and where.
type SearchQuery struct {
	ServiceName string
	County      string
}

// SimulatedSearcher fabricates deterministic live hints from a small table of
// known Huduma Centre buildings. It stands in for a real search API (Tavily,
// Serper, Google Places) behind the same interface.
type SimulatedSearcher struct {
	logger *zap.Logger
}

func NewSimulatedSearcher(logger *zap.Logger) *SimulatedSearcher {
	return &SimulatedSearcher{logger: logger}
}

var countyBuildings = map[string]string{
	"kisumu":      "Prosperity House, 1st Floor",
	"mombasa":     "Mombasa Trade Centre (formerly Ambalal House)",
	"nairobi":     "Teleposta Towers, GPO",
	"nakuru":      "Posta House (Old Town)",
	"uasin gishu": "Eldoret Huduma Centre (NSSF Building)",
	"kajiado":     "Kajiado Huduma Centre (Near County Gate)",
}

func (s *SimulatedSearcher) Search(_ context.Context, query SearchQuery) ([]models.SearchHint, error) {
	county := strings.ToLower(strings.TrimSpace(query.County))
	building, ok := countyBuildings[county]
	if !ok {
		building = fmt.Sprintf("%s Government Complex", title(county))
	}

	s.logger.Debug("Live search simulated",
		zap.String("service", query.ServiceName),
		zap.String("county", county),
	)

	return []models.SearchHint{
		{
			Title: fmt.Sprintf("Live Status: Huduma Centre %s", title(county)),
			Content: fmt.Sprintf("The main branch is currently operating at %s. Current queue times are reported as 'Normal'. No appointment needed for %s.",
				building, query.ServiceName),
			Source: "Live GavaNav Web Lookup",
		},
		{
			Title:   fmt.Sprintf("Recent %s Policy Update", query.ServiceName),
			Content: "A new circular was issued stating that applications must now be initiated online first via eCitizen before visiting a physical centre.",
			Source:  "Ministry of Interior Live Update",
		},
	}, nil
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
