package agent

import (
	"context"
	"strings"

	"gavanav/internal/knowledge"
	"gavanav/internal/models"

	"go.uber.org/zap"
)

const defaultCity = "nairobi"

// LocationStage resolves the applicant's county to a physical office.
// Lookup order: exact catalog key, then substring match in either direction,
// then the default city. A live-search building hint, when present,
// overrides the primary office name and address: live data is fresher than
// the static catalog.
type LocationStage struct {
	catalog *knowledge.Catalog
	logger  *zap.Logger
}

func NewLocationStage(catalog *knowledge.Catalog, logger *zap.Logger) *LocationStage {
	return &LocationStage{
		catalog: catalog,
		logger:  logger,
	}
}

func (l *LocationStage) Name() string { return nodeLocation }

func (l *LocationStage) Run(_ context.Context, s State) State {
	if s.Err != nil {
		return s
	}

	county := strings.ToLower(strings.TrimSpace(s.Input.UserProfile.County))
	city := l.resolveCity(county)

	var location models.ServiceLocation
	if city == nil || len(city.Offices) == 0 {
		// No offices listed: synthesize a placeholder keyed to the request
		// instead of failing.
		location = models.ServiceLocation{
			PrimaryOffice: models.Office{
				OfficeName:    "Huduma Centre GPO",
				County:        titleCase(county),
				Address:       "Teleposta Towers",
				WalkInAllowed: true,
			},
			AlternativeOffices: []models.Office{},
		}
	} else {
		main := city.Offices[0]
		location = models.ServiceLocation{
			PrimaryOffice: models.Office{
				OfficeName:    main.Name,
				County:        titleCase(city.Key),
				Address:       main.Address,
				WalkInAllowed: main.WalkIn,
			},
			AlternativeOffices: []models.Office{},
		}
		for _, alt := range city.Offices[1:] {
			location.AlternativeOffices = append(location.AlternativeOffices, models.Office{
				OfficeName:    alt.Name,
				County:        titleCase(city.Key),
				Address:       alt.Address,
				WalkInAllowed: alt.WalkIn,
			})
		}
	}

	if building := extractBuilding(s.SearchHints); building != "" {
		location.PrimaryOffice.OfficeName = building
		location.PrimaryOffice.Address = building
		l.logger.Debug("Primary office overridden by live hint",
			zap.String("request_id", s.RequestID.String()),
			zap.String("building", building),
		)
	}

	s.Location = &location
	return s
}

func (l *LocationStage) resolveCity(county string) *knowledge.City {
	if city, ok := l.catalog.City(county); ok {
		return city
	}
	for _, city := range l.catalog.Cities {
		if strings.Contains(county, city.Key) || strings.Contains(city.Key, county) {
			return city
		}
	}
	fallback, _ := l.catalog.City(defaultCity)
	return fallback
}

// extractBuilding pulls at most one building name out of hint text matching
// the pattern "operating at X.".
func extractBuilding(hints []models.SearchHint) string {
	const marker = "operating at "
	for _, hint := range hints {
		start := strings.Index(hint.Content, marker)
		if start == -1 {
			continue
		}
		rest := hint.Content[start+len(marker):]
		end := strings.Index(rest, ".")
		if end == -1 {
			continue
		}
		if building := strings.TrimSpace(rest[:end]); building != "" {
			return building
		}
	}
	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
