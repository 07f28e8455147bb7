package knowledge

import (
	"strings"

	"go.uber.org/zap"
)

// Match tiers, in the order they are tried.
const (
	MatchByQuery         = "query"
	MatchInCategory      = "category"
	MatchCrossCategory   = "cross_category"
	MatchOutcomeNotFound = "not_found"
)

// Resolver maps a (category, name, optional free-text query) triple onto a
// catalog record. Matching is first-hit in catalog document order, never
// best-hit: the catalog is small and curated, and loose substring containment
// buys recall against messy UI input at the cost of occasional false
// positives.
type Resolver struct {
	catalog *Catalog
	logger  *zap.Logger
}

func NewResolver(catalog *Catalog, logger *zap.Logger) *Resolver {
	return &Resolver{
		catalog: catalog,
		logger:  logger,
	}
}

// Resolve returns the first matching record, or nil when every tier is
// exhausted. Tiers, in strict priority order: free-text query scan over the
// whole catalog, structured match within the requested category, then the
// cross-category fallback.
func (r *Resolver) Resolve(category, name, query string) *ServiceRecord {
	if q := Normalize(query); q != "" {
		for _, cat := range r.catalog.Categories {
			for _, rec := range cat.Records {
				if matchesQuery(rec, q) {
					r.logger.Debug("Service resolved",
						zap.String("tier", MatchByQuery),
						zap.String("category", cat.Name),
						zap.String("record", rec.Key),
					)
					return rec
				}
			}
		}
	}

	n := Normalize(name)
	if n == "" {
		return nil
	}

	if cat, ok := r.catalog.Category(category); ok {
		if rec := matchInCategory(cat, n); rec != nil {
			r.logger.Debug("Service resolved",
				zap.String("tier", MatchInCategory),
				zap.String("category", cat.Name),
				zap.String("record", rec.Key),
			)
			return rec
		}
	}

	for _, cat := range r.catalog.Categories {
		if cat.Name == category {
			continue
		}
		if rec := matchInCategory(cat, n); rec != nil {
			r.logger.Debug("Service resolved",
				zap.String("tier", MatchCrossCategory),
				zap.String("category", cat.Name),
				zap.String("record", rec.Key),
			)
			return rec
		}
	}

	r.logger.Debug("Service not resolved",
		zap.String("tier", MatchOutcomeNotFound),
		zap.String("category", category),
		zap.String("name", name),
	)
	return nil
}

// matchesQuery tests a record against a normalized free-text query: the
// catalog key contained in the query, the record name contained in the
// query, or the query contained in the record name.
func matchesQuery(rec *ServiceRecord, q string) bool {
	key := Normalize(rec.Key)
	name := Normalize(rec.Name)
	if key != "" && strings.Contains(q, key) {
		return true
	}
	if name != "" && (strings.Contains(q, name) || strings.Contains(name, q)) {
		return true
	}
	return false
}

// matchInCategory tests the normalized requested name against each record's
// key and display name with symmetric containment, first hit wins.
func matchInCategory(cat *Category, n string) *ServiceRecord {
	for _, rec := range cat.Records {
		key := Normalize(rec.Key)
		name := Normalize(rec.Name)
		if key != "" && (strings.Contains(key, n) || strings.Contains(n, key)) {
			return rec
		}
		if name != "" && (strings.Contains(name, n) || strings.Contains(n, name)) {
			return rec
		}
	}
	return nil
}

// Normalize strips every non-alphanumeric character and lower-cases the rest.
// It is applied identically to catalog keys, record display names, requested
// names and free-text queries.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
