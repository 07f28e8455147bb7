package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// The catalog is loaded once at process start and never mutated afterwards,
// so concurrent reads need no locking. Categories, records, fee tiers and
// requirement lists keep their document order from the JSON file: first-hit
// matching and the requirement fallback depend on it.

type DocumentSpec struct {
	Name      string `json:"name"`
	Mandatory bool   `json:"mandatory"`
	Notes     string `json:"notes"`
}

type ProcessingTime struct {
	StandardDays int  `json:"standard_days"`
	UrgentDays   *int `json:"urgent_days,omitempty"`
}

// EligibilityRules is a per-service override of the default eligibility rules.
type EligibilityRules struct {
	Citizenship []string `json:"citizenship"`
	MinAge      int      `json:"min_age"`
}

// Fee is one named tier of a record's fee table.
type Fee struct {
	Tier   string
	Amount float64
}

// RequirementSet is the ordered document list for one application type.
type RequirementSet struct {
	ApplicationType string
	Documents       []DocumentSpec
}

type ServiceRecord struct {
	Key            string
	Name           string
	Description    string
	Authority      string
	Fees           []Fee
	Requirements   []RequirementSet
	ProcessingTime ProcessingTime
	Eligibility    *EligibilityRules
}

// FeeFor returns the amount for an exact tier key.
func (r *ServiceRecord) FeeFor(tier string) (float64, bool) {
	for _, f := range r.Fees {
		if f.Tier == tier {
			return f.Amount, true
		}
	}
	return 0, false
}

// RequirementsFor returns the document list for an exact application type.
func (r *ServiceRecord) RequirementsFor(applicationType string) ([]DocumentSpec, bool) {
	for _, rs := range r.Requirements {
		if rs.ApplicationType == applicationType {
			return rs.Documents, true
		}
	}
	return nil, false
}

type Category struct {
	Name    string
	Records []*ServiceRecord
}

func (c *Category) Record(key string) (*ServiceRecord, bool) {
	for _, rec := range c.Records {
		if rec.Key == key {
			return rec, true
		}
	}
	return nil, false
}

type Office struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	WalkIn  bool   `json:"walk_in"`
}

// City holds the offices listed for one location key.
type City struct {
	Key     string
	Offices []Office
}

type Catalog struct {
	Categories []*Category
	Cities     []*City

	byCategory map[string]*Category
	byCity     map[string]*City
}

// Category looks up a category by name.
func (c *Catalog) Category(name string) (*Category, bool) {
	cat, ok := c.byCategory[name]
	return cat, ok
}

// City looks up a location by its exact key.
func (c *Catalog) City(key string) (*City, bool) {
	city, ok := c.byCity[key]
	return city, ok
}

// Load reads and parses the catalog file.
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer f.Close()

	catalog, err := Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base %s: %w", path, err)
	}

	logger.Info("Knowledge base loaded",
		zap.String("path", path),
		zap.Int("categories", len(catalog.Categories)),
		zap.Int("cities", len(catalog.Cities)),
	)
	return catalog, nil
}

// Parse decodes a catalog document, preserving the key order of every
// object so that iteration is reproducible.
func Parse(r io.Reader, logger *zap.Logger) (*Catalog, error) {
	var doc struct {
		Services  json.RawMessage `json:"services"`
		Locations json.RawMessage `json:"locations"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	catalog := &Catalog{
		byCategory: make(map[string]*Category),
		byCity:     make(map[string]*City),
	}

	if len(doc.Services) > 0 {
		categories, err := orderedEntries(doc.Services)
		if err != nil {
			return nil, fmt.Errorf("services: %w", err)
		}
		for _, catEntry := range categories {
			cat := &Category{Name: catEntry.key}
			records, err := orderedEntries(catEntry.raw)
			if err != nil {
				return nil, fmt.Errorf("services.%s: %w", catEntry.key, err)
			}
			for _, recEntry := range records {
				rec, err := parseRecord(recEntry.key, recEntry.raw, logger)
				if err != nil {
					return nil, fmt.Errorf("services.%s.%s: %w", catEntry.key, recEntry.key, err)
				}
				cat.Records = append(cat.Records, rec)
			}
			catalog.Categories = append(catalog.Categories, cat)
			catalog.byCategory[cat.Name] = cat
		}
	}

	if len(doc.Locations) > 0 {
		cities, err := orderedEntries(doc.Locations)
		if err != nil {
			return nil, fmt.Errorf("locations: %w", err)
		}
		for _, cityEntry := range cities {
			var loc struct {
				Huduma []Office `json:"huduma"`
			}
			if err := json.Unmarshal(cityEntry.raw, &loc); err != nil {
				return nil, fmt.Errorf("locations.%s: %w", cityEntry.key, err)
			}
			city := &City{Key: cityEntry.key, Offices: loc.Huduma}
			catalog.Cities = append(catalog.Cities, city)
			catalog.byCity[city.Key] = city
		}
	}

	return catalog, nil
}

func parseRecord(key string, raw json.RawMessage, logger *zap.Logger) (*ServiceRecord, error) {
	var body struct {
		Name           string          `json:"name"`
		Description    string          `json:"description"`
		Authority      string          `json:"authority"`
		Fees           json.RawMessage `json:"fees"`
		Requirements   json.RawMessage `json:"requirements"`
		ProcessingTime ProcessingTime  `json:"processing_time"`
		Eligibility    *EligibilityRules `json:"eligibility,omitempty"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}

	rec := &ServiceRecord{
		Key:            key,
		Name:           body.Name,
		Description:    body.Description,
		Authority:      body.Authority,
		ProcessingTime: body.ProcessingTime,
		Eligibility:    body.Eligibility,
	}

	if len(body.Fees) > 0 {
		fees, err := orderedEntries(body.Fees)
		if err != nil {
			return nil, fmt.Errorf("fees: %w", err)
		}
		for _, fe := range fees {
			var amount float64
			if err := json.Unmarshal(fe.raw, &amount); err != nil {
				// Non-numeric fee values carry notes, not amounts
				logger.Warn("Skipping non-numeric fee tier",
					zap.String("record", key),
					zap.String("tier", fe.key),
				)
				continue
			}
			rec.Fees = append(rec.Fees, Fee{Tier: fe.key, Amount: amount})
		}
	}

	if len(body.Requirements) > 0 {
		reqs, err := orderedEntries(body.Requirements)
		if err != nil {
			return nil, fmt.Errorf("requirements: %w", err)
		}
		for _, re := range reqs {
			var docs []DocumentSpec
			if err := json.Unmarshal(re.raw, &docs); err != nil {
				return nil, fmt.Errorf("requirements.%s: %w", re.key, err)
			}
			rec.Requirements = append(rec.Requirements, RequirementSet{
				ApplicationType: re.key,
				Documents:       docs,
			})
		}
	}

	return rec, nil
}

type rawEntry struct {
	key string
	raw json.RawMessage
}

// orderedEntries decodes a JSON object into key/value pairs in document order.
// encoding/json map decoding would lose the order.
func orderedEntries(raw json.RawMessage) ([]rawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var entries []rawEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		entries = append(entries, rawEntry{key: key, raw: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
