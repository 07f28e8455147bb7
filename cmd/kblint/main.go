// kblint loads the knowledge base file and checks it for the mistakes that
// tend to slip into hand-curated catalog edits: records without names or
// authorities, documents without names, and processing times that would read
// as "0 days". It exits non-zero when anything is wrong.
package main

import (
	"log"
	"os"

	"gavanav/internal/knowledge"
	"gavanav/pkg/config"
	"gavanav/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	path := cfg.Knowledge.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	catalog, err := knowledge.Load(path, appLogger)
	if err != nil {
		appLogger.Fatal("Knowledge base failed to load", zap.Error(err))
	}

	problems := 0
	records := 0
	for _, cat := range catalog.Categories {
		for _, rec := range cat.Records {
			records++
			if rec.Name == "" {
				appLogger.Error("Record has no display name",
					zap.String("category", cat.Name), zap.String("key", rec.Key))
				problems++
			}
			if rec.Authority == "" {
				appLogger.Error("Record has no responsible authority",
					zap.String("category", cat.Name), zap.String("key", rec.Key))
				problems++
			}
			if rec.ProcessingTime.StandardDays <= 0 {
				appLogger.Error("Record has no standard processing time",
					zap.String("category", cat.Name), zap.String("key", rec.Key))
				problems++
			}
			for _, rs := range rec.Requirements {
				for _, doc := range rs.Documents {
					if doc.Name == "" {
						appLogger.Error("Requirement document has no name",
							zap.String("category", cat.Name),
							zap.String("key", rec.Key),
							zap.String("application_type", rs.ApplicationType))
						problems++
					}
				}
			}
			for _, fee := range rec.Fees {
				if fee.Amount < 0 {
					appLogger.Error("Negative fee amount",
						zap.String("category", cat.Name),
						zap.String("key", rec.Key),
						zap.String("tier", fee.Tier))
					problems++
				}
			}
		}
		appLogger.Info("Category checked",
			zap.String("category", cat.Name),
			zap.Int("records", len(cat.Records)),
		)
	}

	offices := 0
	for _, city := range catalog.Cities {
		offices += len(city.Offices)
		if len(city.Offices) == 0 {
			appLogger.Warn("City has no offices listed; runtime will synthesize a placeholder",
				zap.String("city", city.Key))
		}
	}

	appLogger.Info("Knowledge base lint complete",
		zap.Int("categories", len(catalog.Categories)),
		zap.Int("records", records),
		zap.Int("cities", len(catalog.Cities)),
		zap.Int("offices", offices),
		zap.Int("problems", problems),
	)
	if problems > 0 {
		os.Exit(1)
	}
}
