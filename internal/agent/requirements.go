package agent

import (
	"context"

	"gavanav/internal/models"

	"go.uber.org/zap"
)

// RequirementsStage selects the document list for the caller's application
// type. When the type is missing from the record's table it falls back to
// the first list in catalog document order and logs the gap.
type RequirementsStage struct {
	logger *zap.Logger
}

func NewRequirementsStage(logger *zap.Logger) *RequirementsStage {
	return &RequirementsStage{logger: logger}
}

func (r *RequirementsStage) Name() string { return nodeRequirements }

func (r *RequirementsStage) Run(_ context.Context, s State) State {
	if s.Err != nil {
		return s
	}

	s.Documents = []models.RequiredDocument{}
	if s.Record == nil {
		return s
	}

	appType := string(s.Input.UserProfile.ApplicationType)
	docs, ok := s.Record.RequirementsFor(appType)
	if !ok && len(s.Record.Requirements) > 0 {
		fallback := s.Record.Requirements[0]
		docs = fallback.Documents
		r.logger.Warn("Application type missing from requirements table, using first list",
			zap.String("request_id", s.RequestID.String()),
			zap.String("record", s.Record.Key),
			zap.String("application_type", appType),
			zap.String("fallback_type", fallback.ApplicationType),
		)
	}

	for _, d := range docs {
		s.Documents = append(s.Documents, models.RequiredDocument{
			DocumentName: d.Name,
			Mandatory:    d.Mandatory,
			Notes:        d.Notes,
		})
	}
	return s
}
