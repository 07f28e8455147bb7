package agent

import (
	"context"

	"gavanav/internal/service"

	"go.uber.org/zap"
)

// ReasoningStage asks the reasoning collaborator for a natural-language
// explanation of the run. A collaborator failure is absorbed: the run gets
// canned text and a lower confidence score, never an error.
type ReasoningStage struct {
	reasoner service.Reasoner
	logger   *zap.Logger
}

func NewReasoningStage(reasoner service.Reasoner, logger *zap.Logger) *ReasoningStage {
	return &ReasoningStage{
		reasoner: reasoner,
		logger:   logger,
	}
}

func (r *ReasoningStage) Name() string { return nodeReasoning }

func (r *ReasoningStage) Run(ctx context.Context, s State) State {
	if s.Err != nil {
		return s
	}

	rc := service.ReasoningContext{
		UserProfile:    s.Input.UserProfile,
		ServiceRequest: s.Input.ServiceRequest,
		UserQuery:      s.Input.UserQuery,
		FoundInKB:      s.Record != nil,
		Eligibility:    s.Eligibility,
		Cost:           s.Cost,
		Requirements:   s.Documents,
	}

	guidance, err := r.reasoner.Explain(ctx, rc)
	if err != nil {
		r.logger.Warn("Reasoning collaborator failed, degrading to canned guidance",
			zap.String("request_id", s.RequestID.String()),
			zap.Error(err),
		)
		guidance = service.DegradedGuidance()
	}

	s.Reasoning = guidance
	return s
}
