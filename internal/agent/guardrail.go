package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// GuardrailStage rejects malformed requests before any business logic runs.
// It is the entry node, so it is the one stage that does not start with an
// error check.
type GuardrailStage struct {
	logger *zap.Logger
}

func NewGuardrailStage(logger *zap.Logger) *GuardrailStage {
	return &GuardrailStage{logger: logger}
}

func (g *GuardrailStage) Name() string { return nodeGuardrail }

func (g *GuardrailStage) Run(_ context.Context, s State) State {
	in := s.Input

	var problems []string
	if strings.TrimSpace(in.UserProfile.County) == "" {
		problems = append(problems, "county is required")
	}
	if in.UserProfile.Age < 0 {
		problems = append(problems, "age must be non-negative")
	}
	if !in.UserProfile.CitizenshipStatus.Valid() {
		problems = append(problems, fmt.Sprintf("invalid citizenship_status %q", in.UserProfile.CitizenshipStatus))
	}
	if !in.UserProfile.ApplicationType.Valid() {
		problems = append(problems, fmt.Sprintf("invalid application_type %q", in.UserProfile.ApplicationType))
	}
	if !in.ServiceRequest.UrgencyLevel.Valid() {
		problems = append(problems, fmt.Sprintf("invalid urgency_level %q", in.ServiceRequest.UrgencyLevel))
	}
	if !in.SessionContext.LanguagePreference.Valid() {
		problems = append(problems, fmt.Sprintf("invalid language_preference %q", in.SessionContext.LanguagePreference))
	}
	if !in.SessionContext.DeviceType.Valid() {
		problems = append(problems, fmt.Sprintf("invalid device_type %q", in.SessionContext.DeviceType))
	}
	if strings.TrimSpace(in.ServiceRequest.ServiceName) == "" && strings.TrimSpace(in.UserQuery) == "" {
		problems = append(problems, "either service_request.service_name or user_query is required")
	}

	if len(problems) > 0 {
		g.logger.Info("Guardrail rejected request",
			zap.String("request_id", s.RequestID.String()),
			zap.Strings("problems", problems),
		)
		return s.failed(ErrValidation, "Guardrail violation: invalid input format: "+strings.Join(problems, "; "))
	}

	return s
}
