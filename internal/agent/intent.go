package agent

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// IntentStage separates structured service requests from general chat. A run
// is general chat when no service name was given at all; the guardrail has
// already guaranteed a user query exists in that case.
type IntentStage struct {
	logger *zap.Logger
}

func NewIntentStage(logger *zap.Logger) *IntentStage {
	return &IntentStage{logger: logger}
}

func (i *IntentStage) Name() string { return nodeIntent }

func (i *IntentStage) Run(_ context.Context, s State) State {
	if s.Err != nil {
		return s
	}

	if strings.TrimSpace(s.Input.ServiceRequest.ServiceName) == "" {
		s.Intent = IntentGeneralChat
	} else {
		s.Intent = IntentServiceRequest
	}

	i.logger.Debug("Intent classified",
		zap.String("request_id", s.RequestID.String()),
		zap.String("intent", string(s.Intent)),
		zap.String("category", s.Input.ServiceRequest.ServiceCategory),
		zap.String("service", s.Input.ServiceRequest.ServiceName),
	)
	return s
}
