package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIntentClassification(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		want        Intent
	}{
		{"named service", "Kenyan Passport", IntentServiceRequest},
		{"blank name", "", IntentGeneralChat},
		{"whitespace-only name", "   ", IntentGeneralChat},
	}

	stage := NewIntentStage(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := passportInput()
			input.ServiceRequest.ServiceName = tt.serviceName
			input.UserQuery = "something to keep the guardrail off our back"

			s := stage.Run(context.Background(), NewState(input))

			assert.Equal(t, tt.want, s.Intent)
		})
	}
}
