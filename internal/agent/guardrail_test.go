package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGuardrailAcceptsValidInput(t *testing.T) {
	stage := NewGuardrailStage(zap.NewNop())

	s := stage.Run(context.Background(), NewState(passportInput()))

	assert.Nil(t, s.Err)
}

func TestGuardrailAcceptsQueryWithoutServiceName(t *testing.T) {
	stage := NewGuardrailStage(zap.NewNop())

	input := passportInput()
	input.ServiceRequest.ServiceName = ""
	input.UserQuery = "how do I get a passport?"

	s := stage.Run(context.Background(), NewState(input))

	assert.Nil(t, s.Err)
}

func TestGuardrailRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*State)
		message string
	}{
		{
			name:    "blank county",
			mutate:  func(s *State) { s.Input.UserProfile.County = "   " },
			message: "county is required",
		},
		{
			name:    "negative age",
			mutate:  func(s *State) { s.Input.UserProfile.Age = -1 },
			message: "age must be non-negative",
		},
		{
			name:    "bad citizenship",
			mutate:  func(s *State) { s.Input.UserProfile.CitizenshipStatus = "martian" },
			message: "invalid citizenship_status",
		},
		{
			name:    "bad application type",
			mutate:  func(s *State) { s.Input.UserProfile.ApplicationType = "hurry" },
			message: "invalid application_type",
		},
		{
			name:    "bad urgency",
			mutate:  func(s *State) { s.Input.ServiceRequest.UrgencyLevel = "yesterday" },
			message: "invalid urgency_level",
		},
		{
			name:    "bad language",
			mutate:  func(s *State) { s.Input.SessionContext.LanguagePreference = "fr" },
			message: "invalid language_preference",
		},
		{
			name:    "bad device",
			mutate:  func(s *State) { s.Input.SessionContext.DeviceType = "fridge" },
			message: "invalid device_type",
		},
		{
			name: "no service name and no query",
			mutate: func(s *State) {
				s.Input.ServiceRequest.ServiceName = ""
				s.Input.UserQuery = "  "
			},
			message: "service_name or user_query is required",
		},
	}

	stage := NewGuardrailStage(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(passportInput())
			tt.mutate(&s)

			out := stage.Run(context.Background(), s)

			require.NotNil(t, out.Err)
			assert.Equal(t, ErrValidation, out.Err.Kind)
			assert.Contains(t, out.Err.Message, "Guardrail violation: invalid input format:")
			assert.Contains(t, out.Err.Message, tt.message)
		})
	}
}

func TestGuardrailCollectsAllProblems(t *testing.T) {
	stage := NewGuardrailStage(zap.NewNop())

	s := NewState(passportInput())
	s.Input.UserProfile.County = ""
	s.Input.UserProfile.Age = -5

	out := stage.Run(context.Background(), s)

	require.NotNil(t, out.Err)
	assert.Contains(t, out.Err.Message, "county is required")
	assert.Contains(t, out.Err.Message, "age must be non-negative")
}
