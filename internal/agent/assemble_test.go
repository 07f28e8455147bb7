package agent

import (
	"context"
	"testing"

	"gavanav/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testReasoning() *models.ReasoningGuidance {
	return &models.ReasoningGuidance{
		ReasoningExplanation: "explained",
		ValidationLogic:      "validated",
		ChatResponse:         "here you go",
		ConfidenceScore:      0.9,
	}
}

func TestAssembleGeneralChatPlaceholders(t *testing.T) {
	stage := NewAssembleStage(zap.NewNop())

	s := NewState(passportInput())
	s.Intent = IntentGeneralChat
	s.Reasoning = testReasoning()

	out := stage.Run(context.Background(), s)

	require.Nil(t, out.Err)
	require.NotNil(t, out.Final)

	assert.Equal(t, "General Inquiry", out.Final.ServiceGuidance.ServiceSummary.ServiceName)
	assert.Equal(t, "GavaNav", out.Final.ServiceGuidance.ServiceSummary.ResponsibleAuthority)
	assert.Equal(t, "Huduma Centre GPO", out.Final.LocationResolution.ServiceLocation.PrimaryOffice.OfficeName)
	assert.Equal(t, float64(0), out.Final.CostAndTime.CostInformation.OfficialFeeKES)
	assert.Equal(t, models.Eligible, out.Final.RequirementsAndEligibility.Eligibility.Status)
	assert.NotNil(t, out.Final.RequirementsAndEligibility.RequiredDocuments)
	assert.Equal(t, "here you go", out.Final.ChatResponse)
	assert.Equal(t, 0.9, out.Final.ConfidenceScore)
}

func TestAssembleDegradedQueryUsesRequestedName(t *testing.T) {
	stage := NewAssembleStage(zap.NewNop())

	input := passportInput()
	input.ServiceRequest.ServiceName = "Goat Herding Permit"
	input.UserQuery = "how do I register my goats?"

	s := NewState(input)
	s.Intent = IntentServiceRequest
	s.Reasoning = testReasoning()
	s.Location = placeholderLocation()
	s.Eligibility = &models.Eligibility{Status: models.Eligible, Reasons: []string{}, NextStepsIfIneligible: []string{}}

	out := stage.Run(context.Background(), s)

	require.Nil(t, out.Err)
	require.NotNil(t, out.Final)
	assert.Equal(t, "Goat Herding Permit", out.Final.ServiceGuidance.ServiceSummary.ServiceName)
	assert.Equal(t, "Unknown", out.Final.ServiceGuidance.ServiceSummary.ResponsibleAuthority)
}

func TestAssembleReasoningOverridesCannedGuidance(t *testing.T) {
	stage := NewAssembleStage(zap.NewNop())

	reasoning := testReasoning()
	reasoning.Tips = []string{"bring a pen"}
	reasoning.CommonMistakes = []string{"losing the receipt"}

	s := NewState(passportInput())
	s.Intent = IntentGeneralChat
	s.Reasoning = reasoning

	out := stage.Run(context.Background(), s)

	require.NotNil(t, out.Final)
	guidance := out.Final.AIGuidance.AIGuidance
	assert.Equal(t, []string{"bring a pen"}, guidance.TipsForFasterProcessing)
	assert.Equal(t, []string{"losing the receipt"}, guidance.CommonMistakes)
	assert.Equal(t, "explained", guidance.ReasoningExplanation)
}

func TestAssembleIneligibleGetsSingleRemediationStep(t *testing.T) {
	stage := NewAssembleStage(zap.NewNop())

	s := NewState(passportInput())
	s.Intent = IntentServiceRequest
	s.Reasoning = testReasoning()
	s.Location = placeholderLocation()
	s.Input.UserQuery = "anything"
	s.Eligibility = &models.Eligibility{
		Status:                models.NotEligible,
		Reasons:               []string{"Age 16 is below minimum requirement of 18."},
		NextStepsIfIneligible: []string{"Visit a Huduma Centre for special considerations."},
	}

	out := stage.Run(context.Background(), s)

	require.NotNil(t, out.Final)
	steps := out.Final.ApplicationSteps.ApplicationProcess.Steps
	require.Len(t, steps, 1)
	assert.Contains(t, steps[0].Instruction, "Review eligibility criteria")
	assert.Contains(t, out.Final.Explainability.DecisionExplanation.RulesApplied,
		"Age 16 is below minimum requirement of 18.")
}

func TestAssembleConfidenceClamped(t *testing.T) {
	stage := NewAssembleStage(zap.NewNop())

	reasoning := testReasoning()
	reasoning.ConfidenceScore = 3.7

	s := NewState(passportInput())
	s.Intent = IntentGeneralChat
	s.Reasoning = reasoning

	out := stage.Run(context.Background(), s)

	require.NotNil(t, out.Final)
	assert.Equal(t, float64(1), out.Final.ConfidenceScore)
}

func TestAssembleFailsOnInconsistentState(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*State)
		message string
	}{
		{
			name:    "intent never classified",
			mutate:  func(s *State) { s.Intent = IntentUnknown },
			message: "intent never classified",
		},
		{
			name:    "reasoning missing",
			mutate:  func(s *State) { s.Reasoning = nil },
			message: "reasoning result missing",
		},
		{
			name: "resolution chain incomplete",
			mutate: func(s *State) {
				s.Intent = IntentServiceRequest
				s.Eligibility = nil
			},
			message: "resolution chain incomplete",
		},
	}

	stage := NewAssembleStage(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(passportInput())
			s.Intent = IntentGeneralChat
			s.Reasoning = testReasoning()
			s.Eligibility = &models.Eligibility{Status: models.Eligible, Reasons: []string{}, NextStepsIfIneligible: []string{}}
			s.Location = placeholderLocation()
			tt.mutate(&s)

			out := stage.Run(context.Background(), s)

			require.NotNil(t, out.Err)
			assert.Equal(t, ErrAssembly, out.Err.Kind)
			assert.Contains(t, out.Err.Message, tt.message)
			assert.Nil(t, out.Final)
		})
	}
}
