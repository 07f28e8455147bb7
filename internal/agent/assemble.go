package agent

import (
	"context"
	"fmt"

	"gavanav/internal/models"

	"go.uber.org/zap"
)

// AssembleStage merges every partial result into the final response record.
// The output is always fully shaped: sections whose stage never ran get
// explicit placeholder values. A missing field that should have been
// produced upstream is a terminal formatting error, not a partial response.
type AssembleStage struct {
	logger *zap.Logger
}

func NewAssembleStage(logger *zap.Logger) *AssembleStage {
	return &AssembleStage{logger: logger}
}

func (a *AssembleStage) Name() string { return nodeAssemble }

func (a *AssembleStage) Run(_ context.Context, s State) State {
	if s.Err != nil {
		return s
	}

	if s.Intent == IntentUnknown {
		return s.failed(ErrAssembly, "response assembly failed: intent never classified")
	}
	if s.Reasoning == nil {
		return s.failed(ErrAssembly, "response assembly failed: reasoning result missing")
	}
	if NeedsResolution(s) {
		if s.Record != nil && (s.ServiceGuidance == nil || s.Cost == nil || s.ProcessingTime == nil) {
			return s.failed(ErrAssembly, "response assembly failed: resolved record without derived fields")
		}
		if s.Eligibility == nil || s.Location == nil {
			return s.failed(ErrAssembly, "response assembly failed: resolution chain incomplete")
		}
	}

	summary := s.ServiceGuidance
	if summary == nil {
		summary = placeholderSummary(s)
	}
	location := s.Location
	if location == nil {
		location = placeholderLocation()
	}
	cost := s.Cost
	if cost == nil {
		cost = &models.CostInformation{
			OfficialFeeKES:  0,
			PaymentMethods:  []string{},
			AdditionalNotes: "No fee applies: no specific service was resolved.",
		}
	}
	processingTime := s.ProcessingTime
	if processingTime == nil {
		processingTime = &models.ProcessingTime{
			EstimatedDurationDays: 0,
			SameDayAvailable:      false,
			DelayFactors:          []string{},
		}
	}
	documents := s.Documents
	if documents == nil {
		documents = []models.RequiredDocument{}
	}
	eligibility := s.Eligibility
	if eligibility == nil {
		eligibility = &models.Eligibility{
			Status:                models.Eligible,
			Reasons:               []string{},
			NextStepsIfIneligible: []string{},
		}
	}

	s.Final = &models.AgentResponse{
		ServiceGuidance:    models.ServiceGuidance{ServiceSummary: *summary},
		LocationResolution: models.LocationResolution{ServiceLocation: *location},
		CostAndTime: models.CostAndTime{
			CostInformation: *cost,
			ProcessingTime:  *processingTime,
		},
		RequirementsAndEligibility: models.RequirementsAndEligibility{
			RequiredDocuments: documents,
			Eligibility:       *eligibility,
		},
		ApplicationSteps: models.ApplicationSteps{
			ApplicationProcess: buildApplicationProcess(eligibility, location),
		},
		AIGuidance: models.GuidanceSection{
			AIGuidance: buildGuidance(summary, s.Reasoning),
		},
		Explainability: models.Explainability{
			DecisionExplanation: buildExplanation(s, eligibility),
		},
		FollowUpPrompt:  "Would you like help locating another service?",
		ChatResponse:    s.Reasoning.ChatResponse,
		ConfidenceScore: clampConfidence(s.Reasoning.ConfidenceScore),
	}

	a.logger.Debug("Response assembled",
		zap.String("request_id", s.RequestID.String()),
		zap.Float64("confidence", s.Final.ConfidenceScore),
	)
	return s
}

func placeholderSummary(s State) *models.ServiceSummary {
	if s.Intent == IntentGeneralChat {
		return &models.ServiceSummary{
			ServiceName:          "General Inquiry",
			ServiceDescription:   "I'm GavaNav. I help you understand Kenyan government services like passports, IDs and permits.",
			ResponsibleAuthority: "GavaNav",
		}
	}
	// Free-text query that matched nothing: degraded but not an error.
	name := s.Input.ServiceRequest.ServiceName
	if name == "" {
		name = "Unknown Service"
	}
	return &models.ServiceSummary{
		ServiceName:          name,
		ServiceDescription:   "No official record matched this request; guidance is general.",
		ResponsibleAuthority: "Unknown",
	}
}

func placeholderLocation() *models.ServiceLocation {
	return &models.ServiceLocation{
		PrimaryOffice: models.Office{
			OfficeName:    "Huduma Centre GPO",
			County:        "Nairobi",
			Address:       "Teleposta Towers",
			WalkInAllowed: true,
		},
		AlternativeOffices: []models.Office{},
	}
}

func buildApplicationProcess(eligibility *models.Eligibility, location *models.ServiceLocation) models.ApplicationProcess {
	if eligibility.Status != models.Eligible {
		return models.ApplicationProcess{
			Steps: []models.ApplicationStep{
				{StepNumber: 1, Instruction: "Review eligibility criteria and address reasons for ineligibility."},
			},
		}
	}
	return models.ApplicationProcess{
		Steps: []models.ApplicationStep{
			{StepNumber: 1, Instruction: "Gather all required documents listed."},
			{StepNumber: 2, Instruction: fmt.Sprintf("Visit %s or apply online if applicable.", location.PrimaryOffice.OfficeName)},
			{StepNumber: 3, Instruction: "Pay the processing fee."},
			{StepNumber: 4, Instruction: "Submit biometrics and application form."},
			{StepNumber: 5, Instruction: "Await notification to collect your document."},
		},
	}
}

func buildGuidance(summary *models.ServiceSummary, reasoning *models.ReasoningGuidance) models.AIGuidance {
	guidance := models.AIGuidance{
		SummaryExplanation: "I have analyzed your profile against official requirements. " + summary.ServiceDescription,
		CommonMistakes: []string{
			"Forgetting photocopies of original documents",
			"Going to the wrong office",
		},
		TipsForFasterProcessing: []string{
			"Go early in the morning",
			"Ensure all fee payments are via Mpesa/Online",
		},
		ReasoningExplanation: reasoning.ReasoningExplanation,
	}
	if len(reasoning.CommonMistakes) > 0 {
		guidance.CommonMistakes = reasoning.CommonMistakes
	}
	if len(reasoning.Tips) > 0 {
		guidance.TipsForFasterProcessing = reasoning.Tips
	}
	return guidance
}

func buildExplanation(s State, eligibility *models.Eligibility) models.DecisionExplanation {
	rulesApplied := []string{
		fmt.Sprintf("Citizenship: %s", s.Input.UserProfile.CitizenshipStatus),
	}
	rulesApplied = append(rulesApplied, eligibility.Reasons...)

	return models.DecisionExplanation{
		RuleSources:     []string{"Knowledge Base (eCitizen Rules)", "Official Gazettes"},
		RulesApplied:    rulesApplied,
		Assumptions:     []string{"User data is accurate", "No legislative changes in last 24h"},
		Limitations:     []string{"Does not account for impromptu system maintenance"},
		ValidationLogic: s.Reasoning.ValidationLogic,
	}
}

func clampConfidence(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
