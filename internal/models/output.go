package models

// EligibilityStatus is the verdict of the eligibility evaluator.
// ConditionallyEligible is part of the contract's value space but is not
// produced by the current rule set; it is reserved for partial-eligibility
// rules.
type EligibilityStatus string

const (
	Eligible              EligibilityStatus = "eligible"
	ConditionallyEligible EligibilityStatus = "conditionally_eligible"
	NotEligible           EligibilityStatus = "not_eligible"
)

type ServiceSummary struct {
	ServiceName          string `json:"service_name"`
	ServiceDescription   string `json:"service_description"`
	ResponsibleAuthority string `json:"responsible_authority"`
}

type Office struct {
	OfficeName    string `json:"office_name"`
	County        string `json:"county"`
	Address       string `json:"address"`
	WalkInAllowed bool   `json:"walk_in_allowed"`
}

type ServiceLocation struct {
	PrimaryOffice      Office   `json:"primary_office"`
	AlternativeOffices []Office `json:"alternative_offices"`
}

type CostInformation struct {
	OfficialFeeKES  float64  `json:"official_fee_kes"`
	PaymentMethods  []string `json:"payment_methods"`
	AdditionalNotes string   `json:"additional_notes"`
}

type ProcessingTime struct {
	EstimatedDurationDays int      `json:"estimated_duration_days"`
	SameDayAvailable      bool     `json:"same_day_available"`
	DelayFactors          []string `json:"delay_factors"`
}

type RequiredDocument struct {
	DocumentName string `json:"document_name"`
	Mandatory    bool   `json:"mandatory"`
	Notes        string `json:"notes"`
}

type Eligibility struct {
	Status                EligibilityStatus `json:"status"`
	Reasons               []string          `json:"reasons"`
	NextStepsIfIneligible []string          `json:"next_steps_if_ineligible"`
}

type ApplicationStep struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
}

type ApplicationProcess struct {
	Steps []ApplicationStep `json:"steps"`
}

type AIGuidance struct {
	SummaryExplanation      string   `json:"summary_explanation"`
	CommonMistakes          []string `json:"common_mistakes"`
	TipsForFasterProcessing []string `json:"tips_for_faster_processing"`
	ReasoningExplanation    string   `json:"reasoning_explanation,omitempty"`
}

type DecisionExplanation struct {
	RuleSources     []string `json:"rule_sources"`
	RulesApplied    []string `json:"rules_applied"`
	Assumptions     []string `json:"assumptions"`
	Limitations     []string `json:"limitations"`
	ValidationLogic string   `json:"validation_logic,omitempty"`
}

// The response envelope nests each section under a fixed single key, matching
// the public output contract.

type ServiceGuidance struct {
	ServiceSummary ServiceSummary `json:"service_summary"`
}

type LocationResolution struct {
	ServiceLocation ServiceLocation `json:"service_location"`
}

type CostAndTime struct {
	CostInformation CostInformation `json:"cost_information"`
	ProcessingTime  ProcessingTime  `json:"processing_time"`
}

type RequirementsAndEligibility struct {
	RequiredDocuments []RequiredDocument `json:"required_documents"`
	Eligibility       Eligibility        `json:"eligibility"`
}

type ApplicationSteps struct {
	ApplicationProcess ApplicationProcess `json:"application_process"`
}

type GuidanceSection struct {
	AIGuidance AIGuidance `json:"ai_guidance"`
}

type Explainability struct {
	DecisionExplanation DecisionExplanation `json:"decision_explanation"`
}

// AgentResponse is the fully shaped output record. Every field is populated
// on every successful run; sections whose stage did not run carry explicit
// placeholder values.
type AgentResponse struct {
	ServiceGuidance            ServiceGuidance            `json:"service_guidance"`
	LocationResolution         LocationResolution         `json:"location_resolution"`
	CostAndTime                CostAndTime                `json:"cost_and_time"`
	RequirementsAndEligibility RequirementsAndEligibility `json:"requirements_and_eligibility"`
	ApplicationSteps           ApplicationSteps           `json:"application_steps"`
	AIGuidance                 GuidanceSection            `json:"ai_guidance"`
	Explainability             Explainability             `json:"explainability"`
	FollowUpPrompt             string                     `json:"follow_up_prompt"`
	ChatResponse               string                     `json:"chat_response,omitempty"`
	ConfidenceScore            float64                    `json:"confidence_score"`
}
