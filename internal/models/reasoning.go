package models

// ReasoningGuidance is what the reasoning collaborator returns for one run.
type ReasoningGuidance struct {
	ReasoningExplanation string   `json:"reasoning_explanation"`
	ValidationLogic      string   `json:"validation_logic"`
	Tips                 []string `json:"tips"`
	CommonMistakes       []string `json:"common_mistakes"`
	ChatResponse         string   `json:"chat_response"`
	ConfidenceScore      float64  `json:"confidence_score"`
}
