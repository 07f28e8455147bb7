package agent

import (
	"gavanav/internal/knowledge"
	"gavanav/internal/models"

	"github.com/google/uuid"
)

// Intent tags the branch a run takes after classification.
type Intent string

const (
	IntentUnknown        Intent = ""
	IntentServiceRequest Intent = "service_request"
	IntentGeneralChat    Intent = "general_chat"
)

// ErrorKind classifies pipeline failures for the transport layer.
type ErrorKind string

const (
	ErrValidation      ErrorKind = "validation"
	ErrServiceNotFound ErrorKind = "service_not_found"
	ErrAssembly        ErrorKind = "assembly"
)

// Error is the pipeline's terminal failure indicator, carried in the state.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// State is threaded through the stages of one pipeline run. It is passed and
// returned by value: a stage works on its own copy and can never alias a
// previous stage's view. Nothing in it outlives the run.
//
// Once Err is set, every later stage returns the state unchanged; a run ends
// with exactly one of Err or Final populated.
type State struct {
	RequestID uuid.UUID
	Input     models.AgentInput

	Err    *Error
	Intent Intent

	// Record is the resolved catalog record. It stays nil when a free-text
	// query matched nothing: the run then continues degraded instead of
	// failing.
	Record      *knowledge.ServiceRecord
	SearchHints []models.SearchHint

	ServiceGuidance *models.ServiceSummary
	Location        *models.ServiceLocation
	Cost            *models.CostInformation
	ProcessingTime  *models.ProcessingTime
	Documents       []models.RequiredDocument
	Eligibility     *models.Eligibility
	Reasoning       *models.ReasoningGuidance

	Final *models.AgentResponse
}

// NewState starts a run for one validated-or-not input.
func NewState(input models.AgentInput) State {
	return State{
		RequestID: uuid.New(),
		Input:     input,
	}
}

// Terminal reports whether the run has reached one of its two end states.
func (s State) Terminal() bool {
	return s.Err != nil || s.Final != nil
}

// failed returns a copy of the state with the terminal error set.
func (s State) failed(kind ErrorKind, message string) State {
	s.Err = &Error{Kind: kind, Message: message}
	return s
}

// NeedsResolution reports whether the run requires the structured resolution
// chain (live search through requirements) before reasoning.
func NeedsResolution(s State) bool {
	return s.Intent == IntentServiceRequest
}
