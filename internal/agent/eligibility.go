package agent

import (
	"context"
	"fmt"

	"gavanav/internal/knowledge"
	"gavanav/internal/models"

	"go.uber.org/zap"
)

// defaultRules apply when the resolved record carries no eligibility override
// (or no record was resolved at all).
var defaultRules = knowledge.EligibilityRules{
	Citizenship: []string{string(models.CitizenshipKenyan)},
	MinAge:      18,
}

// EligibilityStage checks the profile against the service's rules. The two
// checks are independent: both run, and both contribute a reason when both
// fail.
type EligibilityStage struct {
	logger *zap.Logger
}

func NewEligibilityStage(logger *zap.Logger) *EligibilityStage {
	return &EligibilityStage{logger: logger}
}

func (e *EligibilityStage) Name() string { return nodeEligibility }

func (e *EligibilityStage) Run(_ context.Context, s State) State {
	if s.Err != nil {
		return s
	}

	rules := defaultRules
	if s.Record != nil && s.Record.Eligibility != nil {
		rules = *s.Record.Eligibility
	}

	s.Eligibility = Evaluate(s.Input.UserProfile, rules)

	e.logger.Debug("Eligibility evaluated",
		zap.String("request_id", s.RequestID.String()),
		zap.String("status", string(s.Eligibility.Status)),
		zap.Int("reasons", len(s.Eligibility.Reasons)),
	)
	return s
}

// Evaluate applies the citizenship and minimum-age checks to a profile.
// conditionally_eligible is never produced by these rules; it stays reserved
// for future partial-eligibility rule types.
func Evaluate(profile models.UserProfile, rules knowledge.EligibilityRules) *models.Eligibility {
	status := models.Eligible
	reasons := []string{}

	allowed := false
	for _, c := range rules.Citizenship {
		if string(profile.CitizenshipStatus) == c {
			allowed = true
			break
		}
	}
	if !allowed {
		status = models.NotEligible
		reasons = append(reasons, fmt.Sprintf("Citizenship status '%s' not allowed. Must be one of: %v",
			profile.CitizenshipStatus, rules.Citizenship))
	}

	if profile.Age < rules.MinAge {
		status = models.NotEligible
		reasons = append(reasons, fmt.Sprintf("Age %d is below minimum requirement of %d.",
			profile.Age, rules.MinAge))
	}

	nextSteps := []string{}
	if status == models.NotEligible {
		nextSteps = append(nextSteps,
			"Check if you can apply for a different service suited for your status.",
			"Visit a Huduma Centre for special considerations.",
		)
	}

	return &models.Eligibility{
		Status:                status,
		Reasons:               reasons,
		NextStepsIfIneligible: nextSteps,
	}
}
