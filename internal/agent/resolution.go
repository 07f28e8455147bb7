package agent

import (
	"context"
	"fmt"
	"strings"

	"gavanav/internal/knowledge"
	"gavanav/internal/models"

	"go.uber.org/zap"
)

// feeTierPreference is the fixed order of tier keys tried after the exact
// application-type key. 32_pages first: the passport booklet sizes are the
// catalog's most common tier scheme.
var feeTierPreference = []string{"32_pages", "48_pages", "64_pages", "standard", "first_time"}

// ResolutionStage maps the requested service onto a catalog record and
// derives the service summary, the cost and the processing time from it.
//
// A miss is terminal only for purely structured requests. When a free-text
// query was supplied, the run continues with no record so the reasoning stage
// can still answer generically.
type ResolutionStage struct {
	resolver *knowledge.Resolver
	logger   *zap.Logger
}

func NewResolutionStage(resolver *knowledge.Resolver, logger *zap.Logger) *ResolutionStage {
	return &ResolutionStage{
		resolver: resolver,
		logger:   logger,
	}
}

func (r *ResolutionStage) Name() string { return nodeResolution }

func (r *ResolutionStage) Run(_ context.Context, s State) State {
	if s.Err != nil {
		return s
	}

	req := s.Input.ServiceRequest
	rec := r.resolver.Resolve(req.ServiceCategory, req.ServiceName, s.Input.UserQuery)
	if rec == nil {
		if strings.TrimSpace(s.Input.UserQuery) != "" {
			r.logger.Info("No catalog match for query, continuing degraded",
				zap.String("request_id", s.RequestID.String()),
				zap.String("query", s.Input.UserQuery),
			)
			return s
		}
		return s.failed(ErrServiceNotFound,
			fmt.Sprintf("Service '%s' in category '%s' not found.", req.ServiceName, req.ServiceCategory))
	}

	s.Record = rec

	description := rec.Description
	if req.ServiceCategory == "transport" {
		// Second-source check against the NTSA portal, simulated
		description += " (Verified via NTSA API Simulation)"
	}
	s.ServiceGuidance = &models.ServiceSummary{
		ServiceName:          rec.Name,
		ServiceDescription:   description,
		ResponsibleAuthority: rec.Authority,
	}

	s.Cost = &models.CostInformation{
		OfficialFeeKES:  resolveFee(rec, string(s.Input.UserProfile.ApplicationType)),
		PaymentMethods:  []string{"eCitizen", "Mpesa", "Bank"},
		AdditionalNotes: "Pay via eCitizen (222222)",
	}
	s.ProcessingTime = resolveProcessingTime(rec, s.Input.ServiceRequest.UrgencyLevel)

	return s
}

// resolveFee walks the fallback chain over the record's fee table: exact
// application-type key, then the fixed tier preference order, then the first
// numeric value in document order, then zero. The result is never negative.
func resolveFee(rec *knowledge.ServiceRecord, applicationType string) float64 {
	if amount, ok := rec.FeeFor(applicationType); ok {
		return clampFee(amount)
	}
	for _, tier := range feeTierPreference {
		if tier == applicationType {
			continue
		}
		if amount, ok := rec.FeeFor(tier); ok {
			return clampFee(amount)
		}
	}
	if len(rec.Fees) > 0 {
		return clampFee(rec.Fees[0].Amount)
	}
	return 0
}

func clampFee(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	return amount
}

// resolveProcessingTime takes the standard day count, overridden by the
// urgent count when the request is urgent and the record has one. Same-day
// eligibility means urgent was requested and the result is at most one day.
func resolveProcessingTime(rec *knowledge.ServiceRecord, urgency models.UrgencyLevel) *models.ProcessingTime {
	days := rec.ProcessingTime.StandardDays
	if urgency == models.UrgencyUrgent && rec.ProcessingTime.UrgentDays != nil {
		days = *rec.ProcessingTime.UrgentDays
	}
	return &models.ProcessingTime{
		EstimatedDurationDays: days,
		SameDayAvailable:      urgency == models.UrgencyUrgent && days <= 1,
		DelayFactors:          []string{"Incomplete documents", "System downtime"},
	}
}
