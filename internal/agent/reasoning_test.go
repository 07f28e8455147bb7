package agent

import (
	"context"
	"errors"
	"testing"

	"gavanav/internal/models"
	"gavanav/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReasoner struct {
	lastContext service.ReasoningContext
	guidance    *models.ReasoningGuidance
	err         error
}

func (r *stubReasoner) Explain(_ context.Context, rc service.ReasoningContext) (*models.ReasoningGuidance, error) {
	r.lastContext = rc
	return r.guidance, r.err
}

func TestReasoningPassesRunContext(t *testing.T) {
	reasoner := &stubReasoner{guidance: testReasoning()}
	stage := NewReasoningStage(reasoner, zap.NewNop())

	s := NewState(passportInput())
	s.Eligibility = &models.Eligibility{Status: models.Eligible}
	s.Documents = []models.RequiredDocument{{DocumentName: "National ID card"}}

	out := stage.Run(context.Background(), s)

	require.NotNil(t, out.Reasoning)
	assert.Equal(t, "explained", out.Reasoning.ReasoningExplanation)
	assert.False(t, reasoner.lastContext.FoundInKB)
	assert.Equal(t, "Nairobi", reasoner.lastContext.UserProfile.County)
	assert.Len(t, reasoner.lastContext.Requirements, 1)
}

func TestReasoningDegradesOnCollaboratorFailure(t *testing.T) {
	reasoner := &stubReasoner{err: errors.New("upstream timeout")}
	stage := NewReasoningStage(reasoner, zap.NewNop())

	out := stage.Run(context.Background(), NewState(passportInput()))

	require.Nil(t, out.Err)
	require.NotNil(t, out.Reasoning)
	assert.Equal(t, 0.5, out.Reasoning.ConfidenceScore)
	assert.NotEmpty(t, out.Reasoning.ChatResponse)
}

type failingSearcher struct{}

func (failingSearcher) Search(context.Context, service.SearchQuery) ([]models.SearchHint, error) {
	return nil, errors.New("search backend down")
}

func TestLiveSearchFailureIsAbsorbed(t *testing.T) {
	stage := NewLiveSearchStage(failingSearcher{}, zap.NewNop())

	out := stage.Run(context.Background(), NewState(passportInput()))

	assert.Nil(t, out.Err)
	assert.Empty(t, out.SearchHints)
}

func TestLiveSearchFallsBackToQueryText(t *testing.T) {
	var captured service.SearchQuery
	searcher := searcherFunc(func(q service.SearchQuery) ([]models.SearchHint, error) {
		captured = q
		return nil, nil
	})
	stage := NewLiveSearchStage(searcher, zap.NewNop())

	input := passportInput()
	input.ServiceRequest.ServiceName = ""
	input.UserQuery = "where do I renew a passport?"

	stage.Run(context.Background(), NewState(input))

	assert.Equal(t, "where do I renew a passport?", captured.ServiceName)
	assert.Equal(t, "Nairobi", captured.County)
}

type searcherFunc func(service.SearchQuery) ([]models.SearchHint, error)

func (f searcherFunc) Search(_ context.Context, q service.SearchQuery) ([]models.SearchHint, error) {
	return f(q)
}
