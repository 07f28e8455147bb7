package agent

import (
	"context"
	"testing"

	"gavanav/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequirementsExactApplicationType(t *testing.T) {
	stage := NewRequirementsStage(zap.NewNop())
	catalog := testCatalog(t)
	cat, _ := catalog.Category("identity")
	rec, _ := cat.Record("kenyan_passport")

	s := NewState(passportInput())
	s.Record = rec

	out := stage.Run(context.Background(), s)

	require.Len(t, out.Documents, 2)
	assert.Equal(t, models.RequiredDocument{
		DocumentName: "National ID card",
		Mandatory:    true,
		Notes:        "",
	}, out.Documents[0])
}

func TestRequirementsFallsBackToFirstList(t *testing.T) {
	stage := NewRequirementsStage(zap.NewNop())
	catalog := testCatalog(t)
	cat, _ := catalog.Category("identity")
	rec, _ := cat.Record("national_id")

	// national_id only lists first_time requirements.
	input := passportInput()
	input.UserProfile.ApplicationType = models.ApplicationReplacement

	s := NewState(input)
	s.Record = rec

	out := stage.Run(context.Background(), s)

	require.Len(t, out.Documents, 1)
	assert.Equal(t, "Birth certificate", out.Documents[0].DocumentName)
}

func TestRequirementsEmptyWithoutRecord(t *testing.T) {
	stage := NewRequirementsStage(zap.NewNop())

	out := stage.Run(context.Background(), NewState(passportInput()))

	assert.NotNil(t, out.Documents)
	assert.Empty(t, out.Documents)
}
