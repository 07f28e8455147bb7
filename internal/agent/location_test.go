package agent

import (
	"context"
	"testing"

	"gavanav/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLocationStage(t *testing.T) *LocationStage {
	t.Helper()
	return NewLocationStage(testCatalog(t), zap.NewNop())
}

func TestLocationExactCountyMatch(t *testing.T) {
	stage := testLocationStage(t)

	s := stage.Run(context.Background(), NewState(passportInput()))

	require.NotNil(t, s.Location)
	assert.Equal(t, "Huduma Centre GPO", s.Location.PrimaryOffice.OfficeName)
	assert.Equal(t, "Nairobi", s.Location.PrimaryOffice.County)
	require.Len(t, s.Location.AlternativeOffices, 1)
	assert.Equal(t, "Huduma Centre City Square", s.Location.AlternativeOffices[0].OfficeName)
}

func TestLocationSubstringCountyMatch(t *testing.T) {
	stage := testLocationStage(t)

	input := passportInput()
	input.UserProfile.County = "mombasa county"

	s := stage.Run(context.Background(), NewState(input))

	require.NotNil(t, s.Location)
	assert.Equal(t, "Huduma Centre Mombasa", s.Location.PrimaryOffice.OfficeName)
	assert.Equal(t, "Mombasa", s.Location.PrimaryOffice.County)
}

func TestLocationUnknownCountyFallsBackToDefaultCity(t *testing.T) {
	stage := testLocationStage(t)

	input := passportInput()
	input.UserProfile.County = "Turkana"

	s := stage.Run(context.Background(), NewState(input))

	require.NotNil(t, s.Location)
	assert.Equal(t, "Nairobi", s.Location.PrimaryOffice.County)
	assert.Equal(t, "Huduma Centre GPO", s.Location.PrimaryOffice.OfficeName)
}

func TestLocationSynthesizesPlaceholderWhenCityHasNoOffices(t *testing.T) {
	stage := testLocationStage(t)

	input := passportInput()
	input.UserProfile.County = "Lamu"

	s := stage.Run(context.Background(), NewState(input))

	require.NotNil(t, s.Location)
	assert.Equal(t, "Huduma Centre GPO", s.Location.PrimaryOffice.OfficeName)
	assert.Equal(t, "Lamu", s.Location.PrimaryOffice.County)
	assert.Equal(t, "Teleposta Towers", s.Location.PrimaryOffice.Address)
	assert.True(t, s.Location.PrimaryOffice.WalkInAllowed)
	assert.Empty(t, s.Location.AlternativeOffices)
}

func TestLocationHintOverridesPrimaryOffice(t *testing.T) {
	stage := testLocationStage(t)

	s := NewState(passportInput())
	s.SearchHints = []models.SearchHint{
		{
			Title:   "Live Status",
			Content: "The main branch is currently operating at Prosperity House, 1st Floor. Queues are short.",
			Source:  "test",
		},
	}

	out := stage.Run(context.Background(), s)

	require.NotNil(t, out.Location)
	assert.Equal(t, "Prosperity House, 1st Floor", out.Location.PrimaryOffice.OfficeName)
	assert.Equal(t, "Prosperity House, 1st Floor", out.Location.PrimaryOffice.Address)
	// County still comes from the catalog lookup.
	assert.Equal(t, "Nairobi", out.Location.PrimaryOffice.County)
}

func TestExtractBuilding(t *testing.T) {
	tests := []struct {
		name  string
		hints []models.SearchHint
		want  string
	}{
		{
			name:  "no hints",
			hints: nil,
			want:  "",
		},
		{
			name: "no marker",
			hints: []models.SearchHint{
				{Content: "A new circular was issued."},
			},
			want: "",
		},
		{
			name: "marker without terminating period",
			hints: []models.SearchHint{
				{Content: "currently operating at Teleposta Towers"},
			},
			want: "",
		},
		{
			name: "first matching hint wins",
			hints: []models.SearchHint{
				{Content: "no building here"},
				{Content: "operating at Posta House. More text."},
				{Content: "operating at Somewhere Else."},
			},
			want: "Posta House",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractBuilding(tt.hints))
		})
	}
}
