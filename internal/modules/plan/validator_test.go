package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	req, problems := Validate(PlanRequestDTO{
		Objective:    "Power BI",
		Level:        "Junior",
		HoursPerWeek: float64(6),
		Weeks:        float64(8),
	})

	require.Empty(t, problems)
	assert.Equal(t, "Power BI", req.Objective)
	assert.Equal(t, "Junior", req.Level)
	assert.Equal(t, 6.0, req.HoursPerWeek)
	assert.Equal(t, 8, req.Weeks)
}

func TestValidateCoercesStringNumbers(t *testing.T) {
	req, problems := Validate(PlanRequestDTO{
		Objective:    "SQL",
		Level:        "Intermedio",
		HoursPerWeek: "7.5",
		Weeks:        "12",
	})

	require.Empty(t, problems)
	assert.Equal(t, 7.5, req.HoursPerWeek)
	assert.Equal(t, 12, req.Weeks)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	tests := []struct {
		name         string
		dto          PlanRequestDTO
		wantProblems int
	}{
		{
			name:         "everything missing",
			dto:          PlanRequestDTO{},
			wantProblems: 4,
		},
		{
			name: "whitespace objective and level",
			dto: PlanRequestDTO{
				Objective:    "   ",
				Level:        "\t",
				HoursPerWeek: float64(6),
				Weeks:        float64(8),
			},
			wantProblems: 2,
		},
		{
			name: "non-positive hours",
			dto: PlanRequestDTO{
				Objective:    "Excel",
				Level:        "Junior",
				HoursPerWeek: float64(0),
				Weeks:        float64(8),
			},
			wantProblems: 1,
		},
		{
			name: "fractional weeks",
			dto: PlanRequestDTO{
				Objective:    "Excel",
				Level:        "Junior",
				HoursPerWeek: float64(6),
				Weeks:        2.5,
			},
			wantProblems: 1,
		},
		{
			name: "negative weeks and garbage hours",
			dto: PlanRequestDTO{
				Objective:    "Excel",
				Level:        "Junior",
				HoursPerWeek: "many",
				Weeks:        float64(-3),
			},
			wantProblems: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, problems := Validate(tt.dto)
			assert.Len(t, problems, tt.wantProblems)
		})
	}
}

func TestValidateRejectsNonFiniteHours(t *testing.T) {
	_, problems := Validate(PlanRequestDTO{
		Objective:    "Excel",
		Level:        "Junior",
		HoursPerWeek: "NaN",
		Weeks:        float64(8),
	})
	assert.Len(t, problems, 1)
}
