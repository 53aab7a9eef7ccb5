package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTotality(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		wantModules int
	}{
		{name: "nil input", input: nil, wantModules: 0},
		{name: "empty object", input: map[string]interface{}{}, wantModules: 0},
		{name: "string input", input: "not a plan", wantModules: 0},
		{name: "array input", input: []interface{}{1, 2, 3}, wantModules: 0},
		{
			name: "weeksPlan shape",
			input: map[string]interface{}{
				"weeksPlan": []interface{}{
					map[string]interface{}{"week": 1.0, "goals": []interface{}{"a", "b"}},
				},
			},
			wantModules: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out CanonicalPlan
			assert.NotPanics(t, func() {
				out = Normalize(tt.input)
			})
			require.NotNil(t, out.Modules)
			assert.Len(t, out.Modules, tt.wantModules)
			assert.NotNil(t, out.Skills)
			assert.NotNil(t, out.Roles)
			assert.NotNil(t, out.Salary)
		})
	}
}

func TestNormalizeWeeksPlanTopics(t *testing.T) {
	out := Normalize(map[string]interface{}{
		"weeksPlan": []interface{}{
			map[string]interface{}{"week": 1.0, "goals": []interface{}{"a", "b"}},
			map[string]interface{}{"week": 2.0, "goals": []interface{}{"c"}},
		},
		"skills": []interface{}{"SQL", "DAX"},
	})

	require.Len(t, out.Modules, 2)
	assert.Equal(t, "Semana 1", out.Modules[0].Title)
	assert.Len(t, out.Modules[0].Topics, 2)
	assert.Equal(t, "a", out.Modules[0].Topics[0].Title)
	assert.Len(t, out.Modules[1].Topics, 1)
	assert.Equal(t, []interface{}{"SQL", "DAX"}, out.Skills)
}

func TestNormalizeDescriptionPriority(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]interface{}
		want  *string
	}{
		{
			name:  "summary wins over description",
			input: map[string]interface{}{"summary": "s", "description": "d"},
			want:  strPtr("s"),
		},
		{
			name:  "description over overview",
			input: map[string]interface{}{"overview": "o", "description": "d"},
			want:  strPtr("d"),
		},
		{
			name:  "intro is last resort",
			input: map[string]interface{}{"intro": "i"},
			want:  strPtr("i"),
		},
		{
			name:  "nothing yields null",
			input: map[string]interface{}{},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(tt.input)
			assert.Equal(t, tt.want, out.Description)
		})
	}
}

func TestNormalizeUnwrapsRawWrapper(t *testing.T) {
	out := Normalize(map[string]interface{}{
		"raw": map[string]interface{}{"title": "Plan interno"},
	})
	require.NotNil(t, out.Title)
	assert.Equal(t, "Plan interno", *out.Title)
}

func TestNormalizeBlockMerge(t *testing.T) {
	out := Normalize(map[string]interface{}{
		"weeksPlan": []interface{}{
			map[string]interface{}{"week": 1.0, "goals": []interface{}{"a"}},
			map[string]interface{}{"week": 2.0, "goals": []interface{}{"b"}},
		},
		"blocks": []interface{}{
			map[string]interface{}{
				"title":   "Semana 1: Fundamentos",
				"project": "Dashboard básico",
				"hours":   4.0,
			},
			map[string]interface{}{
				"title":   "Semana 99: no existe",
				"project": "se descarta en silencio",
			},
		},
	})

	require.Len(t, out.Modules, 2)
	require.Len(t, out.Modules[0].Projects, 1)
	assert.Equal(t, "Dashboard básico", out.Modules[0].Projects[0].Summary)
	require.NotNil(t, out.Modules[0].Projects[0].EstimatedHours)
	assert.Equal(t, 4.0, *out.Modules[0].Projects[0].EstimatedHours)
	assert.Empty(t, out.Modules[1].Projects)
}

func TestNormalizeBlockMergeByExplicitWeek(t *testing.T) {
	out := Normalize(map[string]interface{}{
		"modules": []interface{}{
			map[string]interface{}{"title": "Semana 1"},
			map[string]interface{}{"title": "Semana 2"},
		},
		"blocks": []interface{}{
			map[string]interface{}{"week": 2.0, "title": "bloque", "project": "p"},
		},
	})

	require.Len(t, out.Modules, 2)
	assert.Empty(t, out.Modules[0].Projects)
	require.Len(t, out.Modules[1].Projects, 1)
}

func TestNormalizeIdempotence(t *testing.T) {
	input := map[string]interface{}{
		"title": "Plan de estudio: Power BI",
		"weeksPlan": []interface{}{
			map[string]interface{}{"week": 1.0, "goals": []interface{}{"a", "b"}},
			map[string]interface{}{"week": 2.0, "goals": []interface{}{"c"}},
		},
		"blocks": []interface{}{
			map[string]interface{}{"title": "Semana 1", "project": "p", "hours": 3.0},
		},
		"skills": []interface{}{"SQL"},
	}

	once := Normalize(input)
	twice := Normalize(once)

	assert.Equal(t, once.Title, twice.Title)
	assert.Equal(t, once.Skills, twice.Skills)
	require.Len(t, twice.Modules, len(once.Modules))
	for i := range once.Modules {
		assert.Len(t, twice.Modules[i].Projects, len(once.Modules[i].Projects))
		assert.Len(t, twice.Modules[i].Topics, len(once.Modules[i].Topics))
	}
}

func TestNormalizeFallbackPlans(t *testing.T) {
	// Blocks-shape plans carry no weeksPlan/modules array, so they normalize
	// to zero modules; title and scalar passthrough still hold.
	p := SynthesizePrimary(fallbackReq)
	out := Normalize(p)

	require.NotNil(t, out.Title)
	assert.Contains(t, *out.Title, "Power BI")
	require.NotNil(t, out.DurationWeeks)
	assert.Equal(t, 8.0, *out.DurationWeeks)
	assert.Empty(t, out.Modules)
}

func strPtr(s string) *string { return &s }
