package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fallbackReq = PlanRequest{
	Objective:    "Power BI",
	Level:        "Junior",
	HoursPerWeek: 6,
	Weeks:        8,
}

func TestSynthesizePrimaryShape(t *testing.T) {
	p := SynthesizePrimary(fallbackReq)

	assert.Contains(t, p["title"], "Power BI")
	assert.Equal(t, "Power BI", p["goal"])
	assert.Equal(t, "Junior", p["level"])
	assert.Equal(t, 6.0, p["hoursPerWeek"])
	assert.Equal(t, 8.0, p["durationWeeks"])

	blocks, ok := p["blocks"].([]interface{})
	require.True(t, ok)
	assert.Len(t, blocks, 2)

	rubric, ok := p["rubric"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rubric, 2)
}

func TestSynthesizeRecoveryShape(t *testing.T) {
	p := SynthesizeRecovery(fallbackReq)

	assert.Contains(t, p["title"], "Power BI")
	assert.Equal(t, 8.0, p["durationWeeks"])

	blocks, ok := p["blocks"].([]interface{})
	require.True(t, ok)
	assert.Len(t, blocks, 2)
}

// The two call sites intentionally produce different canned content.
func TestFallbackVariantsDiverge(t *testing.T) {
	primary := SynthesizePrimary(fallbackReq)
	recovery := SynthesizeRecovery(fallbackReq)

	assert.NotEqual(t, primary["title"], recovery["title"])
}

func TestFallbackIsDeterministic(t *testing.T) {
	assert.Equal(t, SynthesizePrimary(fallbackReq), SynthesizePrimary(fallbackReq))
	assert.Equal(t, SynthesizeRecovery(fallbackReq), SynthesizeRecovery(fallbackReq))
}
