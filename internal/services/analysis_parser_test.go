package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
)

func TestParseAnalysis(t *testing.T) {
	const fenced = "```json\n" + `{"overallHealth":"Good","keyFindings":["a"],"recommendations":["b"],"riskFactors":[],"healthScore":82,"summary":"Fine."}` + "\n```"

	analysis, err := ParseAnalysis(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Good", analysis.OverallHealth)
	assert.Equal(t, []string{"a"}, analysis.KeyFindings)
	assert.Equal(t, []string{"b"}, analysis.Recommendations)
	assert.Empty(t, analysis.RiskFactors)
	assert.Equal(t, 82, analysis.HealthScore)
	assert.Equal(t, "Fine.", analysis.Summary)
}

func TestParseAnalysisSkipsProseBraces(t *testing.T) {
	reply := `Values in {mg/dL} are shown below.
{"overallHealth":"Poor {see notes}","keyFindings":[],"recommendations":[],"riskFactors":["Smoking"],"healthScore":30,"summary":"Quit smoking."}
Let me know {if} you need more.`

	analysis, err := ParseAnalysis(reply)
	require.NoError(t, err)
	assert.Equal(t, "Poor {see notes}", analysis.OverallHealth)
	assert.Equal(t, []string{"Smoking"}, analysis.RiskFactors)
}

func TestParseAnalysisRoundsScore(t *testing.T) {
	analysis, err := ParseAnalysis(`{"overallHealth":"Good","keyFindings":[],"recommendations":[],"riskFactors":[],"healthScore":72.6,"summary":""}`)
	require.NoError(t, err)
	assert.Equal(t, 73, analysis.HealthScore)
}

func TestParseAnalysisKeepsOutOfRangeScore(t *testing.T) {
	analysis, err := ParseAnalysis(`{"overallHealth":"Good","keyFindings":[],"recommendations":[],"riskFactors":[],"healthScore":140,"summary":""}`)
	require.NoError(t, err)
	assert.Equal(t, 140, analysis.HealthScore)
}

func TestParseAnalysisErrors(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		message string
	}{
		{"no object", "I cannot analyze this report.", "no JSON object"},
		{"invalid json", "{overallHealth: Good}", "not valid JSON"},
		{"missing field", `{"overallHealth":"Good","keyFindings":[],"recommendations":[],"riskFactors":[],"healthScore":80}`, "summary"},
		{"null field", `{"overallHealth":null,"keyFindings":[],"recommendations":[],"riskFactors":[],"healthScore":80,"summary":""}`, "overallHealth"},
		{"score as text", `{"overallHealth":"Good","keyFindings":[],"recommendations":[],"riskFactors":[],"healthScore":"80","summary":""}`, "not valid JSON"},
		{"unbalanced", `{"overallHealth":"Good"`, "no JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := ParseAnalysis(tt.reply)
			assert.Nil(t, analysis)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrAnalysisParse)
			assert.True(t, apperrors.IsAnalysisFailure(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestExtractJSONObjects(t *testing.T) {
	got := extractJSONObjects(`a {x} b {"k":"}\"{"} c {`)
	assert.Equal(t, []string{`{x}`, `{"k":"}\"{"}`}, got)

	assert.Empty(t, extractJSONObjects("no braces here"))
	assert.Equal(t, []string{`{"a":{"b":1}}`}, extractJSONObjects(`{"a":{"b":1}}`))
}
