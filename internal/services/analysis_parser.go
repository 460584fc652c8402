package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/vladimiradmaev/vaidya-health/internal/domain"
	apperrors "github.com/vladimiradmaev/vaidya-health/internal/errors"
)

// analysisReply uses pointers so that an absent field can be told apart
// from a zero value.
type analysisReply struct {
	OverallHealth   *string   `json:"overallHealth"`
	KeyFindings     *[]string `json:"keyFindings"`
	Recommendations *[]string `json:"recommendations"`
	RiskFactors     *[]string `json:"riskFactors"`
	HealthScore     *float64  `json:"healthScore"`
	Summary         *string   `json:"summary"`
}

func (r analysisReply) missingField() string {
	switch {
	case r.OverallHealth == nil:
		return "overallHealth"
	case r.KeyFindings == nil:
		return "keyFindings"
	case r.Recommendations == nil:
		return "recommendations"
	case r.RiskFactors == nil:
		return "riskFactors"
	case r.HealthScore == nil:
		return "healthScore"
	case r.Summary == nil:
		return "summary"
	}
	return ""
}

func (r analysisReply) toDomain() *domain.HealthReportAnalysis {
	return &domain.HealthReportAnalysis{
		OverallHealth:   *r.OverallHealth,
		KeyFindings:     *r.KeyFindings,
		Recommendations: *r.Recommendations,
		RiskFactors:     *r.RiskFactors,
		HealthScore:     int(math.Round(*r.HealthScore)),
		Summary:         *r.Summary,
	}
}

// ParseAnalysis extracts the analysis object from a free-form model reply.
// Every balanced {...} span is tried from left to right and the first one
// that decodes with all six fields wins.
func ParseAnalysis(text string) (*domain.HealthReportAnalysis, error) {
	candidates := extractJSONObjects(text)
	if len(candidates) == 0 {
		return nil, apperrors.NewAnalysisParseError("no JSON object found in model reply", nil)
	}

	var lastErr *apperrors.AppError
	for _, candidate := range candidates {
		var reply analysisReply
		if err := json.Unmarshal([]byte(candidate), &reply); err != nil {
			if lastErr == nil {
				lastErr = apperrors.NewAnalysisParseError("model reply is not valid JSON", err)
			}
			continue
		}

		if field := reply.missingField(); field != "" {
			lastErr = apperrors.NewAnalysisParseError(fmt.Sprintf("analysis is missing field %q", field), nil)
			continue
		}

		return reply.toDomain(), nil
	}

	return nil, lastErr
}

// extractJSONObjects returns the top-level balanced {...} spans of s. Braces
// inside JSON strings are ignored.
func extractJSONObjects(s string) []string {
	var objects []string
	for i := 0; i < len(s); {
		start := strings.IndexByte(s[i:], '{')
		if start < 0 {
			break
		}
		start += i

		end := matchingBrace(s, start)
		if end < 0 {
			i = start + 1
			continue
		}

		objects = append(objects, s[start:end+1])
		i = end + 1
	}
	return objects
}

// matchingBrace returns the index of the brace closing the one at start, or
// -1 when the span never balances.
func matchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
