package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/vaidya-health/internal/domain"
)

func TestParseReportArgs(t *testing.T) {
	title, content, ok := parseReportArgs(" Lipid panel | Cholesterol 220, BP 140/90 ")
	require.True(t, ok)
	assert.Equal(t, "Lipid panel", title)
	assert.Equal(t, "Cholesterol 220, BP 140/90", content)

	_, _, ok = parseReportArgs("Lipid panel")
	assert.False(t, ok)
	_, _, ok = parseReportArgs(" | text")
	assert.False(t, ok)
}

func TestParseTaskInput(t *testing.T) {
	task, err := parseTaskInput("21:00 Take vitamins - with dinner")
	require.NoError(t, err)
	assert.Equal(t, "21:00", task.Time)
	assert.Equal(t, "Take vitamins", task.Title)
	assert.Equal(t, "with dinner", task.Description)

	_, err = parseTaskInput("21:00")
	assert.ErrorIs(t, err, errTaskFormat)
}

func TestParseLogArgs(t *testing.T) {
	entry, err := parseLogArgs("bp 120/80 after run")
	require.NoError(t, err)
	assert.Equal(t, domain.MetricBloodPressure, entry.Type)
	assert.Equal(t, "120/80", entry.Value)
	assert.Equal(t, "after run", entry.Notes)

	_, err = parseLogArgs("bp")
	assert.ErrorIs(t, err, errLogFormat)
	_, err = parseLogArgs("mood great")
	assert.ErrorIs(t, err, errUnknownLog)
}

func TestParseMetricValue(t *testing.T) {
	entry := parseMetricValue(domain.MetricWeight, " 72.5 after breakfast ")
	assert.Equal(t, "72.5", entry.Value)
	assert.Equal(t, "after breakfast", entry.Notes)
}

func TestTitleFromFileName(t *testing.T) {
	assert.Equal(t, "blood test 2026", titleFromFileName("blood_test-2026.pdf"))
	assert.Equal(t, "Uploaded report", titleFromFileName(".pdf"))
	assert.Equal(t, "scan", titleFromFileName("scan"))
}
