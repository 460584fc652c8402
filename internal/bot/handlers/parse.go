package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/vladimiradmaev/vaidya-health/internal/services"
)

var (
	errTaskFormat = errors.New("use the format HH:MM Title, for example: 21:00 Take vitamins")
	errLogFormat  = errors.New("use the format /log <type> <value> [notes], for example: /log bp 120/80 after run")
	errUnknownLog = errors.New("unknown metric type. Use bp, sugar, pulse, temp or weight")
)

// parseReportArgs splits "/report Title | content"
func parseReportArgs(args string) (title, content string, ok bool) {
	title, content, found := strings.Cut(args, "|")
	if !found {
		return "", "", false
	}
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	return title, content, title != "" && content != ""
}

// parseTaskInput reads "HH:MM Title [- description]"
func parseTaskInput(text string) (services.NewTask, error) {
	clock, rest, found := strings.Cut(strings.TrimSpace(text), " ")
	if !found || strings.TrimSpace(rest) == "" {
		return services.NewTask{}, errTaskFormat
	}

	title, description, _ := strings.Cut(rest, " - ")
	return services.NewTask{
		Time:        clock,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}, nil
}

// parseLogArgs reads "<type> <value> [notes]"
func parseLogArgs(args string) (services.NewHealthLog, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return services.NewHealthLog{}, errLogFormat
	}

	metricType, ok := services.ParseMetricType(fields[0])
	if !ok {
		return services.NewHealthLog{}, errUnknownLog
	}
	return services.NewHealthLog{
		Type:  metricType,
		Value: fields[1],
		Notes: strings.Join(fields[2:], " "),
	}, nil
}

// parseMetricValue reads "<value> [notes]" once the metric type is known
func parseMetricValue(metricType, text string) services.NewHealthLog {
	value, notes, _ := strings.Cut(strings.TrimSpace(text), " ")
	return services.NewHealthLog{
		Type:  metricType,
		Value: value,
		Notes: strings.TrimSpace(notes),
	}
}

// titleFromFileName turns "blood_test-2026.pdf" into "blood test 2026"
func titleFromFileName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" || base == "." {
		return "Uploaded report"
	}
	return base
}
