package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("submitted", "key", "resumeData")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "submitted", rec["msg"])
	assert.Equal(t, "resumeData", rec["key"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug", "text")

	logger.Debug("added entry", "section", "skills")

	assert.Contains(t, buf.String(), "msg=\"added entry\"")
	assert.Contains(t, buf.String(), "section=skills")
}

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	before := testutil.ToFloat64(Submits.WithLabelValues("ok"))
	Submits.WithLabelValues(Result(nil)).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Submits.WithLabelValues("ok")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "resume_builder_submits_total")
	assert.Contains(t, names, "resume_builder_submit_duration_seconds")
	assert.Contains(t, names, "resume_builder_sessions_active")
	assert.Contains(t, names, "resume_builder_rate_limit_rejected_total")
}

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "error", Result(errors.New("x")))
}

func TestPrintFieldCatalog(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFieldCatalog(
		[]SectionFields{{Name: "skills", Fields: []string{"name", "items"}}},
		[]string{"contact.name", "summary"},
	)
	output := buf.String()

	assert.Contains(t, output, "SECTIONS AND FIELDS")
	assert.Contains(t, output, "name, items")
	assert.Contains(t, output, "contact.name")
	assert.Contains(t, output, "summary")
}

func TestPrintDocumentSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := types.NewResumeDocument()
	doc.Contact.Name = "Jane Doe"
	doc.Sections.Experience = []types.ExperienceEntry{
		{Position: "Engineer", Company: "Acme"},
		{},
	}

	p.PrintDocumentSummary("resumeData", &doc)
	output := buf.String()

	assert.Contains(t, output, "SAVED RESUME DOCUMENT")
	assert.Contains(t, output, "resumeData")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Engineer @ Acme")
	assert.Contains(t, output, "(blank entry)")
}

func TestPrintDocumentSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocumentSummary("resumeData", nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("T", strings.Repeat("x", 200))

	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 100))
}
