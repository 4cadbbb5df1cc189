package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"triage-assistant/internal/llm"
	"triage-assistant/internal/patient"
)

// PatientData is the snapshot a report is derived from. Entries are
// ordered most-recent-first, as supplied by the repository.
type PatientData struct {
	PatientID   uuid.UUID              `json:"patient_id"`
	DisplayName string                 `json:"display_name"`
	Profile     *patient.Profile       `json:"profile,omitempty"`
	Entries     []patient.SymptomEntry `json:"entries"`
}

// ClinicalReport is the four-part clinician-facing summary. Generation is
// idempotent for the same snapshot, modulo ID and timestamp.
type ClinicalReport struct {
	ID              uuid.UUID `json:"id" db:"id"`
	PatientID       uuid.UUID `json:"patient_id" db:"patient_id"`
	Summary         string    `json:"summary" db:"summary"`
	Timeline        string    `json:"timeline" db:"timeline"`
	RiskAnalysis    string    `json:"risk_analysis" db:"risk_analysis"`
	Recommendations string    `json:"recommendations" db:"recommendations"`
	GeneratedAt     time.Time `json:"generated_at" db:"generated_at"`
}

// Default section texts for a remote response missing a header.
var sectionDefaults = map[string]string{
	headerSummary:         "Summary unavailable.",
	headerTimeline:        "Timeline analysis pending.",
	headerRisk:            "Risk assessment unavailable.",
	headerRecommendations: "Please consult a healthcare professional for personalised recommendations.",
}

// Synthesizer builds clinical reports, preferring the remote model and
// falling back to deterministic aggregation of the entry list.
type Synthesizer struct {
	client llm.Client
	params llm.GenerationParams
}

func NewSynthesizer(client llm.Client, params llm.GenerationParams) *Synthesizer {
	return &Synthesizer{client: client, params: params}
}

// Synthesize produces a report and never fails. A remote response is split
// on the four fixed section headers; a missing header gets its default
// text. Remote errors and empty output both route to the local fallback.
func (s *Synthesizer) Synthesize(ctx context.Context, data PatientData) ClinicalReport {
	rep := ClinicalReport{
		ID:          uuid.New(),
		PatientID:   data.PatientID,
		GeneratedAt: time.Now(),
	}

	if out := s.remoteReport(ctx, data); out != "" {
		sections := parseSections(out, reportHeaders)
		rep.Summary = sectionOrDefault(sections, headerSummary)
		rep.Timeline = sectionOrDefault(sections, headerTimeline)
		rep.RiskAnalysis = sectionOrDefault(sections, headerRisk)
		rep.Recommendations = sectionOrDefault(sections, headerRecommendations)
		return rep
	}

	rep.Summary, rep.Timeline, rep.RiskAnalysis, rep.Recommendations = fallbackReport(data)
	return rep
}

func (s *Synthesizer) remoteReport(ctx context.Context, data PatientData) string {
	if s.client == nil {
		return ""
	}
	out, err := s.client.Complete(ctx, reportPrompt(data), s.params)
	if err != nil {
		slog.Warn("remote report synthesis failed, using local aggregation", "patient_id", data.PatientID, "error", err)
		return ""
	}
	return strings.TrimSpace(out)
}

func sectionOrDefault(sections map[string]string, header string) string {
	if text, ok := sections[header]; ok && text != "" {
		return text
	}
	return sectionDefaults[header]
}

// reportPrompt enumerates the patient snapshot and instructs the model to
// answer with exactly the four expected section headers.
func reportPrompt(data PatientData) string {
	var b strings.Builder

	b.WriteString("You are a clinical documentation assistant. Write a concise report for a clinician based on the patient data below.\n\n")

	b.WriteString("Demographics:\n")
	p := data.Profile
	if p == nil {
		p = &patient.Profile{}
	}
	if p.Age > 0 {
		fmt.Fprintf(&b, "- Age: %d\n", p.Age)
	}
	if p.Gender != "" {
		fmt.Fprintf(&b, "- Gender: %s\n", p.Gender)
	}
	if p.Age <= 0 && p.Gender == "" {
		b.WriteString("- not provided\n")
	}

	b.WriteString("\nMedical background:\n")
	writeBackgroundLine(&b, "Known conditions", p.Conditions)
	writeBackgroundLine(&b, "Allergies", p.Allergies)
	writeBackgroundLine(&b, "Medications", p.Medications)

	b.WriteString("\nSymptom history (most recent first):\n")
	if len(data.Entries) == 0 {
		b.WriteString("- no entries recorded\n")
	}
	for i, e := range data.Entries {
		fmt.Fprintf(&b, "%d. %s — %s (level: %s)\n", i+1, e.CreatedAt.Format("2006-01-02"), e.Text, e.TriageLevel)
	}

	fmt.Fprintf(&b, "\nStructure your response with exactly these section headers, in this order: %s.\n", strings.Join(reportHeaders, ", "))
	return b.String()
}

func writeBackgroundLine(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "- %s: none reported\n", label)
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(items, ", "))
}
