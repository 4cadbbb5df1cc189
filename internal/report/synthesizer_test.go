package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"triage-assistant/internal/llm"
	"triage-assistant/internal/patient"
	"triage-assistant/internal/triage"
)

type fakeClient struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeClient) Complete(_ context.Context, prompt string, _ llm.GenerationParams) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func entryAt(text string, level triage.Level, daysAgo int) patient.SymptomEntry {
	return patient.SymptomEntry{
		ID:          uuid.New(),
		Text:        text,
		TriageLevel: level,
		CreatedAt:   time.Now().AddDate(0, 0, -daysAgo),
	}
}

func TestSynthesize_RemoteSuccess(t *testing.T) {
	client := &fakeClient{reply: `SUMMARY
Recovering well.
TIMELINE ANALYSIS
Two weeks of mild symptoms.
RISK ASSESSMENT
Low risk overall.
RECOMMENDATIONS
Routine follow-up.`}
	s := NewSynthesizer(client, llm.GenerationParams{})

	pid := uuid.New()
	rep := s.Synthesize(context.Background(), PatientData{
		PatientID: pid,
		Entries:   []patient.SymptomEntry{entryAt("mild cough", triage.LevelMonitor, 2)},
	})

	if rep.PatientID != pid {
		t.Errorf("patient ID = %s, want %s", rep.PatientID, pid)
	}
	if rep.Summary != "Recovering well." {
		t.Errorf("summary = %q", rep.Summary)
	}
	if rep.Timeline != "Two weeks of mild symptoms." {
		t.Errorf("timeline = %q", rep.Timeline)
	}
	if rep.RiskAnalysis != "Low risk overall." {
		t.Errorf("risk = %q", rep.RiskAnalysis)
	}
	if rep.Recommendations != "Routine follow-up." {
		t.Errorf("recommendations = %q", rep.Recommendations)
	}
	if !strings.Contains(client.lastPrompt, "mild cough") {
		t.Error("report prompt should enumerate the symptom history")
	}
}

func TestSynthesize_RemoteMissingSection(t *testing.T) {
	client := &fakeClient{reply: "SUMMARY\nAll good.\nRECOMMENDATIONS\nRest."}
	s := NewSynthesizer(client, llm.GenerationParams{})

	rep := s.Synthesize(context.Background(), PatientData{PatientID: uuid.New()})

	if rep.Summary != "All good." {
		t.Errorf("summary = %q", rep.Summary)
	}
	if rep.Timeline != sectionDefaults[headerTimeline] {
		t.Errorf("timeline should use the default text, got %q", rep.Timeline)
	}
	if rep.RiskAnalysis != sectionDefaults[headerRisk] {
		t.Errorf("risk should use the default text, got %q", rep.RiskAnalysis)
	}
	if rep.Recommendations != "Rest." {
		t.Errorf("recommendations = %q", rep.Recommendations)
	}
}

func TestSynthesize_FallbackEmptyEntries(t *testing.T) {
	s := NewSynthesizer(&fakeClient{err: errors.New("unreachable")}, llm.GenerationParams{})

	rep := s.Synthesize(context.Background(), PatientData{PatientID: uuid.New()})

	if !strings.HasPrefix(rep.RiskAnalysis, "LOW") {
		t.Errorf("empty history should be LOW risk, got %q", rep.RiskAnalysis)
	}
	if !strings.Contains(rep.Timeline, "No symptoms were reported") {
		t.Errorf("timeline should state no symptoms were reported, got %q", rep.Timeline)
	}
}

func TestSynthesize_FallbackRiskTiers(t *testing.T) {
	tests := []struct {
		name       string
		entries    []patient.SymptomEntry
		wantPrefix string
		wantPhrase string
	}{
		{
			name: "urgent always HIGH",
			entries: []patient.SymptomEntry{
				entryAt("back pain", triage.LevelMonitor, 3),
				entryAt("chest pain", triage.LevelUrgent, 2),
				entryAt("slept fine", triage.LevelSafe, 1),
			},
			wantPrefix: "HIGH",
		},
		{
			name: "multiple monitor",
			entries: []patient.SymptomEntry{
				entryAt("back pain", triage.LevelMonitor, 2),
				entryAt("back pain again", triage.LevelMonitor, 1),
			},
			wantPrefix: "MODERATE",
			wantPhrase: "multiple monitor-level symptoms",
		},
		{
			name: "single monitor",
			entries: []patient.SymptomEntry{
				entryAt("headache", triage.LevelMonitor, 1),
			},
			wantPrefix: "MODERATE",
			wantPhrase: "single monitor-level symptom",
		},
		{
			name: "safe only",
			entries: []patient.SymptomEntry{
				entryAt("feeling good", triage.LevelSafe, 1),
			},
			wantPrefix: "LOW",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer(&fakeClient{err: errors.New("down")}, llm.GenerationParams{})
			rep := s.Synthesize(context.Background(), PatientData{PatientID: uuid.New(), Entries: tt.entries})

			if !strings.HasPrefix(rep.RiskAnalysis, tt.wantPrefix) {
				t.Errorf("risk = %q, want prefix %q", rep.RiskAnalysis, tt.wantPrefix)
			}
			if tt.wantPhrase != "" && !strings.Contains(rep.RiskAnalysis, tt.wantPhrase) {
				t.Errorf("risk = %q, want phrase %q", rep.RiskAnalysis, tt.wantPhrase)
			}
		})
	}
}

func TestSynthesize_FallbackDeterministic(t *testing.T) {
	entries := []patient.SymptomEntry{
		entryAt("back pain", triage.LevelMonitor, 2),
		entryAt("fever and fatigue", triage.LevelMonitor, 1),
	}
	s := NewSynthesizer(&fakeClient{err: errors.New("down")}, llm.GenerationParams{})

	first := s.Synthesize(context.Background(), PatientData{Entries: entries})
	second := s.Synthesize(context.Background(), PatientData{Entries: entries})

	if first.Summary != second.Summary || first.Timeline != second.Timeline ||
		first.RiskAnalysis != second.RiskAnalysis || first.Recommendations != second.Recommendations {
		t.Error("fallback report should be deterministic for identical input")
	}
}

func TestFallback_CategoriesAndRecommendations(t *testing.T) {
	data := PatientData{Entries: []patient.SymptomEntry{
		entryAt("back pain after sitting", triage.LevelMonitor, 5),
		entryAt("back pain again", triage.LevelMonitor, 4),
		entryAt("strong headache", triage.LevelMonitor, 3),
		entryAt("fever overnight", triage.LevelMonitor, 2),
	}}

	summary, timeline, _, recs := fallbackReport(data)

	if !strings.Contains(summary, "back pain, headache, fever") {
		t.Errorf("summary should list categories by frequency then first-seen: %q", summary)
	}
	if !strings.Contains(recs, "Focus area: back pain.") {
		t.Errorf("recommendations should note the top category: %q", recs)
	}
	if lines := strings.Split(timeline, "\n"); len(lines) != 4 {
		t.Errorf("timeline should list all 4 entries, got %d lines", len(lines))
	}
}

func TestFallback_TimelineLimit(t *testing.T) {
	var entries []patient.SymptomEntry
	for i := 0; i < 8; i++ {
		entries = append(entries, entryAt("fatigue", triage.LevelSafe, i))
	}

	_, timeline, _, _ := fallbackReport(PatientData{Entries: entries})

	if lines := strings.Split(timeline, "\n"); len(lines) != 5 {
		t.Errorf("timeline should cap at 5 entries, got %d lines", len(lines))
	}
}
