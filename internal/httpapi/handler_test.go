package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"triage-assistant/internal/assistant"
	"triage-assistant/internal/httpapi"
	"triage-assistant/internal/llm"
	"triage-assistant/internal/patient"
	"triage-assistant/internal/report"
)

type memPatientRepo struct {
	records  map[uuid.UUID]*patient.Record
	entries  map[uuid.UUID][]patient.SymptomEntry
	messages map[uuid.UUID][]patient.ConversationMessage
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{
		records:  map[uuid.UUID]*patient.Record{},
		entries:  map[uuid.UUID][]patient.SymptomEntry{},
		messages: map[uuid.UUID][]patient.ConversationMessage{},
	}
}

func (m *memPatientRepo) UpsertPatient(_ context.Context, rec *patient.Record) error {
	m.records[rec.ID] = rec
	return nil
}

func (m *memPatientRepo) GetPatient(_ context.Context, id uuid.UUID) (*patient.Record, error) {
	return m.records[id], nil
}

func (m *memPatientRepo) SaveEntry(_ context.Context, e *patient.SymptomEntry) error {
	// Prepend so the slice stays most-recent-first like the SQL query.
	m.entries[e.PatientID] = append([]patient.SymptomEntry{*e}, m.entries[e.PatientID]...)
	return nil
}

func (m *memPatientRepo) RecentEntries(_ context.Context, patientID uuid.UUID, limit int) ([]patient.SymptomEntry, error) {
	entries := m.entries[patientID]
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *memPatientRepo) SaveMessage(_ context.Context, patientID uuid.UUID, msg *patient.ConversationMessage) error {
	m.messages[patientID] = append(m.messages[patientID], *msg)
	return nil
}

func (m *memPatientRepo) RecentMessages(_ context.Context, patientID uuid.UUID, limit int) ([]patient.ConversationMessage, error) {
	messages := m.messages[patientID]
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

type memReportRepo struct {
	saved []report.ClinicalReport
}

func (m *memReportRepo) Save(_ context.Context, rep *report.ClinicalReport) error {
	m.saved = append(m.saved, *rep)
	return nil
}

func (m *memReportRepo) LatestForPatient(_ context.Context, patientID uuid.UUID) (*report.ClinicalReport, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].PatientID == patientID {
			return &m.saved[i], nil
		}
	}
	return nil, nil
}

type failingClient struct{}

func (failingClient) Complete(context.Context, string, llm.GenerationParams) (string, error) {
	return "", errors.New("remote unavailable")
}

func newTestServer(patients patient.Repository, reports *memReportRepo) *httptest.Server {
	generator := assistant.NewGenerator(failingClient{}, llm.GenerationParams{})
	synthesizer := report.NewSynthesizer(failingClient{}, llm.GenerationParams{})
	h := httpapi.NewHandler(patients, reports, generator, synthesizer, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		httpapi.RegisterRoutes(r, h)
	})
	return httptest.NewServer(r)
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHandleTriage(t *testing.T) {
	repo := newMemPatientRepo()
	srv := newTestServer(repo, &memReportRepo{})
	defer srv.Close()

	pid := uuid.New()
	resp := postJSON(t, srv.URL+"/api/triage", map[string]string{
		"patient_id": pid.String(),
		"text":       "severe chest pain",
		"language":   "en",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		EntryID string `json:"entry_id"`
		Result  struct {
			Level string `json:"level"`
			Color string `json:"color"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Result.Level != "urgent" || out.Result.Color != "red" {
		t.Errorf("unexpected classification: %+v", out.Result)
	}
	if len(repo.entries[pid]) != 1 {
		t.Errorf("entry should be persisted, got %d", len(repo.entries[pid]))
	}
}

func TestHandleTriage_Validation(t *testing.T) {
	srv := newTestServer(newMemPatientRepo(), &memReportRepo{})
	defer srv.Close()

	tests := []struct {
		name string
		body map[string]string
	}{
		{"invalid patient id", map[string]string{"patient_id": "nope", "text": "fever"}},
		{"blank text", map[string]string{"patient_id": uuid.NewString(), "text": "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/triage", tt.body)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestHandleChat_PersistsBothTurns(t *testing.T) {
	repo := newMemPatientRepo()
	srv := newTestServer(repo, &memReportRepo{})
	defer srv.Close()

	pid := uuid.New()
	resp := postJSON(t, srv.URL+"/api/chat", map[string]string{
		"patient_id": pid.String(),
		"message":    "hello there",
		"language":   "en",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["reply"] == "" {
		t.Error("reply should never be empty")
	}
	msgs := repo.messages[pid]
	if len(msgs) != 2 {
		t.Fatalf("expected 2 persisted messages, got %d", len(msgs))
	}
	if msgs[0].Role != patient.RolePatient || msgs[1].Role != patient.RoleAssistant {
		t.Errorf("unexpected roles: %s, %s", msgs[0].Role, msgs[1].Role)
	}
}

func TestHandleReport_FallbackAndPersist(t *testing.T) {
	repo := newMemPatientRepo()
	reports := &memReportRepo{}
	srv := newTestServer(repo, reports)
	defer srv.Close()

	pid := uuid.New()
	for i := 0; i < 2; i++ {
		resp := postJSON(t, srv.URL+"/api/triage", map[string]string{
			"patient_id": pid.String(),
			"text":       fmt.Sprintf("back pain day %d", i+1),
			"language":   "en",
		})
		resp.Body.Close()
	}

	resp := postJSON(t, srv.URL+"/api/patients/"+pid.String()+"/report", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var rep report.ClinicalReport
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(rep.RiskAnalysis, "MODERATE") {
		t.Errorf("two monitor entries should be MODERATE, got %q", rep.RiskAnalysis)
	}
	if len(reports.saved) != 1 {
		t.Errorf("report should be persisted, got %d", len(reports.saved))
	}
}
