package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"triage-assistant/internal/assistant"
	"triage-assistant/internal/patient"
	"triage-assistant/internal/report"
	"triage-assistant/internal/triage"
)

const (
	contextEntryLimit   = 10
	contextMessageLimit = 12
	reportEntryLimit    = 50
)

// Handler is the thin request boundary. Input-shape validation lives
// here; the core services below it never fail.
type Handler struct {
	patients    patient.Repository
	reports     report.Repository
	generator   *assistant.Generator
	synthesizer *report.Synthesizer
	notifier    *report.Notifier
}

func NewHandler(patients patient.Repository, reports report.Repository, generator *assistant.Generator, synthesizer *report.Synthesizer, notifier *report.Notifier) *Handler {
	return &Handler{
		patients:    patients,
		reports:     reports,
		generator:   generator,
		synthesizer: synthesizer,
		notifier:    notifier,
	}
}

type triageRequest struct {
	PatientID string `json:"patient_id"`
	Text      string `json:"text"`
	Language  string `json:"language"`
}

type triageResponse struct {
	EntryID string        `json:"entry_id"`
	Result  triage.Result `json:"result"`
}

func (h *Handler) HandleTriage(w http.ResponseWriter, r *http.Request) {
	var req triageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	pid, err := uuid.Parse(req.PatientID)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "Symptom text is required", http.StatusBadRequest)
		return
	}

	result := triage.Classify(req.Text, req.Language)

	entry := patient.SymptomEntry{
		ID:          uuid.New(),
		PatientID:   pid,
		Text:        req.Text,
		Language:    req.Language,
		TriageLevel: result.Level,
		CreatedAt:   time.Now(),
	}
	if err := h.patients.SaveEntry(r.Context(), &entry); err != nil {
		// Classification stays available even when persistence is down.
		slog.Warn("failed to persist symptom entry", "patient_id", pid, "error", err)
	}

	writeJSON(w, triageResponse{EntryID: entry.ID.String(), Result: result})
}

type chatRequest struct {
	PatientID string `json:"patient_id"`
	Message   string `json:"message"`
	Language  string `json:"language"`
}

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	pid, err := uuid.Parse(req.PatientID)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	pctx := h.buildContext(r.Context(), pid, req.Language)
	history, err := h.patients.RecentMessages(r.Context(), pid, contextMessageLimit)
	if err != nil {
		slog.Warn("failed to load conversation history", "patient_id", pid, "error", err)
	}

	reply := h.generator.Generate(r.Context(), req.Message, pctx, history)

	now := time.Now()
	userMsg := patient.ConversationMessage{Role: patient.RolePatient, Text: req.Message, Language: pctx.Language, CreatedAt: now}
	botMsg := patient.ConversationMessage{Role: patient.RoleAssistant, Text: reply, Language: pctx.Language, CreatedAt: now}
	if err := h.patients.SaveMessage(r.Context(), pid, &userMsg); err != nil {
		slog.Warn("failed to persist patient message", "patient_id", pid, "error", err)
	}
	if err := h.patients.SaveMessage(r.Context(), pid, &botMsg); err != nil {
		slog.Warn("failed to persist assistant message", "patient_id", pid, "error", err)
	}

	writeJSON(w, map[string]string{"reply": reply})
}

type upsertPatientRequest struct {
	DisplayName string           `json:"display_name"`
	Language    string           `json:"language"`
	Profile     *patient.Profile `json:"profile,omitempty"`
}

func (h *Handler) HandleUpsertPatient(w http.ResponseWriter, r *http.Request) {
	pid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}
	var req upsertPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	rec := patient.Record{
		ID:          pid,
		DisplayName: req.DisplayName,
		Language:    req.Language,
		Profile:     req.Profile,
	}
	if err := h.patients.UpsertPatient(r.Context(), &rec); err != nil {
		http.Error(w, "Failed to save patient", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rec)
}

func (h *Handler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	pid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}
	entries, err := h.patients.RecentEntries(r.Context(), pid, contextEntryLimit)
	if err != nil {
		http.Error(w, "Failed to load entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []patient.SymptomEntry{}
	}
	writeJSON(w, entries)
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	pid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	rec, err := h.patients.GetPatient(r.Context(), pid)
	if err != nil {
		slog.Warn("failed to load patient record", "patient_id", pid, "error", err)
	}
	entries, err := h.patients.RecentEntries(r.Context(), pid, reportEntryLimit)
	if err != nil {
		http.Error(w, "Failed to load symptom history", http.StatusInternalServerError)
		return
	}

	data := report.PatientData{PatientID: pid, Entries: entries}
	if rec != nil {
		data.DisplayName = rec.DisplayName
		data.Profile = rec.Profile
	}

	rep := h.synthesizer.Synthesize(r.Context(), data)

	if err := h.reports.Save(r.Context(), &rep); err != nil {
		slog.Warn("failed to persist clinical report", "patient_id", pid, "error", err)
	}

	// Push to the clinician channel in the background; delivery problems
	// never block the response.
	if h.notifier != nil {
		go func(rep report.ClinicalReport, name string) {
			if err := h.notifier.Deliver(context.Background(), rep, name); err != nil {
				slog.Warn("failed to deliver report to clinician", "report_id", rep.ID, "error", err)
			}
		}(rep, data.DisplayName)
	}

	writeJSON(w, rep)
}

// buildContext assembles the per-request snapshot for the assistant. Any
// load failure just leaves the corresponding part of the context empty.
func (h *Handler) buildContext(ctx context.Context, pid uuid.UUID, language string) patient.Context {
	pctx := patient.Context{PatientID: pid, Language: language}

	rec, err := h.patients.GetPatient(ctx, pid)
	if err != nil {
		slog.Warn("failed to load patient record", "patient_id", pid, "error", err)
	} else if rec != nil {
		pctx.DisplayName = rec.DisplayName
		pctx.Profile = rec.Profile
		if pctx.Language == "" {
			pctx.Language = rec.Language
		}
	}
	if pctx.Language == "" {
		pctx.Language = "en"
	}

	entries, err := h.patients.RecentEntries(ctx, pid, contextEntryLimit)
	if err != nil {
		slog.Warn("failed to load symptom entries", "patient_id", pid, "error", err)
	} else {
		pctx.Entries = entries
	}
	return pctx
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/triage", h.HandleTriage)
	r.Post("/chat", h.HandleChat)
	r.Put("/patients/{id}", h.HandleUpsertPatient)
	r.Get("/patients/{id}/entries", h.HandleEntries)
	r.Post("/patients/{id}/report", h.HandleReport)
}
