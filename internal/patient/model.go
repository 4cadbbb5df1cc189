package patient

import (
	"time"

	"github.com/google/uuid"

	"triage-assistant/internal/triage"
)

type Role string

const (
	RolePatient   Role = "patient"
	RoleAssistant Role = "assistant"
)

// SymptomEntry is a single symptom report. Entries are immutable once
// created; the triage level is assigned at submission time.
type SymptomEntry struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	PatientID   uuid.UUID    `json:"patient_id" db:"patient_id"`
	Text        string       `json:"text" db:"text"`
	Language    string       `json:"language" db:"language"`
	TriageLevel triage.Level `json:"triage_level" db:"triage_level"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// ConversationMessage is one turn of the patient/assistant chat. It is
// read-only history input for response generation.
type ConversationMessage struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds optional medical background. Every field may be absent.
type Profile struct {
	Age         int      `json:"age,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Conditions  []string `json:"conditions,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	Medications []string `json:"medications,omitempty"`
}

// Context is the per-request snapshot handed to the assistant. Entries are
// ordered most-recent-first. It is never persisted and never mutated by the
// core components.
type Context struct {
	PatientID   uuid.UUID      `json:"patient_id"`
	DisplayName string         `json:"display_name"`
	Language    string         `json:"language"`
	Entries     []SymptomEntry `json:"entries"`
	Profile     *Profile       `json:"profile,omitempty"`
}

// LatestEntry returns the most recent symptom entry, or nil when the
// patient has no history.
func (c Context) LatestEntry() *SymptomEntry {
	if len(c.Entries) == 0 {
		return nil
	}
	return &c.Entries[0]
}
