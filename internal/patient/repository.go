package patient

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is the stored patient row. Profile is optional.
type Record struct {
	ID          uuid.UUID `json:"id" db:"id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Language    string    `json:"language" db:"language"`
	Profile     *Profile  `json:"profile,omitempty" db:"profile"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Repository interface {
	UpsertPatient(ctx context.Context, rec *Record) error
	GetPatient(ctx context.Context, id uuid.UUID) (*Record, error)
	SaveEntry(ctx context.Context, e *SymptomEntry) error
	RecentEntries(ctx context.Context, patientID uuid.UUID, limit int) ([]SymptomEntry, error)
	SaveMessage(ctx context.Context, patientID uuid.UUID, m *ConversationMessage) error
	RecentMessages(ctx context.Context, patientID uuid.UUID, limit int) ([]ConversationMessage, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) UpsertPatient(ctx context.Context, rec *Record) error {
	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO patients (id, display_name, language, profile, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			display_name = $2,
			language = $3,
			profile = $4
	`
	_, err = r.db.ExecContext(ctx, query, rec.ID, rec.DisplayName, rec.Language, profileJSON, rec.CreatedAt)
	return err
}

func (r *postgresRepo) GetPatient(ctx context.Context, id uuid.UUID) (*Record, error) {
	query := `SELECT id, display_name, language, profile, created_at FROM patients WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var rec Record
	var profileJSON []byte
	err := row.Scan(&rec.ID, &rec.DisplayName, &rec.Language, &profileJSON, &rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(profileJSON) > 0 && string(profileJSON) != "null" {
		rec.Profile = &Profile{}
		if err := json.Unmarshal(profileJSON, rec.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
	}
	return &rec, nil
}

func (r *postgresRepo) SaveEntry(ctx context.Context, e *SymptomEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO symptom_entries (id, patient_id, text, language, triage_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.PatientID, e.Text, e.Language, e.TriageLevel, e.CreatedAt)
	return err
}

// RecentEntries returns up to limit entries, most recent first.
func (r *postgresRepo) RecentEntries(ctx context.Context, patientID uuid.UUID, limit int) ([]SymptomEntry, error) {
	query := `
		SELECT id, patient_id, text, language, triage_level, created_at
		FROM symptom_entries
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []SymptomEntry
	for rows.Next() {
		var e SymptomEntry
		if err := rows.Scan(&e.ID, &e.PatientID, &e.Text, &e.Language, &e.TriageLevel, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresRepo) SaveMessage(ctx context.Context, patientID uuid.UUID, m *ConversationMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO conversation_messages (patient_id, role, text, language, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, patientID, m.Role, m.Text, m.Language, m.CreatedAt)
	return err
}

// RecentMessages returns the last limit messages in chronological order,
// ready to feed into prompt composition.
func (r *postgresRepo) RecentMessages(ctx context.Context, patientID uuid.UUID, limit int) ([]ConversationMessage, error) {
	query := `
		SELECT role, text, language, created_at FROM (
			SELECT role, text, language, created_at
			FROM conversation_messages
			WHERE patient_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []ConversationMessage
	for rows.Next() {
		var m ConversationMessage
		if err := rows.Scan(&m.Role, &m.Text, &m.Language, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
