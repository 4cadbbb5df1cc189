package report

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, rep *ClinicalReport) error
	LatestForPatient(ctx context.Context, patientID uuid.UUID) (*ClinicalReport, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Save(ctx context.Context, rep *ClinicalReport) error {
	query := `
		INSERT INTO clinical_reports (id, patient_id, summary, timeline, risk_analysis, recommendations, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		rep.ID, rep.PatientID, rep.Summary, rep.Timeline, rep.RiskAnalysis, rep.Recommendations, rep.GeneratedAt)
	return err
}

func (r *postgresRepo) LatestForPatient(ctx context.Context, patientID uuid.UUID) (*ClinicalReport, error) {
	query := `
		SELECT id, patient_id, summary, timeline, risk_analysis, recommendations, generated_at
		FROM clinical_reports
		WHERE patient_id = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, patientID)

	var rep ClinicalReport
	err := row.Scan(&rep.ID, &rep.PatientID, &rep.Summary, &rep.Timeline, &rep.RiskAnalysis, &rep.Recommendations, &rep.GeneratedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}
