package database

import (
	"context"
	"database/sql"

	"github.com/wmuchiri/kaziflow/pkg/models"
)

// CreateShortlistIfAbsent inserts a shortlist entry for the pair unless one
// already exists. Same conflict-ignoring insert as the ledger, so submitting
// a proposal whose pair was already shortlisted by staff is a no-op rather
// than an error.
func (s *Store) CreateShortlistIfAbsent(ctx context.Context, sl *models.Shortlist) (bool, error) {
	if sl.Status == "" {
		sl.Status = "pending"
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO shortlists (job_request_id, applicant_id, status, notes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (job_request_id, applicant_id) DO NOTHING`,
		sl.JobRequestID, sl.ApplicantID, sl.Status, sl.Notes)
	if err != nil {
		return false, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		sl.ID, _ = result.LastInsertId()
	}
	return n > 0, nil
}

// GetShortlist returns the shortlist entry for a pair, or nil when absent
func (s *Store) GetShortlist(ctx context.Context, jobRequestID, applicantID int64) (*models.Shortlist, error) {
	sl := &models.Shortlist{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, job_request_id, applicant_id, status, notes, created_at
		FROM shortlists WHERE job_request_id=? AND applicant_id=?`,
		jobRequestID, applicantID).
		Scan(&sl.ID, &sl.JobRequestID, &sl.ApplicantID, &sl.Status, &sl.Notes, &sl.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sl, nil
}
