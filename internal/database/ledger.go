package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/wmuchiri/kaziflow/pkg/models"
)

// The auto-application ledger. One record per (applicant, job request)
// pair, ever. Dedup rides on the table's unique index, not on a
// read-then-write check, so concurrent callers cannot race past it.

const autoApplicationColumns = `id, applicant_id, job_request_id, match_score, status,
	notes, created_at, reviewed_at, submitted_at, declined_at`

func scanAutoApplication(row interface{ Scan(...any) error }) (*models.AutoApplication, error) {
	r := &models.AutoApplication{}
	err := row.Scan(&r.ID, &r.ApplicantID, &r.JobRequestID, &r.MatchScore, &r.Status,
		&r.Notes, &r.CreatedAt, &r.ReviewedAt, &r.SubmittedAt, &r.DeclinedAt)
	return r, err
}

// UpsertIfAbsent inserts a pending auto-application for the pair unless one
// already exists. Exactly one of any set of concurrent callers for the same
// pair observes created=true; the rest get the pre-existing record with no
// error. The insert ignores conflicts on the unique index, which is the
// single synchronization point.
func (s *Store) UpsertIfAbsent(ctx context.Context, applicantID, jobRequestID int64, score int) (*models.AutoApplication, bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO auto_applications (applicant_id, job_request_id, match_score, status)
		VALUES (?, ?, ?, 'pending')
		ON CONFLICT (applicant_id, job_request_id) DO NOTHING`,
		applicantID, jobRequestID, score)
	if err != nil {
		return nil, false, err
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	rec, err := scanAutoApplication(s.db.QueryRowContext(ctx, `
		SELECT `+autoApplicationColumns+` FROM auto_applications
		WHERE applicant_id=? AND job_request_id=?`,
		applicantID, jobRequestID))
	if err != nil {
		return nil, false, err
	}

	return rec, inserted > 0, nil
}

func (s *Store) GetAutoApplication(ctx context.Context, id int64) (*models.AutoApplication, error) {
	rec, err := scanAutoApplication(s.db.QueryRowContext(ctx, `
		SELECT `+autoApplicationColumns+` FROM auto_applications WHERE id=?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListPendingForApplicant returns the applicant's pending proposals, best
// match first. Ordering mirrors the matching ranking so an applicant
// reviewing their queue sees best matches first.
func (s *Store) ListPendingForApplicant(ctx context.Context, applicantID int64) ([]*models.AutoApplication, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+autoApplicationColumns+` FROM auto_applications
		WHERE applicant_id=? AND status='pending'
		ORDER BY match_score DESC, created_at DESC`, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.AutoApplication{}
	for rows.Next() {
		rec, err := scanAutoApplication(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) ListByJobRequest(ctx context.Context, jobRequestID int64) ([]*models.AutoApplication, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+autoApplicationColumns+` FROM auto_applications
		WHERE job_request_id=?
		ORDER BY match_score DESC, created_at DESC`, jobRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.AutoApplication{}
	for rows.Next() {
		rec, err := scanAutoApplication(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountByStatus returns proposal counts keyed by status
func (s *Store) CountByStatus(ctx context.Context) (map[models.ProposalStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM auto_applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[models.ProposalStatus]int{}
	for rows.Next() {
		var status models.ProposalStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// MarkSubmitted flips a pending proposal to submitted. The status guard in
// the WHERE clause makes the transition atomic: a proposal already in a
// terminal state is left untouched and the call reports updated=false.
func (s *Store) MarkSubmitted(ctx context.Context, id int64, notes string, at time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE auto_applications
		SET status='submitted', notes=?, reviewed_at=?, submitted_at=?
		WHERE id=? AND status='pending'`,
		notes, at, at, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// MarkDeclined flips a pending proposal to declined under the same guard.
func (s *Store) MarkDeclined(ctx context.Context, id int64, notes string, at time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE auto_applications
		SET status='declined', notes=?, reviewed_at=?, declined_at=?
		WHERE id=? AND status='pending'`,
		notes, at, at, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
