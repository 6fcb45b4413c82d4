package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/wmuchiri/kaziflow/pkg/models"
)

// Employer operations

func (s *Store) CreateEmployer(ctx context.Context, e *models.Employer) error {
	query := `INSERT INTO employers (name, country, contact) VALUES (?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query, e.Name, e.Country, e.Contact)
	if err != nil {
		return err
	}
	e.ID, _ = result.LastInsertId()
	return nil
}

func (s *Store) GetEmployer(ctx context.Context, id int64) (*models.Employer, error) {
	query := `SELECT id, name, country, contact, created_at FROM employers WHERE id=?`
	e := &models.Employer{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Country, &e.Contact, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// Applicant operations

const applicantColumns = `id, full_name, category, nationality, years_experience, gender,
	date_of_birth, passport_number, training_completed, medical_clearance, status,
	created_at, updated_at`

func scanApplicant(row interface{ Scan(...any) error }) (*models.Applicant, error) {
	a := &models.Applicant{}
	err := row.Scan(&a.ID, &a.FullName, &a.Category, &a.Nationality, &a.YearsExperience,
		&a.Gender, &a.DateOfBirth, &a.PassportNumber, &a.TrainingCompleted,
		&a.MedicalClearance, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (s *Store) CreateApplicant(ctx context.Context, a *models.Applicant) error {
	if a.Status == "" {
		a.Status = models.ApplicantNew
	}
	query := `INSERT INTO applicants (full_name, category, nationality, years_experience,
		gender, date_of_birth, passport_number, training_completed, medical_clearance, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query, a.FullName, a.Category, a.Nationality,
		a.YearsExperience, a.Gender, a.DateOfBirth, a.PassportNumber,
		a.TrainingCompleted, a.MedicalClearance, a.Status)
	if err != nil {
		return err
	}
	a.ID, _ = result.LastInsertId()
	return nil
}

func (s *Store) GetApplicant(ctx context.Context, id int64) (*models.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE id=?`
	a, err := scanApplicant(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// EligibleApplicants returns applicants whose status is in the given set,
// most recent first. The caller decides which statuses count as eligible.
func (s *Store) EligibleApplicants(ctx context.Context, statuses []models.ApplicantStatus) ([]*models.Applicant, error) {
	if len(statuses) == 0 {
		return []*models.Applicant{}, nil
	}

	placeholders := strings.Repeat("?,", len(statuses))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(statuses))
	for i, st := range statuses {
		args[i] = st
	}

	query := fmt.Sprintf(`SELECT `+applicantColumns+` FROM applicants
		WHERE status IN (%s) ORDER BY created_at DESC, id DESC`, placeholders)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applicants := []*models.Applicant{}
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}

func (s *Store) UpdateApplicantStatus(ctx context.Context, id int64, status models.ApplicantStatus) error {
	query := `UPDATE applicants SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`
	_, err := s.db.ExecContext(ctx, query, status, id)
	return err
}

// JobRequest operations

const jobRequestColumns = `id, employer_id, title, category, country, required_experience,
	gender, age_min, age_max, quantity, status, created_at`

func scanJobRequest(row interface{ Scan(...any) error }) (*models.JobRequest, error) {
	j := &models.JobRequest{}
	err := row.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Category, &j.Country,
		&j.RequiredExperience, &j.Gender, &j.AgeMin, &j.AgeMax, &j.Quantity,
		&j.Status, &j.CreatedAt)
	return j, err
}

func (s *Store) CreateJobRequest(ctx context.Context, j *models.JobRequest) error {
	if j.Status == "" {
		j.Status = models.JobRequestOpen
	}
	if j.Quantity == 0 {
		j.Quantity = 1
	}
	query := `INSERT INTO job_requests (employer_id, title, category, country,
		required_experience, gender, age_min, age_max, quantity, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query, j.EmployerID, j.Title, j.Category,
		j.Country, j.RequiredExperience, j.Gender, j.AgeMin, j.AgeMax, j.Quantity, j.Status)
	if err != nil {
		return err
	}
	j.ID, _ = result.LastInsertId()
	return nil
}

func (s *Store) GetJobRequest(ctx context.Context, id int64) (*models.JobRequest, error) {
	query := `SELECT ` + jobRequestColumns + ` FROM job_requests WHERE id=?`
	j, err := scanJobRequest(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

// EligibleJobRequests returns job requests whose status is in the given
// set, most recent first.
func (s *Store) EligibleJobRequests(ctx context.Context, statuses []models.JobRequestStatus) ([]*models.JobRequest, error) {
	if len(statuses) == 0 {
		return []*models.JobRequest{}, nil
	}

	placeholders := strings.Repeat("?,", len(statuses))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(statuses))
	for i, st := range statuses {
		args[i] = st
	}

	query := fmt.Sprintf(`SELECT `+jobRequestColumns+` FROM job_requests
		WHERE status IN (%s) ORDER BY created_at DESC, id DESC`, placeholders)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []*models.JobRequest{}
	for rows.Next() {
		j, err := scanJobRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, j)
	}
	return requests, rows.Err()
}
