package models

import "time"

// ApplicantStatus tracks an applicant through the recruitment pipeline.
type ApplicantStatus string

const (
	ApplicantNew         ApplicantStatus = "new"
	ApplicantReady       ApplicantStatus = "ready"
	ApplicantShortlisted ApplicantStatus = "shortlisted"
	ApplicantSelected    ApplicantStatus = "selected"
	ApplicantDeployed    ApplicantStatus = "deployed"
)

// JobRequestStatus marks whether an employer's request still accepts candidates.
type JobRequestStatus string

const (
	JobRequestOpen   JobRequestStatus = "open"
	JobRequestClosed JobRequestStatus = "closed"
)

// ProposalStatus is the lifecycle state of an auto-application.
// pending is the only non-terminal state.
type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "pending"
	ProposalSubmitted ProposalStatus = "submitted"
	ProposalDeclined  ProposalStatus = "declined"
)

// Employer represents a hiring company placing job requests
type Employer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

// Applicant represents a registered job seeker
type Applicant struct {
	ID                int64           `json:"id"`
	FullName          string          `json:"full_name"`
	Category          string          `json:"category"` // job category label, e.g. "Welder"
	Nationality       string          `json:"nationality"`
	YearsExperience   int             `json:"years_experience"`
	Gender            string          `json:"gender"` // empty when unspecified
	DateOfBirth       *time.Time      `json:"date_of_birth"`
	PassportNumber    string          `json:"passport_number"`
	TrainingCompleted bool            `json:"training_completed"`
	MedicalClearance  bool            `json:"medical_clearance"`
	Status            ApplicantStatus `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// JobRequest represents an employer's request for workers.
// Matching only reads it; it is never mutated by the engine.
type JobRequest struct {
	ID                 int64            `json:"id"`
	EmployerID         int64            `json:"employer_id"`
	Title              string           `json:"title"`
	Category           string           `json:"category"`
	Country            string           `json:"country"`
	RequiredExperience int              `json:"required_experience"`
	Gender             string           `json:"gender"`  // empty means no gender filter
	AgeMin             int              `json:"age_min"` // 0 means unset
	AgeMax             int              `json:"age_max"` // 0 means unset
	Quantity           int              `json:"quantity"`
	Status             JobRequestStatus `json:"status"`
	CreatedAt          time.Time        `json:"created_at"`
}

// AutoApplication is a system-generated proposal linking one applicant to
// one job request. At most one record exists per pair, ever. Created only
// by the matching engine, mutated only by the reconciler, never deleted.
type AutoApplication struct {
	ID           int64          `json:"id"`
	ApplicantID  int64          `json:"applicant_id"`
	JobRequestID int64          `json:"job_request_id"`
	MatchScore   int            `json:"match_score"` // 0-100
	Status       ProposalStatus `json:"status"`
	Notes        string         `json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
	ReviewedAt   *time.Time     `json:"reviewed_at"`
	SubmittedAt  *time.Time     `json:"submitted_at"`
	DeclinedAt   *time.Time     `json:"declined_at"`
}

// Shortlist is a staff-facing review record created when an
// auto-application is submitted. Owned by the staff-review workflow.
type Shortlist struct {
	ID           int64     `json:"id"`
	JobRequestID int64     `json:"job_request_id"`
	ApplicantID  int64     `json:"applicant_id"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}
