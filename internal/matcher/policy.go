package matcher

import "github.com/wmuchiri/kaziflow/pkg/models"

// Policy is a named scoring strategy. The two call paths weight criteria
// differently and are never mixed silently: interactive matching uses
// PolicyPrimary, cross-cutting bulk auto-matching uses PolicyBulk.
// Callers pick the policy; the kernel just applies it.
type Policy string

const (
	PolicyPrimary Policy = "primary"
	PolicyBulk    Policy = "bulk"
)

// Default minimum scores per policy; overridable through configuration.
const (
	DefaultPrimaryThreshold = 50
	DefaultBulkThreshold    = 60
)

// Score rates an applicant against a job request, returning an integer in
// [0, 100]. Deterministic, no I/O, never fails: a missing optional field
// simply contributes zero to its component. Each criterion is an
// independent additive signal so staff can explain any score.
func (p Policy) Score(a *models.Applicant, j *models.JobRequest) int {
	switch p {
	case PolicyBulk:
		return scoreBulk(a, j)
	default:
		return scorePrimary(a, j)
	}
}

// DefaultThreshold returns the policy's built-in score cutoff
func (p Policy) DefaultThreshold() int {
	if p == PolicyBulk {
		return DefaultBulkThreshold
	}
	return DefaultPrimaryThreshold
}

// scorePrimary weights: category 40, experience 30 (15 partial credit when
// one year short), gender preference 10, training 10, medical 10.
func scorePrimary(a *models.Applicant, j *models.JobRequest) int {
	score := 0

	if a.Category == j.Category {
		score += 40
	}

	switch {
	case a.YearsExperience >= j.RequiredExperience:
		score += 30
	case a.YearsExperience >= j.RequiredExperience-1:
		score += 15
	}

	if j.Gender == "" || a.Gender == j.Gender {
		score += 10
	}

	if a.TrainingCompleted {
		score += 10
	}

	if a.MedicalClearance {
		score += 10
	}

	return clampScore(score)
}

// scoreBulk weights: category 25, nationality matches job country 25,
// experience 20 (no partial credit), passport on file 15. Max 85.
func scoreBulk(a *models.Applicant, j *models.JobRequest) int {
	score := 0

	if a.Category == j.Category {
		score += 25
	}

	if a.Nationality != "" && a.Nationality == j.Country {
		score += 25
	}

	if a.YearsExperience >= j.RequiredExperience {
		score += 20
	}

	if a.PassportNumber != "" {
		score += 15
	}

	return clampScore(score)
}

// clampScore bounds a score to [0, 100]. The weights cannot exceed 100 as
// written; the clamp holds the contract if they ever drift.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
