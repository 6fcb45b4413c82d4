package matcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/wmuchiri/kaziflow/internal/app"
	"github.com/wmuchiri/kaziflow/pkg/models"
)

// Applicant pools per matching context. Which statuses count as eligible
// is a property of the call path, not of the engine.
var (
	// BulkEligibleStatuses is the pool bulk auto-matching draws from.
	BulkEligibleStatuses = []models.ApplicantStatus{
		models.ApplicantNew,
		models.ApplicantReady,
	}

	// InteractiveEligibleStatuses is the pool interactive matching draws from.
	InteractiveEligibleStatuses = []models.ApplicantStatus{
		models.ApplicantReady,
		models.ApplicantShortlisted,
		models.ApplicantSelected,
	}
)

// CandidateSource supplies the entities eligible for matching.
// Implemented by the database store.
type CandidateSource interface {
	GetApplicant(ctx context.Context, id int64) (*models.Applicant, error)
	GetJobRequest(ctx context.Context, id int64) (*models.JobRequest, error)
	EligibleApplicants(ctx context.Context, statuses []models.ApplicantStatus) ([]*models.Applicant, error)
	EligibleJobRequests(ctx context.Context, statuses []models.JobRequestStatus) ([]*models.JobRequest, error)
}

// Ledger persists auto-application proposals with pair-level dedup.
type Ledger interface {
	UpsertIfAbsent(ctx context.Context, applicantID, jobRequestID int64, score int) (*models.AutoApplication, bool, error)
}

// ApplicantMatch is one ranked applicant for a job request
type ApplicantMatch struct {
	Applicant *models.Applicant
	Score     int
}

// JobMatch is one ranked job request for an applicant
type JobMatch struct {
	JobRequest *models.JobRequest
	Score      int
}

// JobMatchResult reports one job request's matching outcome
type JobMatchResult struct {
	JobRequestID int64
	Candidates   []ApplicantMatch
	Created      int
	Skipped      int // pairs already present in the ledger
}

// JobFailure records one failed iteration of a bulk run
type JobFailure struct {
	JobRequestID int64
	Err          error
}

// BulkResult aggregates a bulk run. Processed counts every job request
// iterated, including failed ones; failures ride alongside rather than
// aborting the batch.
type BulkResult struct {
	Processed int
	Created   int
	Failures  []JobFailure
}

// Engine orchestrates matching: pull eligible entities, score all pairs,
// filter by threshold, rank, and upsert non-duplicate ledger entries.
type Engine struct {
	source           CandidateSource
	ledger           Ledger
	logger           *zap.Logger
	primaryThreshold int
	bulkThreshold    int
	now              func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithThresholds overrides the policies' default score cutoffs.
// Non-positive values keep the defaults.
func WithThresholds(primary, bulk int) Option {
	return func(e *Engine) {
		if primary > 0 {
			e.primaryThreshold = primary
		}
		if bulk > 0 {
			e.bulkThreshold = bulk
		}
	}
}

// NewEngine builds a matching engine over a candidate source and a ledger
func NewEngine(source CandidateSource, ledger Ledger, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		source:           source,
		ledger:           ledger,
		logger:           logger,
		primaryThreshold: DefaultPrimaryThreshold,
		bulkThreshold:    DefaultBulkThreshold,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) threshold(policy Policy) int {
	if policy == PolicyBulk {
		return e.bulkThreshold
	}
	return e.primaryThreshold
}

// MatchForApplicant ranks open job requests for one applicant under the
// given policy. Preview only: nothing is persisted on this path.
func (e *Engine) MatchForApplicant(ctx context.Context, applicantID int64, policy Policy) ([]JobMatch, error) {
	if applicantID <= 0 {
		return nil, fmt.Errorf("%w: applicant id must be positive", app.ErrValidation)
	}

	applicant, err := e.source.GetApplicant(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching applicant: %v", app.ErrDependency, err)
	}
	if applicant == nil {
		return nil, fmt.Errorf("%w: applicant %d", app.ErrNotFound, applicantID)
	}

	jobs, err := e.source.EligibleJobRequests(ctx, []models.JobRequestStatus{models.JobRequestOpen})
	if err != nil {
		return nil, fmt.Errorf("%w: fetching job requests: %v", app.ErrDependency, err)
	}

	threshold := e.threshold(policy)
	matches := make([]JobMatch, 0, len(jobs))
	for _, j := range jobs {
		if !ageEligible(applicant, j, e.now()) {
			continue
		}
		score := policy.Score(applicant, j)
		if score >= threshold {
			matches = append(matches, JobMatch{JobRequest: j, Score: score})
		}
	}

	// Stable sort keeps the pool's most-recent-first order for equal scores.
	sort.SliceStable(matches, func(i, k int) bool {
		return matches[i].Score > matches[k].Score
	})

	return matches, nil
}

// RankForJob ranks eligible applicants for one job request without
// persisting anything. The applicant pool is supplied by the caller.
func (e *Engine) RankForJob(ctx context.Context, jobRequestID int64, policy Policy, pool []models.ApplicantStatus) ([]ApplicantMatch, error) {
	if jobRequestID <= 0 {
		return nil, fmt.Errorf("%w: job request id must be positive", app.ErrValidation)
	}

	job, err := e.source.GetJobRequest(ctx, jobRequestID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching job request: %v", app.ErrDependency, err)
	}
	if job == nil {
		return nil, fmt.Errorf("%w: job request %d", app.ErrNotFound, jobRequestID)
	}

	return e.rankForJob(ctx, job, policy, pool)
}

func (e *Engine) rankForJob(ctx context.Context, job *models.JobRequest, policy Policy, pool []models.ApplicantStatus) ([]ApplicantMatch, error) {
	applicants, err := e.source.EligibleApplicants(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching applicants: %v", app.ErrDependency, err)
	}

	threshold := e.threshold(policy)
	matches := make([]ApplicantMatch, 0, len(applicants))
	for _, a := range applicants {
		if !ageEligible(a, job, e.now()) {
			continue
		}
		score := policy.Score(a, job)
		if score >= threshold {
			matches = append(matches, ApplicantMatch{Applicant: a, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, k int) bool {
		return matches[i].Score > matches[k].Score
	})

	return matches, nil
}

// MatchForJob ranks eligible applicants for one job request and persists an
// auto-application for every surviving pair not already in the ledger.
// Re-running on unchanged data creates nothing new.
func (e *Engine) MatchForJob(ctx context.Context, jobRequestID int64, policy Policy, pool []models.ApplicantStatus) (*JobMatchResult, error) {
	if jobRequestID <= 0 {
		return nil, fmt.Errorf("%w: job request id must be positive", app.ErrValidation)
	}

	job, err := e.source.GetJobRequest(ctx, jobRequestID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching job request: %v", app.ErrDependency, err)
	}
	if job == nil {
		return nil, fmt.Errorf("%w: job request %d", app.ErrNotFound, jobRequestID)
	}

	return e.matchJob(ctx, job, policy, pool)
}

func (e *Engine) matchJob(ctx context.Context, job *models.JobRequest, policy Policy, pool []models.ApplicantStatus) (*JobMatchResult, error) {
	matches, err := e.rankForJob(ctx, job, policy, pool)
	if err != nil {
		return nil, err
	}

	result := &JobMatchResult{JobRequestID: job.ID, Candidates: matches}
	for _, m := range matches {
		_, created, err := e.ledger.UpsertIfAbsent(ctx, m.Applicant.ID, job.ID, m.Score)
		if err != nil {
			return nil, fmt.Errorf("%w: upserting proposal for applicant %d: %v", app.ErrDependency, m.Applicant.ID, err)
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

// ageEligible applies a job request's optional age window. Applicants with
// no recorded date of birth pass; the window only excludes known violations.
func ageEligible(a *models.Applicant, j *models.JobRequest, now time.Time) bool {
	if a.DateOfBirth == nil || (j.AgeMin == 0 && j.AgeMax == 0) {
		return true
	}
	age := yearsBetween(*a.DateOfBirth, now)
	if j.AgeMin > 0 && age < j.AgeMin {
		return false
	}
	if j.AgeMax > 0 && age > j.AgeMax {
		return false
	}
	return true
}

func yearsBetween(born, now time.Time) int {
	years := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		years--
	}
	return years
}

// MatchAll runs bulk matching across every open job request under the bulk
// policy. Failures are isolated per job: one job's scoring or persistence
// error is logged and collected while the remaining jobs proceed. The run
// stops between job iterations when the context is cancelled; work already
// committed for earlier jobs is retained.
func (e *Engine) MatchAll(ctx context.Context) (*BulkResult, error) {
	jobs, err := e.source.EligibleJobRequests(ctx, []models.JobRequestStatus{models.JobRequestOpen})
	if err != nil {
		return nil, fmt.Errorf("%w: fetching open job requests: %v", app.ErrDependency, err)
	}

	result := &BulkResult{}
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Processed++

		jobResult, err := e.matchJob(ctx, job, PolicyBulk, BulkEligibleStatuses)
		if err != nil {
			result.Failures = append(result.Failures, JobFailure{JobRequestID: job.ID, Err: err})
			e.logger.Warn("job request matching failed",
				zap.Int64("job_request_id", job.ID),
				zap.Error(err),
			)
			continue
		}

		result.Created += jobResult.Created
		e.logger.Info("job request matched",
			zap.Int64("job_request_id", job.ID),
			zap.Int("candidates", len(jobResult.Candidates)),
			zap.Int("created", jobResult.Created),
			zap.Int("skipped", jobResult.Skipped),
		)
	}

	e.logger.Info("bulk matching completed",
		zap.Int("processed", result.Processed),
		zap.Int("created", result.Created),
		zap.Int("failed", len(result.Failures)),
	)

	return result, nil
}
