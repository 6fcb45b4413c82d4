package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/wmuchiri/kaziflow/internal/app"
	"github.com/wmuchiri/kaziflow/pkg/models"
)

// Default notes recorded when the caller supplies none.
const (
	DefaultSubmitNotes    = "Auto-submitted application"
	DefaultDeclineNotes   = "Application declined by applicant"
	shortlistPendingNotes = "Auto-submitted application pending staff review"
)

// Store is the persistence surface the reconciler drives. MarkSubmitted and
// MarkDeclined must only transition pending records, reporting false when
// the record was already terminal.
type Store interface {
	GetAutoApplication(ctx context.Context, id int64) (*models.AutoApplication, error)
	MarkSubmitted(ctx context.Context, id int64, notes string, at time.Time) (bool, error)
	MarkDeclined(ctx context.Context, id int64, notes string, at time.Time) (bool, error)
	CreateShortlistIfAbsent(ctx context.Context, sl *models.Shortlist) (bool, error)
	UpdateApplicantStatus(ctx context.Context, id int64, status models.ApplicantStatus) error
}

// Reconciler transitions pending auto-applications to their terminal
// states: submitted (with a shortlist side effect) or declined.
type Reconciler struct {
	store Store
	now   func() time.Time
}

// New returns a Reconciler over the given store
func New(store Store) *Reconciler {
	return &Reconciler{store: store, now: time.Now}
}

// NewWithClock returns a Reconciler with an injected clock, for tests
func NewWithClock(store Store, now func() time.Time) *Reconciler {
	return &Reconciler{store: store, now: now}
}

// Submit transitions a pending auto-application to submitted and creates
// the staff-review shortlist entry for its pair. Valid only from pending;
// a proposal already processed returns ErrConflict untouched.
func (r *Reconciler) Submit(ctx context.Context, id int64, notes string) (*models.AutoApplication, error) {
	rec, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if notes == "" {
		notes = DefaultSubmitNotes
	}

	updated, err := r.store.MarkSubmitted(ctx, id, notes, r.now())
	if err != nil {
		return nil, fmt.Errorf("%w: marking submitted: %v", app.ErrDependency, err)
	}
	if !updated {
		// Lost a race: someone processed it between the load and the update.
		return nil, fmt.Errorf("%w: auto-application %d already processed", app.ErrConflict, id)
	}

	if _, err := r.store.CreateShortlistIfAbsent(ctx, &models.Shortlist{
		JobRequestID: rec.JobRequestID,
		ApplicantID:  rec.ApplicantID,
		Status:       "pending",
		Notes:        shortlistPendingNotes,
	}); err != nil {
		return nil, fmt.Errorf("%w: creating shortlist: %v", app.ErrDependency, err)
	}

	if err := r.store.UpdateApplicantStatus(ctx, rec.ApplicantID, models.ApplicantShortlisted); err != nil {
		return nil, fmt.Errorf("%w: updating applicant status: %v", app.ErrDependency, err)
	}

	return r.reload(ctx, id)
}

// Decline transitions a pending auto-application to declined. Valid only
// from pending. No side effects beyond the record itself.
func (r *Reconciler) Decline(ctx context.Context, id int64, notes string) (*models.AutoApplication, error) {
	if _, err := r.load(ctx, id); err != nil {
		return nil, err
	}

	if notes == "" {
		notes = DefaultDeclineNotes
	}

	updated, err := r.store.MarkDeclined(ctx, id, notes, r.now())
	if err != nil {
		return nil, fmt.Errorf("%w: marking declined: %v", app.ErrDependency, err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: auto-application %d already processed", app.ErrConflict, id)
	}

	return r.reload(ctx, id)
}

func (r *Reconciler) load(ctx context.Context, id int64) (*models.AutoApplication, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: auto-application id must be positive", app.ErrValidation)
	}

	rec, err := r.store.GetAutoApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching auto-application: %v", app.ErrDependency, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: auto-application %d", app.ErrNotFound, id)
	}
	if rec.Status != models.ProposalPending {
		return nil, fmt.Errorf("%w: auto-application %d already processed", app.ErrConflict, id)
	}
	return rec, nil
}

func (r *Reconciler) reload(ctx context.Context, id int64) (*models.AutoApplication, error) {
	rec, err := r.store.GetAutoApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching auto-application: %v", app.ErrDependency, err)
	}
	return rec, nil
}
