package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/wmuchiri/kaziflow/pkg/models"
)

func seedPair(t *testing.T, s *Store) (*models.Applicant, *models.JobRequest) {
	t.Helper()
	e := seedEmployer(t, s)
	a := seedApplicant(t, s, "Jane Wanjiru", models.ApplicantReady)
	j := seedJobRequest(t, s, e.ID, models.JobRequestOpen)
	return a, j
}

func TestUpsertIfAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a, j := seedPair(t, s)

	rec, created, err := s.UpsertIfAbsent(ctx, a.ID, j.ID, 85)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if !created {
		t.Error("first upsert should report created")
	}
	if rec.Status != models.ProposalPending || rec.MatchScore != 85 {
		t.Errorf("unexpected record: %+v", rec)
	}

	// Second upsert for the same pair is a no-op, even with a new score.
	again, created, err := s.UpsertIfAbsent(ctx, a.ID, j.ID, 99)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if created {
		t.Error("second upsert should not report created")
	}
	if again.ID != rec.ID || again.MatchScore != 85 {
		t.Errorf("second upsert changed the record: %+v", again)
	}
}

func TestUpsertIfAbsentConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a, j := seedPair(t, s)

	const workers = 8
	var wg sync.WaitGroup
	createdCount := make(chan bool, workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := s.UpsertIfAbsent(ctx, a.ID, j.ID, 70)
			if err != nil {
				errs <- err
				return
			}
			createdCount <- created
		}()
	}
	wg.Wait()
	close(createdCount)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent upsert failed: %v", err)
	}

	winners := 0
	for created := range createdCount {
		if created {
			winners++
		}
	}
	if winners != 1 {
		t.Errorf("%d callers observed created=true, expected exactly 1", winners)
	}

	var count int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM auto_applications WHERE applicant_id=? AND job_request_id=?`,
		a.ID, j.ID).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("ledger holds %d records for the pair, expected 1", count)
	}
}

func TestDedupSurvivesTerminalState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a, j := seedPair(t, s)

	rec, _, err := s.UpsertIfAbsent(ctx, a.ID, j.ID, 70)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if _, err := s.MarkDeclined(ctx, rec.ID, "no longer interested", time.Now()); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	// Dedup is permanent: a later matching run must not resurrect the pair.
	again, created, err := s.UpsertIfAbsent(ctx, a.ID, j.ID, 70)
	if err != nil {
		t.Fatalf("upsert after decline failed: %v", err)
	}
	if created {
		t.Error("upsert after decline created a duplicate record")
	}
	if again.Status != models.ProposalDeclined {
		t.Errorf("record status = %s, expected declined", again.Status)
	}
}

func TestListPendingForApplicantOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEmployer(t, s)
	a := seedApplicant(t, s, "Jane Wanjiru", models.ApplicantReady)
	scores := []int{60, 95, 70}
	for _, score := range scores {
		j := seedJobRequest(t, s, e.ID, models.JobRequestOpen)
		if _, _, err := s.UpsertIfAbsent(ctx, a.ID, j.ID, score); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	pending, err := s.ListPendingForApplicant(ctx, a.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending proposals, got %d", len(pending))
	}
	want := []int{95, 70, 60}
	for i, rec := range pending {
		if rec.MatchScore != want[i] {
			t.Errorf("position %d: score %d, expected %d", i, rec.MatchScore, want[i])
		}
	}
}

func TestListPendingExcludesProcessed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := seedEmployer(t, s)
	a := seedApplicant(t, s, "Jane Wanjiru", models.ApplicantReady)
	j1 := seedJobRequest(t, s, e.ID, models.JobRequestOpen)
	j2 := seedJobRequest(t, s, e.ID, models.JobRequestOpen)

	rec1, _, err := s.UpsertIfAbsent(ctx, a.ID, j1.ID, 70)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if _, _, err := s.UpsertIfAbsent(ctx, a.ID, j2.ID, 80); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if _, err := s.MarkSubmitted(ctx, rec1.ID, "ok", time.Now()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	pending, err := s.ListPendingForApplicant(ctx, a.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 1 || pending[0].JobRequestID != j2.ID {
		t.Errorf("pending queue should hold only the unprocessed proposal: %+v", pending)
	}
}

func TestMarkTransitionsGuardTerminalStates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a, j := seedPair(t, s)

	rec, _, err := s.UpsertIfAbsent(ctx, a.ID, j.ID, 70)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	now := time.Now()
	updated, err := s.MarkSubmitted(ctx, rec.ID, "ok", now)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !updated {
		t.Fatal("first submit should update")
	}

	// Any further transition is refused at the store level.
	updated, err = s.MarkSubmitted(ctx, rec.ID, "again", now)
	if err != nil {
		t.Fatalf("second submit errored: %v", err)
	}
	if updated {
		t.Error("second submit should not update")
	}
	updated, err = s.MarkDeclined(ctx, rec.ID, "late decline", now)
	if err != nil {
		t.Fatalf("decline errored: %v", err)
	}
	if updated {
		t.Error("decline after submit should not update")
	}

	got, err := s.GetAutoApplication(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != models.ProposalSubmitted {
		t.Errorf("status = %s, expected submitted", got.Status)
	}
	if got.Notes != "ok" {
		t.Errorf("notes overwritten by refused transition: %q", got.Notes)
	}
	if got.SubmittedAt == nil || got.ReviewedAt == nil {
		t.Error("submitted_at and reviewed_at should be set")
	}
	if got.DeclinedAt != nil {
		t.Error("declined_at should stay unset")
	}
}

func TestCreateShortlistIfAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a, j := seedPair(t, s)

	created, err := s.CreateShortlistIfAbsent(ctx, &models.Shortlist{
		JobRequestID: j.ID,
		ApplicantID:  a.ID,
		Notes:        "first",
	})
	if err != nil {
		t.Fatalf("shortlist create failed: %v", err)
	}
	if !created {
		t.Error("first shortlist insert should report created")
	}

	created, err = s.CreateShortlistIfAbsent(ctx, &models.Shortlist{
		JobRequestID: j.ID,
		ApplicantID:  a.ID,
		Notes:        "second",
	})
	if err != nil {
		t.Fatalf("duplicate shortlist create failed: %v", err)
	}
	if created {
		t.Error("duplicate shortlist insert should be a no-op")
	}

	got, err := s.GetShortlist(ctx, j.ID, a.ID)
	if err != nil {
		t.Fatalf("get shortlist failed: %v", err)
	}
	if got == nil || got.Notes != "first" {
		t.Errorf("shortlist record overwritten: %+v", got)
	}
}
