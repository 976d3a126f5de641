package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/studypilot/studypilot-backend/internal/apierr"
)

func TestRecordProgress_MarksOpenSessionCompleted(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService()
	subject := env.mustCreateSubject(t, "Math")
	session := env.mustCreateSession(t, subject.ID, env.today(), 2.0)

	record, err := svc.RecordProgress(context.Background(), env.ownerID, session.ID, 1.5, "worked through exercises")
	if err != nil {
		t.Fatalf("RecordProgress failed: %v", err)
	}
	if record.ActualHours != 1.5 {
		t.Fatalf("actual hours = %v, want 1.5", record.ActualHours)
	}

	stored, err := env.sessionRepo.GetByOwnerAndID(context.Background(), nil, env.ownerID, session.ID)
	if err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if !stored.IsCompleted {
		t.Fatalf("manual progress entry should complete the session")
	}
}

func TestRecordProgress_RejectsNonPositiveHours(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService()
	subject := env.mustCreateSubject(t, "Math")
	session := env.mustCreateSession(t, subject.ID, env.today(), 2.0)

	for _, hours := range []float64{0, -1} {
		_, err := svc.RecordProgress(context.Background(), env.ownerID, session.ID, hours, "")
		if err == nil {
			t.Fatalf("expected error for %v hours", hours)
		}
		if apiErr := apierr.From(err); apiErr == nil || apiErr.Code != apierr.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	}
}

func TestRecordProgress_UnknownSessionRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService()
	subject := env.mustCreateSubject(t, "Math")
	session := env.mustCreateSession(t, subject.ID, env.today(), 2.0)

	// A session owned by someone else must look like a missing session.
	_, err := svc.RecordProgress(context.Background(), uuid.New(), session.ID, 1.0, "")
	if err == nil {
		t.Fatalf("expected not found for foreign session")
	}
	if apiErr := apierr.From(err); apiErr == nil || apiErr.Code != apierr.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestDeleteProgress_RevertsSessionWhenLastRecordRemoved(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService()
	subject := env.mustCreateSubject(t, "Math")
	session := env.mustCreateSession(t, subject.ID, env.today(), 2.0)

	record, err := svc.RecordProgress(context.Background(), env.ownerID, session.ID, 1.0, "")
	if err != nil {
		t.Fatalf("RecordProgress failed: %v", err)
	}
	if err := svc.DeleteProgress(context.Background(), env.ownerID, record.ID); err != nil {
		t.Fatalf("DeleteProgress failed: %v", err)
	}

	stored, err := env.sessionRepo.GetByOwnerAndID(context.Background(), nil, env.ownerID, session.ID)
	if err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if stored.IsCompleted {
		t.Fatalf("session should revert to planned after its only record is deleted")
	}
	if stored.CompletedAt != nil {
		t.Fatalf("completed_at should be cleared")
	}
}

func TestDeleteProgress_KeepsSessionCompletedWhileRecordsRemain(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService()
	subject := env.mustCreateSubject(t, "Math")
	session := env.mustCreateSession(t, subject.ID, env.today(), 2.0)

	first, err := svc.RecordProgress(context.Background(), env.ownerID, session.ID, 1.0, "")
	if err != nil {
		t.Fatalf("first RecordProgress failed: %v", err)
	}
	if _, err := svc.RecordProgress(context.Background(), env.ownerID, session.ID, 0.5, "extra"); err != nil {
		t.Fatalf("second RecordProgress failed: %v", err)
	}
	if err := svc.DeleteProgress(context.Background(), env.ownerID, first.ID); err != nil {
		t.Fatalf("DeleteProgress failed: %v", err)
	}

	stored, err := env.sessionRepo.GetByOwnerAndID(context.Background(), nil, env.ownerID, session.ID)
	if err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if !stored.IsCompleted {
		t.Fatalf("session should stay completed while records remain")
	}
}

func TestTotals_SumsAcrossRecords(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService()
	subject := env.mustCreateSubject(t, "Math")
	a := env.mustCreateSession(t, subject.ID, env.today(), 2.0)
	b := env.mustCreateSession(t, subject.ID, env.today(), 1.0)

	if _, err := svc.RecordProgress(context.Background(), env.ownerID, a.ID, 1.5, ""); err != nil {
		t.Fatalf("RecordProgress failed: %v", err)
	}
	if _, err := svc.RecordProgress(context.Background(), env.ownerID, b.ID, 0.75, ""); err != nil {
		t.Fatalf("RecordProgress failed: %v", err)
	}

	totals, err := svc.Totals(context.Background(), env.ownerID)
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if totals.TotalStudyHours != 2.25 {
		t.Fatalf("total hours = %v, want 2.25", totals.TotalStudyHours)
	}
	if totals.TotalSessions != 2 {
		t.Fatalf("total sessions = %d, want 2", totals.TotalSessions)
	}
}

func TestTotals_EmptyHistory(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService()

	totals, err := svc.Totals(context.Background(), env.ownerID)
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if totals.TotalStudyHours != 0 || totals.TotalSessions != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}
