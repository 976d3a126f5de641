package planner

import (
	"testing"
	"time"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/types"
)

func TestSchedule_CoversEveryDayInclusive(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	subjects := []*types.Subject{newSubject("Math"), newSubject("Physics")}

	planned, err := Schedule(subjects, nil, 4.0, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := map[string]int{}
	for _, session := range planned {
		days[session.StudyDate.Format("2006-01-02")]++
	}
	if len(days) != 7 {
		t.Fatalf("expected sessions on 7 days, got %d", len(days))
	}
	for day, n := range days {
		if n != 2 {
			t.Fatalf("day %s has %d sessions, want 2", day, n)
		}
	}
}

func TestSchedule_RotatesSubjectsWhenBudgetIsTight(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 4)
	subjects := []*types.Subject{
		newSubject("A"), newSubject("B"), newSubject("C"), newSubject("D"), newSubject("E"),
	}

	// One hour a day fits two half-hour sessions, so subjects rotate.
	planned, err := Schedule(subjects, nil, 1.0, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	perDay := map[string][]string{}
	seen := map[string]int{}
	for _, session := range planned {
		key := session.StudyDate.Format("2006-01-02")
		perDay[key] = append(perDay[key], session.SubjectName)
		seen[session.SubjectName]++
	}
	for day, names := range perDay {
		if len(names) != 2 {
			t.Fatalf("day %s scheduled %d subjects, want 2", day, len(names))
		}
	}
	if len(seen) != 5 {
		t.Fatalf("only %d of 5 subjects ever scheduled", len(seen))
	}
	for name, n := range seen {
		if n != 2 {
			t.Fatalf("subject %s scheduled %d times, want 2", name, n)
		}
	}
}

func TestSchedule_SingleDayRange(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	subjects := []*types.Subject{newSubject("Math")}

	planned, err := Schedule(subjects, nil, 2.0, day, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(planned) != 1 {
		t.Fatalf("expected 1 session, got %d", len(planned))
	}
	if !planned[0].StudyDate.Equal(day) {
		t.Fatalf("study date = %v, want %v", planned[0].StudyDate, day)
	}
}

func TestSchedule_ValidationErrors(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	subjects := []*types.Subject{newSubject("Math")}

	if _, err := Schedule(nil, nil, 4.0, start, start); err == nil {
		t.Fatalf("expected error for no subjects")
	} else if apiErr := apierr.From(err); apiErr == nil || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := Schedule(subjects, nil, 4.0, start, start.AddDate(0, 0, -1)); err == nil {
		t.Fatalf("expected error for inverted range")
	}

	if _, err := Schedule(subjects, nil, 0, start, start); err == nil {
		t.Fatalf("expected error for non-positive daily hours")
	}
}
