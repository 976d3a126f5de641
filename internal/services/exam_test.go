package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/types"
)

func (env *testEnv) examService() ExamService {
	return NewExamService(env.db, env.log, env.examRepo, env.subjectRepo, env.clk)
}

func TestCreateExam_DefaultsPriorityAndValidates(t *testing.T) {
	env := newTestEnv(t)
	svc := env.examService()
	subject := env.mustCreateSubject(t, "Math")

	exam, err := svc.CreateExam(context.Background(), env.ownerID, ExamInput{
		SubjectID: subject.ID,
		ExamName:  "Final",
		ExamDate:  env.today().AddDate(0, 0, 10),
	})
	if err != nil {
		t.Fatalf("CreateExam failed: %v", err)
	}
	if exam.PriorityLevel != types.ExamPriorityMedium {
		t.Fatalf("priority = %q, want default medium", exam.PriorityLevel)
	}

	cases := []struct {
		name  string
		input ExamInput
	}{
		{"missing name", ExamInput{SubjectID: subject.ID, ExamDate: env.today()}},
		{"missing date", ExamInput{SubjectID: subject.ID, ExamName: "Quiz"}},
		{"bad priority", ExamInput{SubjectID: subject.ID, ExamName: "Quiz", ExamDate: env.today(), PriorityLevel: "urgent"}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateExam(context.Background(), env.ownerID, tc.input); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestCreateExam_UnknownSubjectRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := env.examService()

	_, err := svc.CreateExam(context.Background(), env.ownerID, ExamInput{
		SubjectID: uuid.New(),
		ExamName:  "Final",
		ExamDate:  env.today().AddDate(0, 0, 10),
	})
	if err == nil {
		t.Fatalf("expected not found for unknown subject")
	}
	if apiErr := apierr.From(err); apiErr == nil || apiErr.Code != apierr.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestListUpcomingExams_ExcludesPast(t *testing.T) {
	env := newTestEnv(t)
	svc := env.examService()
	subject := env.mustCreateSubject(t, "Math")

	env.mustCreateExam(t, subject.ID, "Past", env.today().AddDate(0, 0, -1))
	env.mustCreateExam(t, subject.ID, "Today", env.today())
	env.mustCreateExam(t, subject.ID, "Future", env.today().AddDate(0, 0, 30))

	exams, err := svc.ListUpcomingExams(context.Background(), env.ownerID)
	if err != nil {
		t.Fatalf("ListUpcomingExams failed: %v", err)
	}
	if len(exams) != 2 {
		t.Fatalf("upcoming exams = %d, want 2", len(exams))
	}
	for _, exam := range exams {
		if exam.ExamName == "Past" {
			t.Fatalf("past exam returned as upcoming")
		}
	}
}
