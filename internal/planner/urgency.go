package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/studypilot/studypilot-backend/internal/types"
)

// NoExamSentinelDays marks a subject with no upcoming exam.
const NoExamSentinelDays = 999

// Urgency is the priority signal for one subject on one reference date.
type Urgency struct {
	Weight    int
	DaysUntil int
	ExamName  string
}

// Classify derives a subject's urgency from its nearest upcoming exam:
// weight 3 within a week, 2 within two weeks, 1 otherwise. A subject with
// no future exam gets weight 1 and the sentinel day count. The exam's
// stored priority tag is deliberately not consulted.
func Classify(subjectID uuid.UUID, exams []*types.Exam, referenceDate time.Time) Urgency {
	ref := DateOnly(referenceDate)

	var nearest *types.Exam
	nearestDays := 0
	for _, exam := range exams {
		if exam.SubjectID != subjectID {
			continue
		}
		days := daysBetween(ref, DateOnly(exam.ExamDate))
		if days < 0 {
			continue
		}
		if nearest == nil || days < nearestDays {
			nearest = exam
			nearestDays = days
		}
	}

	if nearest == nil {
		return Urgency{Weight: 1, DaysUntil: NoExamSentinelDays}
	}

	weight := 1
	switch {
	case nearestDays <= 7:
		weight = 3
	case nearestDays <= 14:
		weight = 2
	}
	return Urgency{Weight: weight, DaysUntil: nearestDays, ExamName: nearest.ExamName}
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
