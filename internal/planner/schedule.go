package planner

import (
	"time"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/types"
)

// PlannedSession is one generated study block, ready to be persisted.
type PlannedSession struct {
	Allocation
	StudyDate time.Time
}

// Schedule walks every calendar day from start to end inclusive and
// allocates the daily budget across the owner's subjects. When the budget
// cannot cover every subject at the minimum session length, subjects
// rotate across days round-robin so each recurs regularly.
func Schedule(subjects []*types.Subject, exams []*types.Exam, dailyHours float64, startDate, endDate time.Time) ([]PlannedSession, error) {
	if len(subjects) == 0 {
		return nil, apierr.Validation("no subjects found, add subjects before generating a plan")
	}
	start := DateOnly(startDate)
	end := DateOnly(endDate)
	if end.Before(start) {
		return nil, apierr.Validation("invalid date range: end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if dailyHours <= 0 {
		return nil, apierr.Validation("daily study hours must be positive")
	}

	subjectsPerDay := int(dailyHours / MinSessionHours)
	if subjectsPerDay < 1 {
		subjectsPerDay = 1
	}
	if subjectsPerDay > len(subjects) {
		subjectsPerDay = len(subjects)
	}

	var planned []PlannedSession
	rotation := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		selected := make([]*types.Subject, 0, subjectsPerDay)
		for i := 0; i < subjectsPerDay; i++ {
			selected = append(selected, subjects[(rotation+i)%len(subjects)])
		}
		rotation = (rotation + subjectsPerDay) % len(subjects)

		for _, allocation := range Allocate(selected, exams, dailyHours, day) {
			planned = append(planned, PlannedSession{Allocation: allocation, StudyDate: day})
		}
	}
	return planned, nil
}
