package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studypilot/studypilot-backend/internal/types"
)

// Allocation is one subject's share of a day's study budget.
type Allocation struct {
	SubjectID   uuid.UUID
	SubjectName string
	Hours       float64
	Topic       string
	Description string
	Priority    int
	DaysUntil   int
}

// Allocate splits totalHours across the subjects selected for one day,
// proportionally to exam urgency, with every subject floored at
// MinSessionHours. When the floors push the sum past the budget the shares
// are rescaled once and the last subject absorbs the remainder; the daily
// total may then deviate slightly from the budget, which is accepted
// rather than corrected.
func Allocate(subjects []*types.Subject, exams []*types.Exam, totalHours float64, day time.Time) []Allocation {
	if len(subjects) == 0 {
		return nil
	}

	if len(subjects) == 1 {
		subject := subjects[0]
		urgency := Classify(subject.ID, exams, day)
		a := Allocation{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			Hours:       totalHours,
			Priority:    urgency.Weight,
			DaysUntil:   urgency.DaysUntil,
		}
		a.Topic, a.Description = label(subject.Name, urgency)
		if urgency.DaysUntil > 7 {
			a.Topic = "Study Session"
			a.Description = fmt.Sprintf("Regular study session for %s", subject.Name)
		}
		return []Allocation{a}
	}

	urgencies := make([]Urgency, len(subjects))
	totalWeight := 0
	for i, subject := range subjects {
		urgencies[i] = Classify(subject.ID, exams, day)
		totalWeight += urgencies[i].Weight
	}

	hours := make([]float64, len(subjects))
	sum := 0.0
	for i, u := range urgencies {
		share := Quantize(totalHours * float64(u.Weight) / float64(totalWeight))
		if share < MinSessionHours {
			share = MinSessionHours
		}
		hours[i] = share
		sum += share
	}

	// The floors can overshoot the budget; rescale everything but the
	// last subject, which absorbs whatever is left.
	if sum > totalHours {
		previous := 0.0
		for i := 0; i < len(hours)-1; i++ {
			rescaled := Quantize(hours[i] * totalHours / sum)
			if rescaled < MinSessionHours {
				rescaled = MinSessionHours
			}
			hours[i] = rescaled
			previous += rescaled
		}
		last := totalHours - previous
		if last < MinSessionHours {
			last = MinSessionHours
		}
		hours[len(hours)-1] = last
	}

	allocations := make([]Allocation, len(subjects))
	for i, subject := range subjects {
		topic, description := label(subject.Name, urgencies[i])
		allocations[i] = Allocation{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			Hours:       hours[i],
			Topic:       topic,
			Description: description,
			Priority:    urgencies[i].Weight,
			DaysUntil:   urgencies[i].DaysUntil,
		}
	}
	return allocations
}

func label(subjectName string, urgency Urgency) (string, string) {
	if urgency.DaysUntil <= 7 {
		topic := fmt.Sprintf("Exam Prep - %s", subjectName)
		description := fmt.Sprintf("Focus on exam preparation (%d days remaining)", urgency.DaysUntil)
		return topic, description
	}
	topic := fmt.Sprintf("Study Session - %s", subjectName)
	return topic, "Regular study session"
}
