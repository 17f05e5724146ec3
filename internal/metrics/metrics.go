// Package metrics derives aggregate board statistics from the task
// list. Everything is recomputed from scratch on each call; at tens of
// tasks there is nothing worth caching.
package metrics

import (
	"time"

	"github.com/ebenmoss/remedy/internal/domain"
)

// Summary holds the aggregate figures shown in the board header.
type Summary struct {
	Total     int
	Active    int
	Waiting   int
	Completed int
	Overdue   int

	// CompletionRate is completed over total, in [0, 1]. Zero for an
	// empty board.
	CompletionRate float64

	TotalCost     float64
	CompletedCost float64

	// RatingBump is the cumulative rating impact of completed tasks.
	RatingBump float64
}

// Compute summarizes the task list. A task counts as overdue when its
// due date falls before today (relative to now, UTC) and it is not
// completed.
func Compute(tasks []domain.Task, now time.Time) Summary {
	var s Summary
	today := now.UTC().Truncate(24 * time.Hour)
	for _, task := range tasks {
		s.Total++
		s.TotalCost += task.Cost
		switch task.Status {
		case domain.StatusActive:
			s.Active++
		case domain.StatusWaiting:
			s.Waiting++
		case domain.StatusCompleted:
			s.Completed++
			s.CompletedCost += task.Cost
			s.RatingBump += task.RatingBump
		}
		if task.Status != domain.StatusCompleted && task.DueDate.Before(today) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total)
	}
	return s
}
