// Package seed provides the demo board loaded on first launch.
package seed

import (
	"context"
	"time"

	"github.com/ebenmoss/remedy/internal/app"
	"github.com/ebenmoss/remedy/internal/domain"
)

type seedSpec struct {
	title      string
	owner      string
	priority   domain.Priority
	dueInDays  int
	cost       float64
	ratingBump float64
	status     domain.Status
	provenance domain.Provenance
}

var demoBoard = []seedSpec{
	{
		title:      "Fix photo upload crash on Android",
		owner:      "Priya",
		priority:   domain.PriorityHigh,
		dueInDays:  3,
		cost:       120,
		ratingBump: 0.3,
		status:     domain.StatusActive,
		provenance: domain.Provenance{
			Quote:       "The app crashes every single time I try to upload a photo. Unusable.",
			Citations:   []string{"review-1182", "review-2044", "review-2398"},
			Inspiration: "photo reliability push",
			Mentions:    37,
		},
	},
	{
		title:      "Shorten checkout to two steps",
		owner:      "Marcus",
		priority:   domain.PriorityHigh,
		dueInDays:  7,
		cost:       200,
		ratingBump: 0.25,
		status:     domain.StatusActive,
		provenance: domain.Provenance{
			Quote:       "Why are there six screens between my cart and paying you?",
			Citations:   []string{"review-1810"},
			Inspiration: "checkout funnel audit",
			Mentions:    24,
		},
	},
	{
		title:      "Send push reminder for expiring coupons",
		owner:      "Lena",
		priority:   domain.PriorityMedium,
		dueInDays:  10,
		cost:       60,
		ratingBump: 0.1,
		status:     domain.StatusActive,
		provenance: domain.Provenance{
			Quote:       "My coupon expired before I even knew I had one.",
			Citations:   []string{"review-951", "review-1433"},
			Mentions:    11,
		},
	},
	{
		title:      "Restore dark mode on tablet layout",
		owner:      "Theo",
		priority:   domain.PriorityMedium,
		dueInDays:  14,
		cost:       45,
		ratingBump: 0.15,
		status:     domain.StatusWaiting,
		provenance: domain.Provenance{
			Quote:       "Dark mode disappeared on my iPad after the update. Bring it back.",
			Citations:   []string{"review-2210"},
			Inspiration: "tablet parity backlog",
			Mentions:    18,
		},
	},
	{
		title:      "Translate onboarding into Spanish",
		owner:      "Ines",
		priority:   domain.PriorityLow,
		dueInDays:  21,
		cost:       90,
		ratingBump: 0.2,
		status:     domain.StatusWaiting,
		provenance: domain.Provenance{
			Quote:       "Half my family can't get past the signup screen. No Spanish anywhere.",
			Citations:   []string{"review-1675", "review-1998"},
			Mentions:    9,
		},
	},
	{
		title:      "Stop double-charging cancelled orders",
		owner:      "Marcus",
		priority:   domain.PriorityHigh,
		dueInDays:  -2,
		cost:       150,
		ratingBump: 0.4,
		status:     domain.StatusCompleted,
		provenance: domain.Provenance{
			Quote:       "Cancelled an order and got charged twice. Still waiting on the refund.",
			Citations:   []string{"review-1490", "review-1502", "review-1533"},
			Inspiration: "billing incident follow-up",
			Mentions:    52,
		},
	},
	{
		title:      "Add order tracking link to emails",
		owner:      "Priya",
		priority:   domain.PriorityLow,
		dueInDays:  -5,
		cost:       30,
		ratingBump: 0.05,
		status:     domain.StatusCompleted,
		provenance: domain.Provenance{
			Quote:       "Every other shop sends a tracking link. Where's mine?",
			Citations:   []string{"review-804"},
			Mentions:    6,
		},
	},
}

// Load populates the repository with the demo board. Tasks that start
// out completed remember their source column so unchecking them behaves
// sensibly.
func Load(ctx context.Context, repo app.Repository, idGen app.IDGenerator, now time.Time) error {
	for _, spec := range demoBoard {
		task, err := domain.NewTask(domain.TaskInput{
			ID:         idGen(),
			Title:      spec.title,
			Owner:      spec.owner,
			Priority:   spec.priority,
			DueDate:    now.AddDate(0, 0, spec.dueInDays),
			Cost:       spec.cost,
			RatingBump: spec.ratingBump,
			Status:     spec.status,
			Provenance: spec.provenance,
		}, now)
		if err != nil {
			return err
		}
		if err := repo.CreateTask(ctx, task); err != nil {
			return err
		}
	}
	return nil
}
