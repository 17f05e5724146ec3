package domain

import (
	"slices"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var validPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

type Status string

const (
	StatusActive    Status = "active"
	StatusWaiting   Status = "waiting"
	StatusCompleted Status = "completed"
)

// StatusOrder lists the statuses in board column order.
var StatusOrder = []Status{StatusActive, StatusWaiting, StatusCompleted}

var validStatuses = []Status{StatusActive, StatusWaiting, StatusCompleted}

// DueDateLayout is the ISO calendar-date form used for due dates everywhere.
const DueDateLayout = "2006-01-02"

// Provenance carries descriptive source metadata for a task. Nothing in the
// board's behavior depends on these fields.
type Provenance struct {
	Quote       string
	Citations   []string
	Inspiration string
	Mentions    int
}

// Task represents one remediation item on the board.
type Task struct {
	ID         string
	Title      string
	Owner      string
	Priority   Priority
	DueDate    time.Time
	Cost       float64
	RatingBump float64
	Status     Status
	// PrevStatus remembers the last non-completed status so unchecking a
	// completed task returns it to the column it was completed from.
	PrevStatus Status
	Provenance Provenance
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TaskInput holds input values for task construction and full-field updates.
type TaskInput struct {
	ID         string
	Title      string
	Owner      string
	Priority   Priority
	DueDate    time.Time
	Cost       float64
	RatingBump float64
	Status     Status
	Provenance Provenance
}

// NewTask constructs a validated task.
func NewTask(in TaskInput, now time.Time) (Task, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Title = strings.TrimSpace(in.Title)
	in.Owner = strings.TrimSpace(in.Owner)

	if in.ID == "" {
		return Task{}, ErrInvalidID
	}
	if in.Title == "" {
		return Task{}, ErrInvalidTitle
	}
	if in.Owner == "" {
		return Task{}, ErrInvalidOwner
	}
	if in.DueDate.IsZero() {
		return Task{}, ErrInvalidDueDate
	}
	if in.Cost < 0 {
		return Task{}, ErrInvalidCost
	}
	if in.RatingBump < 0 || in.RatingBump > 1 {
		return Task{}, ErrInvalidRatingBump
	}

	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !slices.Contains(validPriorities, in.Priority) {
		return Task{}, ErrInvalidPriority
	}
	if in.Status == "" {
		in.Status = StatusActive
	}
	if !slices.Contains(validStatuses, in.Status) {
		return Task{}, ErrInvalidStatus
	}

	prev := in.Status
	if prev == StatusCompleted {
		prev = StatusActive
	}

	return Task{
		ID:         in.ID,
		Title:      in.Title,
		Owner:      in.Owner,
		Priority:   in.Priority,
		DueDate:    normalizeDueDate(in.DueDate),
		Cost:       in.Cost,
		RatingBump: in.RatingBump,
		Status:     in.Status,
		PrevStatus: prev,
		Provenance: normalizeProvenance(in.Provenance),
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}, nil
}

// DueDateString returns the due date in ISO calendar-date form.
func (t Task) DueDateString() string {
	if t.DueDate.IsZero() {
		return ""
	}
	return t.DueDate.Format(DueDateLayout)
}

// UpdateDetails replaces every editable field at once. The id is never
// touched; an empty input status keeps the current column.
func (t *Task) UpdateDetails(in TaskInput, now time.Time) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Owner = strings.TrimSpace(in.Owner)
	if in.Title == "" {
		return ErrInvalidTitle
	}
	if in.Owner == "" {
		return ErrInvalidOwner
	}
	if in.DueDate.IsZero() {
		return ErrInvalidDueDate
	}
	if !slices.Contains(validPriorities, in.Priority) {
		return ErrInvalidPriority
	}
	if in.Cost < 0 {
		return ErrInvalidCost
	}
	if in.RatingBump < 0 || in.RatingBump > 1 {
		return ErrInvalidRatingBump
	}
	if in.Status != "" && !slices.Contains(validStatuses, in.Status) {
		return ErrInvalidStatus
	}
	t.Title = in.Title
	t.Owner = in.Owner
	t.Priority = in.Priority
	t.DueDate = normalizeDueDate(in.DueDate)
	t.Cost = in.Cost
	t.RatingBump = in.RatingBump
	t.Provenance = normalizeProvenance(in.Provenance)
	if in.Status != "" && in.Status != t.Status {
		if err := t.SetStatus(in.Status, now); err != nil {
			return err
		}
	}
	t.UpdatedAt = now.UTC()
	return nil
}

// SetStatus moves the task to another column.
func (t *Task) SetStatus(status Status, now time.Time) error {
	if !slices.Contains(validStatuses, status) {
		return ErrInvalidStatus
	}
	if status != StatusCompleted {
		t.PrevStatus = status
	}
	t.Status = status
	t.UpdatedAt = now.UTC()
	return nil
}

// ToggleCompleted flips the checkbox: a completed task returns to the column
// it was completed from (falling back to active), anything else completes.
func (t *Task) ToggleCompleted(now time.Time) {
	if t.Status == StatusCompleted {
		prev := t.PrevStatus
		if prev == "" || prev == StatusCompleted {
			prev = StatusActive
		}
		t.Status = prev
		t.PrevStatus = prev
	} else {
		t.PrevStatus = t.Status
		t.Status = StatusCompleted
	}
	t.UpdatedAt = now.UTC()
}

// Duplicate returns a copy with a fresh id and a "(Copy)" title suffix.
// Every other field carries over unchanged.
func (t Task) Duplicate(newID string, now time.Time) (Task, error) {
	newID = strings.TrimSpace(newID)
	if newID == "" {
		return Task{}, ErrInvalidID
	}
	copied := t
	copied.ID = newID
	copied.Title = t.Title + " (Copy)"
	copied.Provenance.Citations = append([]string(nil), t.Provenance.Citations...)
	copied.CreatedAt = now.UTC()
	copied.UpdatedAt = now.UTC()
	return copied, nil
}

// ParseDueDate parses an ISO calendar date.
func ParseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDueDate
	}
	due, err := time.ParseInLocation(DueDateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}
	return due, nil
}

// normalizeDueDate truncates a due timestamp to its calendar date in UTC.
func normalizeDueDate(due time.Time) time.Time {
	due = due.UTC()
	return time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
}

// normalizeProvenance trims free-text fields and drops empty citations.
func normalizeProvenance(p Provenance) Provenance {
	p.Quote = strings.TrimSpace(p.Quote)
	p.Inspiration = strings.TrimSpace(p.Inspiration)
	if p.Mentions < 0 {
		p.Mentions = 0
	}
	citations := make([]string, 0, len(p.Citations))
	for _, raw := range p.Citations {
		citation := strings.TrimSpace(raw)
		if citation == "" {
			continue
		}
		citations = append(citations, citation)
	}
	if len(citations) == 0 {
		citations = nil
	}
	p.Citations = citations
	return p
}
