// Package board resolves drag sessions into task-list mutations. It is
// pure: callers hand it the full task slice and get a new slice back,
// never an in-place edit.
package board

import (
	"time"

	"github.com/ebenmoss/remedy/internal/domain"
)

// NoIndex marks a drop with no hovered insertion point.
const NoIndex = -1

// Session tracks the transient state of one drag, from grab to drop.
type Session struct {
	DraggedTaskID string
	SourceStatus  domain.Status
	HoveredStatus domain.Status
	HoveredIndex  int
}

// NewSession starts a drag for the given task. The source column is
// captured here because the task's status must not be consulted again
// until the drop resolves.
func NewSession(task domain.Task) Session {
	return Session{
		DraggedTaskID: task.ID,
		SourceStatus:  task.Status,
		HoveredStatus: task.Status,
		HoveredIndex:  NoIndex,
	}
}

// Active reports whether a drag is in progress.
func (s Session) Active() bool {
	return s.DraggedTaskID != ""
}

// Clear resets the session so a future drag starts from a clean slate.
func (s *Session) Clear() {
	*s = Session{HoveredIndex: NoIndex}
}

// Drop resolves a drag session against the full task list. A drop inside
// the source column with a hovered index reorders that column; a drop on
// a different column changes the task's status and appends it to the end
// of the destination column. Anything else, including an unknown task
// id, leaves the list untouched. The returned flag reports whether the
// list changed. Applying the same drop twice yields the same list as
// applying it once.
func Drop(tasks []domain.Task, session Session, now time.Time) ([]domain.Task, bool) {
	dragged, found := find(tasks, session.DraggedTaskID)
	if !found {
		return tasks, false
	}

	target := session.HoveredStatus
	switch {
	case session.SourceStatus == target && session.HoveredIndex != NoIndex:
		return Reorder(tasks, dragged.ID, target, session.HoveredIndex), true
	case dragged.Status != target:
		moved, err := MoveToColumn(tasks, dragged.ID, target, now)
		if err != nil {
			return tasks, false
		}
		return moved, true
	default:
		return tasks, false
	}
}

// Reorder moves the task with the given id to dropIndex within its
// status column. The column is partitioned out of the full list, the
// task removed and reinserted at the clamped index, and the partition
// appended back after every other task in original relative order.
func Reorder(tasks []domain.Task, taskID string, status domain.Status, dropIndex int) []domain.Task {
	var others []domain.Task
	var column []domain.Task
	var dragged domain.Task
	found := false
	for _, task := range tasks {
		switch {
		case task.ID == taskID:
			dragged = task
			found = true
		case task.Status == status:
			column = append(column, task)
		default:
			others = append(others, task)
		}
	}
	if !found {
		return tasks
	}

	index := clampIndex(dropIndex, len(column))
	result := make([]domain.Task, 0, len(tasks))
	result = append(result, others...)
	result = append(result, column[:index]...)
	result = append(result, dragged)
	result = append(result, column[index:]...)
	return result
}

// MoveToColumn changes the task's status and appends it to the end of
// its new column.
func MoveToColumn(tasks []domain.Task, taskID string, status domain.Status, now time.Time) ([]domain.Task, error) {
	result := make([]domain.Task, 0, len(tasks))
	var moved domain.Task
	found := false
	for _, task := range tasks {
		if task.ID == taskID {
			if err := task.SetStatus(status, now); err != nil {
				return nil, err
			}
			moved = task
			found = true
			continue
		}
		result = append(result, task)
	}
	if !found {
		return tasks, nil
	}
	return append(result, moved), nil
}

// InsertionPoints reports the number of drop zones in a column holding
// the given tasks: one before the first card, one between each adjacent
// pair, and one after the last. The dragged card is excluded from the
// count so a task cannot be inserted next to itself.
func InsertionPoints(tasks []domain.Task, status domain.Status, draggedID string) int {
	count := 0
	for _, task := range tasks {
		if task.Status == status && task.ID != draggedID {
			count++
		}
	}
	return count + 1
}

// Column filters the full list down to one status, preserving order.
func Column(tasks []domain.Task, status domain.Status) []domain.Task {
	var out []domain.Task
	for _, task := range tasks {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out
}

func find(tasks []domain.Task, id string) (domain.Task, bool) {
	for _, task := range tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

func clampIndex(index, length int) int {
	if index < 0 {
		return 0
	}
	if index > length {
		return length
	}
	return index
}
