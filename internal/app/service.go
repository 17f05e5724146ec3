package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ebenmoss/remedy/internal/board"
	"github.com/ebenmoss/remedy/internal/domain"
)

// IDGenerator returns unique identifiers for new tasks.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Service owns the authoritative task list and applies every mutation
// through the repository.
type Service struct {
	repo  Repository
	idGen IDGenerator
	clock Clock
}

// NewService constructs a new value for this package.
func NewService(repo Repository, idGen IDGenerator, clock Clock) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, idGen: idGen, clock: clock}
}

// ListTasks lists tasks in board order.
func (s *Service) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.repo.ListTasks(ctx)
}

// GetTask gets one task by id.
func (s *Service) GetTask(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// AddTask appends a new task with a fresh id. The status is always
// forced to active regardless of the input.
func (s *Service) AddTask(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
	in.ID = s.idGen()
	in.Status = domain.StatusActive
	task, err := domain.NewTask(in, s.clock())
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// UpdateTask replaces the fields of the task with the matching id.
func (s *Service) UpdateTask(ctx context.Context, id string, in domain.TaskInput) (domain.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if err := task.UpdateDetails(in, s.clock()); err != nil {
		return domain.Task{}, err
	}
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes the task with the matching id. Deleting an absent
// id is a no-op.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.repo.DeleteTask(ctx, id)
}

// DuplicateTask appends a copy of the task with a new id and "(Copy)"
// suffixed to the title.
func (s *Service) DuplicateTask(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	copied, err := task.Duplicate(s.idGen(), s.clock())
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, copied); err != nil {
		return domain.Task{}, fmt.Errorf("duplicate task: %w", err)
	}
	return copied, nil
}

// ToggleTask flips the task between completed and the column it was
// completed from.
func (s *Service) ToggleTask(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	task.ToggleCompleted(s.clock())
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("toggle task: %w", err)
	}
	return task, nil
}

// MoveTask changes a task's status and appends it to the end of its new
// column.
func (s *Service) MoveTask(ctx context.Context, id string, status domain.Status) error {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return err
	}
	moved, err := board.MoveToColumn(tasks, id, status, s.clock())
	if err != nil {
		return err
	}
	return s.repo.ReplaceTasks(ctx, moved)
}

// DropTask resolves a drag session against the current list and stores
// the result. Sessions that resolve to no mutation leave the list
// untouched.
func (s *Service) DropTask(ctx context.Context, session board.Session) error {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return err
	}
	result, changed := board.Drop(tasks, session, s.clock())
	if !changed {
		return nil
	}
	return s.repo.ReplaceTasks(ctx, result)
}

// ReplaceTasks replaces the full list verbatim. The replacement must
// carry exactly the ids of the current list; anything else is rejected
// with ErrListNotPermuted.
func (s *Service) ReplaceTasks(ctx context.Context, tasks []domain.Task) error {
	current, err := s.repo.ListTasks(ctx)
	if err != nil {
		return err
	}
	if !samePermutation(current, tasks) {
		return ErrListNotPermuted
	}
	return s.repo.ReplaceTasks(ctx, tasks)
}

func samePermutation(a, b []domain.Task) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, task := range a {
		counts[task.ID]++
	}
	for _, task := range b {
		counts[task.ID]--
		if counts[task.ID] < 0 {
			return false
		}
	}
	return true
}
