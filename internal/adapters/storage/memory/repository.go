// Package memory implements the task repository as an in-process,
// mutex-guarded list. The board lives for the length of one session;
// nothing here reaches disk.
package memory

import (
	"context"
	"sync"

	"github.com/ebenmoss/remedy/internal/app"
	"github.com/ebenmoss/remedy/internal/domain"
)

// Repository represents repository data used by this package.
type Repository struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

// Open constructs an empty repository.
func Open() *Repository {
	return &Repository{}
}

// CreateTask appends a task. Ids must be unique; reusing one fails.
func (r *Repository) CreateTask(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(task.ID) != -1 {
		return domain.ErrInvalidID
	}
	r.tasks = append(r.tasks, task)
	return nil
}

// UpdateTask replaces the stored task with the matching id.
func (r *Repository) UpdateTask(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(task.ID)
	if i == -1 {
		return app.ErrNotFound
	}
	r.tasks[i] = task
	return nil
}

// GetTask gets one task by id.
func (r *Repository) GetTask(_ context.Context, id string) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i == -1 {
		return domain.Task{}, app.ErrNotFound
	}
	return r.tasks[i], nil
}

// ListTasks lists all tasks in board order. The returned slice is a
// copy; callers may mutate it freely.
func (r *Repository) ListTasks(_ context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

// DeleteTask removes the task with the matching id. Absent ids are a
// no-op.
func (r *Repository) DeleteTask(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i == -1 {
		return nil
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

// ReplaceTasks swaps the full list for the given one.
func (r *Repository) ReplaceTasks(_ context.Context, tasks []domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = make([]domain.Task, len(tasks))
	copy(r.tasks, tasks)
	return nil
}

func (r *Repository) indexOf(id string) int {
	for i, task := range r.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}
