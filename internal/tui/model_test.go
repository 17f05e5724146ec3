package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ebenmoss/remedy/internal/app"
	"github.com/ebenmoss/remedy/internal/board"
	"github.com/ebenmoss/remedy/internal/domain"
)

type fakeService struct {
	tasks   []domain.Task
	counter int
	err     error
}

func newFakeService(tasks []domain.Task) *fakeService {
	return &fakeService{tasks: tasks}
}

func (f *fakeService) nextID() string {
	f.counter++
	return fmt.Sprintf("t-new-%d", f.counter)
}

func (f *fakeService) find(id string) (int, bool) {
	for i, task := range f.tasks {
		if task.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (f *fakeService) ListTasks(context.Context) ([]domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeService) AddTask(_ context.Context, in domain.TaskInput) (domain.Task, error) {
	in.ID = f.nextID()
	in.Status = domain.StatusActive
	task, err := domain.NewTask(in, time.Now())
	if err != nil {
		return domain.Task{}, err
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeService) UpdateTask(_ context.Context, id string, in domain.TaskInput) (domain.Task, error) {
	i, ok := f.find(id)
	if !ok {
		return domain.Task{}, app.ErrNotFound
	}
	task := f.tasks[i]
	if err := task.UpdateDetails(in, time.Now()); err != nil {
		return domain.Task{}, err
	}
	f.tasks[i] = task
	return task, nil
}

func (f *fakeService) DeleteTask(_ context.Context, id string) error {
	if i, ok := f.find(id); ok {
		f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	}
	return nil
}

func (f *fakeService) DuplicateTask(_ context.Context, id string) (domain.Task, error) {
	i, ok := f.find(id)
	if !ok {
		return domain.Task{}, app.ErrNotFound
	}
	copied, err := f.tasks[i].Duplicate(f.nextID(), time.Now())
	if err != nil {
		return domain.Task{}, err
	}
	f.tasks = append(f.tasks, copied)
	return copied, nil
}

func (f *fakeService) ToggleTask(_ context.Context, id string) (domain.Task, error) {
	i, ok := f.find(id)
	if !ok {
		return domain.Task{}, app.ErrNotFound
	}
	task := f.tasks[i]
	task.ToggleCompleted(time.Now())
	f.tasks[i] = task
	return task, nil
}

func (f *fakeService) MoveTask(_ context.Context, id string, status domain.Status) error {
	moved, err := board.MoveToColumn(f.tasks, id, status, time.Now())
	if err != nil {
		return err
	}
	f.tasks = moved
	return nil
}

func (f *fakeService) DropTask(_ context.Context, session board.Session) error {
	result, changed := board.Drop(f.tasks, session, time.Now())
	if changed {
		f.tasks = result
	}
	return nil
}

func seedTask(t *testing.T, id string, status domain.Status) domain.Task {
	t.Helper()
	task, err := domain.NewTask(domain.TaskInput{
		ID:      id,
		Title:   "task " + id,
		Owner:   "Priya",
		DueDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Status:  status,
	}, time.Now())
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	return task
}

func boardFixture(t *testing.T) []domain.Task {
	t.Helper()
	return []domain.Task{
		seedTask(t, "a1", domain.StatusActive),
		seedTask(t, "a2", domain.StatusActive),
		seedTask(t, "w1", domain.StatusWaiting),
		seedTask(t, "c1", domain.StatusCompleted),
	}
}

func statusIDs(tasks []domain.Task, status domain.Status) []string {
	var ids []string
	for _, task := range board.Column(tasks, status) {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestModelLoadAndNavigation(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	if len(m.tasks) != 4 {
		t.Fatalf("unexpected loaded tasks %d", len(m.tasks))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	if m.selectedColumn != 1 {
		t.Fatalf("expected selectedColumn=1, got %d", m.selectedColumn)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyLeft})
	if m.selectedColumn != 0 {
		t.Fatalf("expected selectedColumn=0, got %d", m.selectedColumn)
	}
	m = applyMsg(t, m, keyRune('j'))
	if m.selectedTask != 1 {
		t.Fatalf("expected selectedTask=1, got %d", m.selectedTask)
	}
	m = applyMsg(t, m, keyRune('k'))
	if m.selectedTask != 0 {
		t.Fatalf("expected selectedTask=0, got %d", m.selectedTask)
	}
}

func TestGrabDropReordersColumn(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('g'))
	if !m.drag.Active() {
		t.Fatal("expected an active drag session")
	}
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.drag.Active() {
		t.Fatal("expected session cleared after drop")
	}
	if got := statusIDs(svc.tasks, domain.StatusActive); got[0] != "a2" || got[1] != "a1" {
		t.Fatalf("unexpected active order %v", got)
	}
}

func TestGrabAcrossColumnsAppends(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('g'))
	m = applyMsg(t, m, keyRune('l'))
	if m.drag.HoveredStatus != domain.StatusWaiting {
		t.Fatalf("unexpected hovered status %q", m.drag.HoveredStatus)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := statusIDs(svc.tasks, domain.StatusWaiting); len(got) != 2 || got[1] != "a1" {
		t.Fatalf("unexpected waiting column %v", got)
	}
}

func TestGrabEscCancels(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('g'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.drag.Active() {
		t.Fatal("expected session cleared")
	}
	if got := statusIDs(svc.tasks, domain.StatusActive); got[0] != "a1" {
		t.Fatalf("unexpected active order %v", got)
	}
}

func TestToggleKeyCompletesAndRestores(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune(' '))
	if i, _ := svc.find("a1"); svc.tasks[i].Status != domain.StatusCompleted {
		t.Fatalf("expected a1 completed, got %q", svc.tasks[i].Status)
	}
	// selection follows the toggled card into its new column
	m = applyMsg(t, m, keyRune(' '))
	if i, _ := svc.find("a1"); svc.tasks[i].Status != domain.StatusActive {
		t.Fatalf("expected a1 restored to active, got %q", svc.tasks[i].Status)
	}
	_ = m
}

func TestDuplicateKeyCopiesCard(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('y'))
	if len(svc.tasks) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(svc.tasks))
	}
	var copied domain.Task
	for _, task := range svc.tasks {
		if strings.HasSuffix(task.Title, "(Copy)") {
			copied = task
		}
	}
	if copied.ID == "" || copied.Title != "task a1 (Copy)" {
		t.Fatalf("unexpected duplicate %+v", copied)
	}
	_ = m
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('x'))
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected confirm mode, got %d", m.mode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(svc.tasks) != 4 {
		t.Fatalf("expected cancel to keep tasks, got %d", len(svc.tasks))
	}

	m = applyMsg(t, m, keyRune('x'))
	m = applyMsg(t, m, keyRune('y'))
	if len(svc.tasks) != 3 {
		t.Fatalf("expected delete to remove task, got %d", len(svc.tasks))
	}
	if _, ok := svc.find("a1"); ok {
		t.Fatal("expected a1 deleted")
	}
}

func TestDeleteWithoutConfirmation(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc, WithConfirmDelete(false)))

	m = applyMsg(t, m, keyRune('x'))
	if len(svc.tasks) != 3 {
		t.Fatalf("expected direct delete, got %d tasks", len(svc.tasks))
	}
	_ = m
}

func TestEditorDeleteClosesPanel(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('e'))
	if m.mode != modeEditTask {
		t.Fatalf("expected edit mode, got %d", m.mode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	if m.mode != modeNone {
		t.Fatalf("expected editor closed, got mode %d", m.mode)
	}
	if len(svc.tasks) != 3 {
		t.Fatalf("expected delete to remove task, got %d", len(svc.tasks))
	}
	if _, ok := svc.find("a1"); ok {
		t.Fatal("expected a1 deleted")
	}
}

func TestAddTaskValidatesTitle(t *testing.T) {
	svc := newFakeService(nil)
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('a'))
	if m.mode != modeAddTask {
		t.Fatalf("expected add mode, got %d", m.mode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeAddTask {
		t.Fatal("expected form to stay open on validation failure")
	}
	if m.status != "title required" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if len(svc.tasks) != 0 {
		t.Fatal("expected no task created")
	}
}

func TestAddTaskSubmit(t *testing.T) {
	svc := newFakeService(nil)
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('a'))
	m = typeText(t, m, "Fix crash")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab}) // owner
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab}) // priority
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab}) // due
	m = typeText(t, m, "2026-09-20")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.mode != modeNone {
		t.Fatalf("expected form closed, mode %d", m.mode)
	}
	if len(svc.tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(svc.tasks))
	}
	created := svc.tasks[0]
	if created.Title != "Fix crash" || created.Status != domain.StatusActive {
		t.Fatalf("unexpected created task %+v", created)
	}
	if created.Owner == "" {
		t.Fatal("expected a default owner")
	}
	if created.DueDateString() != "2026-09-20" {
		t.Fatalf("unexpected due date %q", created.DueDateString())
	}
}

func TestEditDirtyCheck(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('e'))
	if m.mode != modeEditTask {
		t.Fatalf("expected edit mode, got %d", m.mode)
	}
	if m.taskFormDirty() {
		t.Fatal("expected pristine form on open")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeEditTask {
		t.Fatal("expected clean save attempt to keep the editor open")
	}
	if m.status != "no changes to save" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = typeText(t, m, "!")
	if !m.taskFormDirty() {
		t.Fatal("expected dirty form after typing")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNone {
		t.Fatalf("expected editor closed, mode %d", m.mode)
	}
	i, _ := svc.find("a1")
	if svc.tasks[i].Title != "task a1!" {
		t.Fatalf("unexpected title %q", svc.tasks[i].Title)
	}
	if svc.tasks[i].Status != domain.StatusActive {
		t.Fatalf("edit should keep the column, got %q", svc.tasks[i].Status)
	}
}

func TestEditKeepsProvenance(t *testing.T) {
	task := seedTask(t, "a1", domain.StatusActive)
	task.Provenance = domain.Provenance{Quote: "upload keeps failing", Mentions: 3}
	svc := newFakeService([]domain.Task{task})
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('e'))
	m = typeText(t, m, " now")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNone {
		t.Fatalf("expected editor closed, mode %d", m.mode)
	}
	i, _ := svc.find("a1")
	if svc.tasks[i].Provenance.Quote != "upload keeps failing" || svc.tasks[i].Provenance.Mentions != 3 {
		t.Fatalf("provenance lost on edit: %+v", svc.tasks[i].Provenance)
	}
}

func TestYankCopiesSummary(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	var copied string
	m := loadReadyModel(t, NewModel(svc, WithClipboard(func(s string) error {
		copied = s
		return nil
	})))

	m = applyMsg(t, m, keyRune('c'))
	if !strings.Contains(copied, "task a1") || !strings.Contains(copied, "Priya") {
		t.Fatalf("unexpected summary %q", copied)
	}
	_ = m
}

func TestMouseDragAcrossColumns(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))
	colStride := m.columnWidth() + 7

	m = applyMsg(t, m, tea.MouseClickMsg{Button: tea.MouseLeft, X: 2, Y: m.boardTop() + 2})
	if !m.drag.Active() || m.drag.DraggedTaskID != "a1" {
		t.Fatalf("expected drag on a1, got %+v", m.drag)
	}
	m = applyMsg(t, m, tea.MouseMotionMsg{X: colStride + 2, Y: m.boardTop() + 2})
	if m.drag.HoveredStatus != domain.StatusWaiting {
		t.Fatalf("unexpected hovered status %q", m.drag.HoveredStatus)
	}
	m = applyMsg(t, m, tea.MouseReleaseMsg{Button: tea.MouseLeft})
	if m.drag.Active() {
		t.Fatal("expected session cleared after release")
	}
	if got := statusIDs(svc.tasks, domain.StatusWaiting); len(got) != 2 {
		t.Fatalf("unexpected waiting column %v", got)
	}
}

func TestMouseClickWithoutMotionIsSelection(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.MouseClickMsg{Button: tea.MouseLeft, X: 2, Y: m.boardTop() + 2})
	m = applyMsg(t, m, tea.MouseReleaseMsg{Button: tea.MouseLeft})
	if got := statusIDs(svc.tasks, domain.StatusActive); got[0] != "a1" || got[1] != "a2" {
		t.Fatalf("expected untouched order, got %v", got)
	}
	if m.selectedColumn != 0 || m.selectedTask != 0 {
		t.Fatalf("unexpected selection %d/%d", m.selectedColumn, m.selectedTask)
	}
}

func TestViewRendersColumnsAndMetrics(t *testing.T) {
	svc := newFakeService(boardFixture(t))
	m := loadReadyModel(t, NewModel(svc))

	v := m.View()
	if v.Content == nil || v.MouseMode != tea.MouseModeCellMotion {
		t.Fatal("expected board view with mouse enabled")
	}
	out := m.renderBoard(lipgloss.Color("62"), lipgloss.Color("241"), lipgloss.Color("238"), m.width)
	for _, want := range []string{"Active", "Waiting", "Completed", "task a1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected board to contain %q", want)
		}
	}
}

func loadReadyModel(t *testing.T, m Model) Model {
	t.Helper()
	return applyMsg(t, applyCmd(t, m, m.Init()), tea.WindowSizeMsg{Width: 120, Height: 40})
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	currentCmd := cmd
	for i := 0; i < 6 && currentCmd != nil; i++ {
		msg := currentCmd()
		updated, nextCmd := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		currentCmd = nextCmd
	}
	return out
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = applyMsg(t, m, keyRune(r))
	}
	return m
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}
