package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/ebenmoss/remedy/internal/board"
	"github.com/ebenmoss/remedy/internal/domain"
)

// Service represents service data used by this package.
type Service interface {
	ListTasks(context.Context) ([]domain.Task, error)
	AddTask(context.Context, domain.TaskInput) (domain.Task, error)
	UpdateTask(context.Context, string, domain.TaskInput) (domain.Task, error)
	DeleteTask(context.Context, string) error
	DuplicateTask(context.Context, string) (domain.Task, error)
	ToggleTask(context.Context, string) (domain.Task, error)
	MoveTask(context.Context, string, domain.Status) error
	DropTask(context.Context, board.Session) error
}

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeAddTask
	modeEditTask
	modeConfirmDelete
)

// task-form field indexes used throughout keyboard/update logic.
const (
	taskFieldTitle = iota
	taskFieldOwner
	taskFieldPriority
	taskFieldDue
	taskFieldCost
	taskFieldBump
)

// priorityOptions stores a package-level helper value.
var priorityOptions = []domain.Priority{
	domain.PriorityLow,
	domain.PriorityMedium,
	domain.PriorityHigh,
}

// Model represents model data used by this package.
type Model struct {
	svc Service

	ready  bool
	width  int
	height int
	err    error

	status string

	help help.Model
	keys keyMap

	cardFields    CardFieldConfig
	confirmDelete bool
	owners        domain.Roster

	tasks          []domain.Task
	selectedColumn int
	selectedTask   int

	mode inputMode

	// drag holds the live drag session; mouseDrag marks a session that
	// began with a pointer press and resolves on release.
	drag      board.Session
	mouseDrag bool

	formInputs    []textinput.Model
	formFocus     int
	priorityIdx   int
	ownerIdx      int
	editingTaskID string
	// editBaseline is the form snapshot taken when the editor opened;
	// saving is allowed only when the form has drifted from it.
	editBaseline [6]string

	pendingDelete domain.Task
	confirmChoice int

	pendingFocusTaskID string

	clipboardWrite func(string) error
	md             markdownRenderer
}

// loadedMsg carries message data through update handling.
type loadedMsg struct {
	tasks []domain.Task
	err   error
}

// actionMsg carries message data through update handling.
type actionMsg struct {
	err         error
	status      string
	reload      bool
	focusTaskID string
}

// NewModel constructs a new value for this package.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:            svc,
		status:         "loading...",
		help:           h,
		keys:           newKeyMap(),
		cardFields:     DefaultCardFieldConfig(),
		confirmDelete:  true,
		owners:         domain.DefaultRoster(),
		clipboardWrite: clipboard.WriteAll,
	}
	m.drag.Clear()
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.loadData
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.tasks = msg.tasks
		m.clampSelections()
		if m.pendingFocusTaskID != "" {
			m.focusTaskByID(m.pendingFocusTaskID)
			m.pendingFocusTaskID = ""
		}
		if m.status == "" || m.status == "loading..." {
			m.status = "ready"
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.status != "" {
			m.status = msg.status
		}
		if msg.focusTaskID != "" {
			m.pendingFocusTaskID = msg.focusTaskID
		}
		if msg.reload {
			return m, m.loadData
		}
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		if m.drag.Active() && !m.mouseDrag {
			return m.handleGrabModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	default:
		return m, nil
	}
}

// loadData loads required data for the current operation.
func (m Model) loadData() tea.Msg {
	tasks, err := m.svc.ListTasks(context.Background())
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{tasks: tasks}
}

// handleNormalModeKey handles normal mode key.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.reload):
		m.status = "reloading..."
		return m, m.loadData

	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.moveLeft):
		if m.selectedColumn > 0 {
			m.selectedColumn--
			m.selectedTask = 0
		}
		m.clampSelections()
		return m, nil

	case key.Matches(msg, m.keys.moveRight):
		if m.selectedColumn < len(domain.StatusOrder)-1 {
			m.selectedColumn++
			m.selectedTask = 0
		}
		m.clampSelections()
		return m, nil

	case key.Matches(msg, m.keys.moveUp):
		if m.selectedTask > 0 {
			m.selectedTask--
		}
		return m, nil

	case key.Matches(msg, m.keys.moveDown):
		if m.selectedTask < len(m.currentColumnTasks())-1 {
			m.selectedTask++
		}
		return m, nil

	case key.Matches(msg, m.keys.addTask):
		return m, m.startTaskForm(nil)

	case key.Matches(msg, m.keys.editTask):
		task, ok := m.selectedTaskInCurrentColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.startTaskForm(&task)

	case key.Matches(msg, m.keys.grabTask):
		task, ok := m.selectedTaskInCurrentColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		m.drag = board.NewSession(task)
		m.drag.HoveredIndex = m.selectedTask
		m.mouseDrag = false
		m.status = "moving: arrows place, enter drop, esc cancel"
		return m, nil

	case key.Matches(msg, m.keys.duplicateTask):
		task, ok := m.selectedTaskInCurrentColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		taskID := task.ID
		return m, func() tea.Msg {
			copied, err := m.svc.DuplicateTask(context.Background(), taskID)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "task duplicated", reload: true, focusTaskID: copied.ID}
		}

	case key.Matches(msg, m.keys.deleteTask):
		task, ok := m.selectedTaskInCurrentColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		if !m.confirmDelete {
			return m, m.deleteTaskCmd(task.ID, task.Title)
		}
		m.mode = modeConfirmDelete
		m.pendingDelete = task
		m.confirmChoice = 0
		m.status = "confirm delete"
		return m, nil

	case key.Matches(msg, m.keys.toggleTask):
		task, ok := m.selectedTaskInCurrentColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		taskID := task.ID
		return m, func() tea.Msg {
			toggled, err := m.svc.ToggleTask(context.Background(), taskID)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{
				status:      "moved to " + string(toggled.Status),
				reload:      true,
				focusTaskID: toggled.ID,
			}
		}

	case key.Matches(msg, m.keys.yankTask):
		task, ok := m.selectedTaskInCurrentColumn()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		if err := m.clipboardWrite(cardSummary(task)); err != nil {
			m.status = "copy failed: " + err.Error()
			return m, nil
		}
		m.status = "card summary copied"
		return m, nil

	case key.Matches(msg, m.keys.moveTaskLeft):
		return m.moveSelectedTask(-1)

	case key.Matches(msg, m.keys.moveTaskRight):
		return m.moveSelectedTask(1)

	default:
		return m, nil
	}
}

// handleGrabModeKey routes keys while a keyboard drag is in flight.
func (m Model) handleGrabModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.drag.Clear()
		m.status = "move cancelled"
		return m, nil

	case "h", "left":
		if idx := statusIndex(m.drag.HoveredStatus); idx > 0 {
			m.drag.HoveredStatus = domain.StatusOrder[idx-1]
			m.drag.HoveredIndex = m.hoverIndexCeiling()
		}
		return m, nil

	case "l", "right":
		if idx := statusIndex(m.drag.HoveredStatus); idx < len(domain.StatusOrder)-1 {
			m.drag.HoveredStatus = domain.StatusOrder[idx+1]
			m.drag.HoveredIndex = m.hoverIndexCeiling()
		}
		return m, nil

	case "k", "up":
		if m.drag.HoveredIndex > 0 {
			m.drag.HoveredIndex--
		}
		return m, nil

	case "j", "down":
		if m.drag.HoveredIndex < m.hoverIndexCeiling() {
			m.drag.HoveredIndex++
		}
		return m, nil

	case "enter":
		return m.dropDraggedTask()

	default:
		return m, nil
	}
}

// dropDraggedTask resolves the live drag session and clears it. The
// session is cleared before the command runs so a failed drop still
// leaves the board ready for a fresh drag.
func (m Model) dropDraggedTask() (tea.Model, tea.Cmd) {
	session := m.drag
	m.drag.Clear()
	m.mouseDrag = false
	return m, func() tea.Msg {
		if err := m.svc.DropTask(context.Background(), session); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "ready", reload: true, focusTaskID: session.DraggedTaskID}
	}
}

// hoverIndexCeiling returns the largest valid insertion index for the
// hovered column, with the dragged card excluded from counting.
func (m Model) hoverIndexCeiling() int {
	return board.InsertionPoints(m.tasks, m.drag.HoveredStatus, m.drag.DraggedTaskID) - 1
}

// moveSelectedTask shifts the selected task one column left or right.
func (m Model) moveSelectedTask(delta int) (tea.Model, tea.Cmd) {
	task, ok := m.selectedTaskInCurrentColumn()
	if !ok {
		m.status = "no task selected"
		return m, nil
	}
	idx := statusIndex(task.Status) + delta
	if idx < 0 || idx >= len(domain.StatusOrder) {
		return m, nil
	}
	target := domain.StatusOrder[idx]
	taskID := task.ID
	m.selectedColumn = idx
	return m, func() tea.Msg {
		if err := m.svc.MoveTask(context.Background(), taskID, target); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "moved to " + string(target), reload: true, focusTaskID: taskID}
	}
}

// deleteTaskCmd builds the delete command for a task.
func (m Model) deleteTaskCmd(taskID, title string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DeleteTask(context.Background(), taskID); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "deleted: " + truncate(title, 36), reload: true}
	}
}

// handleInputModeKey handles input mode key.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmDelete {
		switch msg.String() {
		case "esc", "n":
			m.mode = modeNone
			m.pendingDelete = domain.Task{}
			m.status = "cancelled"
			return m, nil
		case "h", "left", "l", "right":
			if m.confirmChoice == 0 {
				m.confirmChoice = 1
			} else {
				m.confirmChoice = 0
			}
			return m, nil
		case "y":
			task := m.pendingDelete
			m.mode = modeNone
			m.pendingDelete = domain.Task{}
			m.confirmChoice = 0
			return m, m.deleteTaskCmd(task.ID, task.Title)
		case "enter":
			task := m.pendingDelete
			m.mode = modeNone
			m.pendingDelete = domain.Task{}
			if m.confirmChoice == 1 {
				m.confirmChoice = 0
				m.status = "cancelled"
				return m, nil
			}
			m.confirmChoice = 0
			return m, m.deleteTaskCmd(task.ID, task.Title)
		default:
			return m, nil
		}
	}

	// modeAddTask or modeEditTask
	switch {
	case msg.Code == tea.KeyEscape || msg.String() == "esc":
		m.closeTaskForm()
		m.status = "cancelled"
		return m, nil

	case msg.Code == tea.KeyTab || msg.String() == "tab" || msg.String() == "ctrl+i" || msg.String() == "down":
		return m, m.focusTaskFormField(m.formFocus + 1)

	case msg.String() == "shift+tab" || msg.String() == "backtab" || msg.String() == "up":
		return m, m.focusTaskFormField(m.formFocus - 1)

	case msg.String() == "ctrl+s":
		return m.submitTaskForm()

	case msg.String() == "ctrl+d":
		if m.mode != modeEditTask {
			return m, nil
		}
		taskID := m.editingTaskID
		var title string
		if task, ok := m.taskByID(taskID); ok {
			title = task.Title
		}
		m.closeTaskForm()
		return m, m.deleteTaskCmd(taskID, title)

	case msg.Code == tea.KeyEnter || msg.String() == "enter":
		return m.submitTaskForm()

	default:
		if m.formFocus == taskFieldPriority {
			switch msg.String() {
			case "h", "left":
				m.cyclePriority(-1)
			case "l", "right":
				m.cyclePriority(1)
			}
			return m, nil
		}
		if m.formFocus == taskFieldOwner {
			switch msg.String() {
			case "h", "left":
				m.cycleOwner(-1)
				return m, nil
			case "l", "right":
				m.cycleOwner(1)
				return m, nil
			}
		}
		if len(m.formInputs) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
		return m, cmd
	}
}

// startTaskForm opens the creation dialog, or the detail editor when a
// task is given.
func (m *Model) startTaskForm(task *domain.Task) tea.Cmd {
	m.formFocus = 0
	m.priorityIdx = 1
	m.ownerIdx = 0
	m.formInputs = []textinput.Model{
		newModalInput("", "task title (required)", "", 120),
		newModalInput("", "owner", "", 60),
		newModalInput("", "low | medium | high", "", 16),
		newModalInput("", domain.DueDateLayout, "", 16),
		newModalInput("", "cost (hours)", "", 12),
		newModalInput("", "rating bump 0..1", "", 8),
	}
	m.formInputs[taskFieldPriority].SetValue(string(priorityOptions[m.priorityIdx]))
	if names := m.owners.Owners(); len(names) > 0 {
		m.formInputs[taskFieldOwner].SetValue(names[0])
	}
	if task != nil {
		m.formInputs[taskFieldTitle].SetValue(task.Title)
		m.formInputs[taskFieldOwner].SetValue(task.Owner)
		m.priorityIdx = priorityIndex(task.Priority)
		m.formInputs[taskFieldPriority].SetValue(string(priorityOptions[m.priorityIdx]))
		m.formInputs[taskFieldDue].SetValue(task.DueDateString())
		m.formInputs[taskFieldCost].SetValue(formatFloat(task.Cost))
		m.formInputs[taskFieldBump].SetValue(formatFloat(task.RatingBump))
		m.ownerIdx = m.ownerIndex(task.Owner)
		m.mode = modeEditTask
		m.editingTaskID = task.ID
		m.editBaseline = m.taskFormValues()
		m.status = "edit task"
	} else {
		m.mode = modeAddTask
		m.editingTaskID = ""
		m.status = "new task"
	}
	return m.focusTaskFormField(0)
}

// focusTaskFormField focuses task form field.
func (m *Model) focusTaskFormField(idx int) tea.Cmd {
	if len(m.formInputs) == 0 {
		return nil
	}
	idx = clamp(idx, 0, len(m.formInputs)-1)
	m.formFocus = idx
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	// priority and owner cycle with h/l instead of typed input
	if idx == taskFieldPriority || idx == taskFieldOwner {
		return nil
	}
	return m.formInputs[idx].Focus()
}

// closeTaskForm resets all form state.
func (m *Model) closeTaskForm() {
	m.mode = modeNone
	m.formInputs = nil
	m.formFocus = 0
	m.editingTaskID = ""
	m.editBaseline = [6]string{}
}

// taskFormValues snapshots the form fields in index order.
func (m Model) taskFormValues() [6]string {
	var vals [6]string
	for i := range m.formInputs {
		if i >= len(vals) {
			break
		}
		vals[i] = strings.TrimSpace(m.formInputs[i].Value())
	}
	return vals
}

// taskFormDirty reports whether the editor form drifted from the
// snapshot taken when it opened.
func (m Model) taskFormDirty() bool {
	return m.taskFormValues() != m.editBaseline
}

// submitTaskForm validates the form and issues the create or update
// command. Validation failures keep the form open with a status note.
func (m Model) submitTaskForm() (tea.Model, tea.Cmd) {
	vals := m.taskFormValues()

	in, err := parseTaskForm(vals)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	if canonical, ok := m.owners.Normalize(in.Owner); ok {
		in.Owner = canonical
	}

	switch m.mode {
	case modeAddTask:
		m.closeTaskForm()
		return m, func() tea.Msg {
			created, addErr := m.svc.AddTask(context.Background(), in)
			if addErr != nil {
				return actionMsg{err: addErr}
			}
			return actionMsg{status: "task added", reload: true, focusTaskID: created.ID}
		}

	case modeEditTask:
		if !m.taskFormDirty() {
			m.status = "no changes to save"
			return m, nil
		}
		taskID := m.editingTaskID
		// the editor never shows provenance, so carry it through untouched
		if task, ok := m.taskByID(taskID); ok {
			in.Provenance = task.Provenance
		}
		m.closeTaskForm()
		return m, func() tea.Msg {
			updated, updateErr := m.svc.UpdateTask(context.Background(), taskID, in)
			if updateErr != nil {
				return actionMsg{err: updateErr}
			}
			return actionMsg{status: "task updated", reload: true, focusTaskID: updated.ID}
		}

	default:
		return m, nil
	}
}

// parseTaskForm turns raw form values into a task input. Status is left
// empty: creation forces active, editing keeps the current column.
func parseTaskForm(vals [6]string) (domain.TaskInput, error) {
	title := vals[taskFieldTitle]
	if title == "" {
		return domain.TaskInput{}, errors.New("title required")
	}
	owner := vals[taskFieldOwner]
	if owner == "" {
		return domain.TaskInput{}, errors.New("owner required")
	}

	priority := domain.Priority(strings.ToLower(vals[taskFieldPriority]))
	if priority == "" {
		priority = domain.PriorityMedium
	}
	switch priority {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
	default:
		return domain.TaskInput{}, errors.New("priority must be low|medium|high")
	}

	due, err := domain.ParseDueDate(vals[taskFieldDue])
	if err != nil {
		return domain.TaskInput{}, errors.New("due date must be " + domain.DueDateLayout)
	}

	cost := 0.0
	if raw := vals[taskFieldCost]; raw != "" {
		cost, err = strconv.ParseFloat(raw, 64)
		if err != nil || cost < 0 {
			return domain.TaskInput{}, errors.New("cost must be a non-negative number")
		}
	}

	bump := 0.0
	if raw := vals[taskFieldBump]; raw != "" {
		bump, err = strconv.ParseFloat(raw, 64)
		if err != nil || bump < 0 || bump > 1 {
			return domain.TaskInput{}, errors.New("rating bump must be between 0 and 1")
		}
	}

	return domain.TaskInput{
		Title:      title,
		Owner:      owner,
		Priority:   priority,
		DueDate:    due,
		Cost:       cost,
		RatingBump: bump,
	}, nil
}

// cyclePriority rotates the priority field through the known options.
func (m *Model) cyclePriority(delta int) {
	if len(m.formInputs) <= taskFieldPriority {
		return
	}
	m.priorityIdx = wrapIndex(m.priorityIdx, delta, len(priorityOptions))
	m.formInputs[taskFieldPriority].SetValue(string(priorityOptions[m.priorityIdx]))
}

// cycleOwner rotates the owner field through the roster.
func (m *Model) cycleOwner(delta int) {
	names := m.owners.Owners()
	if len(names) == 0 || len(m.formInputs) <= taskFieldOwner {
		return
	}
	m.ownerIdx = wrapIndex(m.ownerIdx, delta, len(names))
	m.formInputs[taskFieldOwner].SetValue(names[m.ownerIdx])
}

// ownerIndex finds a roster index for the given name, defaulting to 0.
func (m Model) ownerIndex(name string) int {
	for i, candidate := range m.owners.Owners() {
		if strings.EqualFold(candidate, name) {
			return i
		}
	}
	return 0
}

// handleMouseWheel handles mouse wheel.
func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNone || m.help.ShowAll {
		return m, nil
	}
	tasks := m.currentColumnTasks()
	if len(tasks) == 0 {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		if m.selectedTask > 0 {
			m.selectedTask--
		}
	case tea.MouseWheelDown:
		if m.selectedTask < len(tasks)-1 {
			m.selectedTask++
		}
	}
	return m, nil
}

// handleMouseClick selects the card under the pointer and opens a drag
// session. Releasing without moving resolves as a plain selection.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNone || m.help.ShowAll {
		return m, nil
	}
	if msg.Button != tea.MouseLeft {
		return m, nil
	}

	colIdx, ok := m.columnAtX(msg.X)
	if !ok {
		return m, nil
	}
	m.selectedColumn = colIdx

	tasks := m.currentColumnTasks()
	if len(tasks) == 0 {
		m.clampSelections()
		return m, nil
	}
	row := msg.Y - m.boardTop()
	if row < 2 {
		m.clampSelections()
		return m, nil
	}
	m.selectedTask = clamp(m.cardIndexAtRow(tasks, row-2), 0, len(tasks)-1)

	task := tasks[m.selectedTask]
	m.drag = board.NewSession(task)
	m.mouseDrag = true
	return m, nil
}

// handleMouseMotion updates the hovered drop zone while a pointer drag
// is in flight.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if !m.drag.Active() || !m.mouseDrag {
		return m, nil
	}
	colIdx, ok := m.columnAtX(msg.X)
	if !ok {
		return m, nil
	}
	m.drag.HoveredStatus = domain.StatusOrder[colIdx]
	row := msg.Y - m.boardTop() - 2
	m.drag.HoveredIndex = clamp(m.insertionIndexAtRow(row), 0, m.hoverIndexCeiling())
	return m, nil
}

// handleMouseRelease resolves a pointer drag. The session is cleared
// unconditionally so the next press starts clean.
func (m Model) handleMouseRelease(_ tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	if !m.drag.Active() || !m.mouseDrag {
		return m, nil
	}
	return m.dropDraggedTask()
}

// columnAtX hit-tests a pointer column from its X coordinate.
func (m Model) columnAtX(x int) (int, bool) {
	// border + padding approximation, mirrored from column rendering
	colWidth := m.columnWidth() + 7
	for idx := range domain.StatusOrder {
		start := idx * colWidth
		end := start + colWidth
		if x >= start && x < end {
			return idx, true
		}
	}
	return 0, false
}

// cardIndexAtRow maps a row inside a column body to a card index.
func (m Model) cardIndexAtRow(tasks []domain.Task, row int) int {
	if len(tasks) == 0 {
		return 0
	}
	if row <= 0 {
		return 0
	}
	current := 0
	for idx, task := range tasks {
		start := current
		span := m.cardSpan(task)
		if idx < len(tasks)-1 {
			span++
		}
		end := start + span - 1
		if row >= start && row <= end {
			return idx
		}
		current += span
	}
	return len(tasks) - 1
}

// insertionIndexAtRow maps a row inside the hovered column body to a
// drop-zone index, counting the dragged card out.
func (m Model) insertionIndexAtRow(row int) int {
	tasks := make([]domain.Task, 0)
	for _, task := range board.Column(m.tasks, m.drag.HoveredStatus) {
		if task.ID != m.drag.DraggedTaskID {
			tasks = append(tasks, task)
		}
	}
	if len(tasks) == 0 || row <= 0 {
		return 0
	}
	current := 0
	for idx, task := range tasks {
		span := m.cardSpan(task)
		if idx < len(tasks)-1 {
			span++
		}
		mid := current + span/2
		if row <= mid {
			return idx
		}
		current += span
	}
	return len(tasks)
}

// cardSpan returns the rendered line count of a card.
func (m Model) cardSpan(task domain.Task) int {
	if m.cardMeta(task) != "" {
		return 2
	}
	return 1
}

// currentColumnTasks returns current column tasks.
func (m Model) currentColumnTasks() []domain.Task {
	return board.Column(m.tasks, domain.StatusOrder[clamp(m.selectedColumn, 0, len(domain.StatusOrder)-1)])
}

// selectedTaskInCurrentColumn returns selected task in current column.
func (m Model) selectedTaskInCurrentColumn() (domain.Task, bool) {
	tasks := m.currentColumnTasks()
	if len(tasks) == 0 {
		return domain.Task{}, false
	}
	idx := clamp(m.selectedTask, 0, len(tasks)-1)
	return tasks[idx], true
}

// clampSelections clamps selections.
func (m *Model) clampSelections() {
	m.selectedColumn = clamp(m.selectedColumn, 0, len(domain.StatusOrder)-1)
	colTasks := m.currentColumnTasks()
	if len(colTasks) == 0 {
		m.selectedTask = 0
		return
	}
	m.selectedTask = clamp(m.selectedTask, 0, len(colTasks)-1)
}

// focusTaskByID focuses task by id.
func (m *Model) focusTaskByID(taskID string) {
	if strings.TrimSpace(taskID) == "" {
		return
	}
	for colIdx, status := range domain.StatusOrder {
		for taskIdx, task := range board.Column(m.tasks, status) {
			if task.ID == taskID {
				m.selectedColumn = colIdx
				m.selectedTask = taskIdx
				m.clampSelections()
				return
			}
		}
	}
}

// taskByID returns task by id.
func (m Model) taskByID(taskID string) (domain.Task, bool) {
	for _, task := range m.tasks {
		if task.ID == taskID {
			return task, true
		}
	}
	return domain.Task{}, false
}

// cardSummary flattens one task into a single shareable line plus its
// source quote.
func cardSummary(task domain.Task) string {
	line := fmt.Sprintf("%s • %s • %s • due %s • cost %s",
		task.Title, task.Owner, task.Priority, task.DueDateString(), formatFloat(task.Cost))
	if quote := strings.TrimSpace(task.Provenance.Quote); quote != "" {
		line += "\n> " + quote
	}
	return line
}

// statusIndex returns the column index of a status.
func statusIndex(status domain.Status) int {
	for idx, candidate := range domain.StatusOrder {
		if candidate == status {
			return idx
		}
	}
	return 0
}

// priorityIndex returns the option index of a priority.
func priorityIndex(priority domain.Priority) int {
	for idx, candidate := range priorityOptions {
		if candidate == priority {
			return idx
		}
	}
	return 1
}

func newModalInput(prompt, placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	if value != "" {
		in.SetValue(value)
	}
	return in
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func wrapIndex(current, delta, length int) int {
	if length <= 0 {
		return 0
	}
	next := (current + delta) % length
	if next < 0 {
		next += length
	}
	return next
}

// overdueAt reports whether a task counts as overdue for display.
func overdueAt(task domain.Task, now time.Time) bool {
	if task.Status == domain.StatusCompleted {
		return false
	}
	return task.DueDate.Before(now.UTC().Truncate(24 * time.Hour))
}
