package tui

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/hylla/cards/internal/app"
	"github.com/hylla/cards/internal/domain"
	"github.com/hylla/cards/internal/modal"
	"github.com/hylla/cards/internal/session"
	"github.com/hylla/cards/internal/view"
)

// Dispatcher runs user gestures and projects the board.
type Dispatcher interface {
	Dispatch(context.Context, session.Action) (session.Result, error)
	Board(context.Context) (view.Board, error)
}

// inputMode is the key-handling mode.
type inputMode int

// modeNone and related constants define key-handling modes.
const (
	modeNone inputMode = iota
	modeAddList
	modeAddTask
	modeViewTask
	modeConfirm
)

// Modal input limits.
const (
	textInputLimit = 200
	dateInputLimit = 16
)

// confirmAction is a destructive action waiting for a second keypress.
type confirmAction struct {
	label  string
	action session.Action
}

// Model is the Bubble Tea model for the cards board.
type Model struct {
	svc Dispatcher

	ready  bool
	width  int
	height int
	err    error
	status string

	help help.Model
	keys keyMap

	confirm        ConfirmConfig
	toastDuration  time.Duration
	writeClipboard func(string) error

	board        view.Board
	selectedList int
	selectedRow  int

	mode      inputMode
	layout    modal.Layout
	textInput textinput.Model
	dateInput textinput.Model
	formFocus int
	pending   confirmAction

	toast    app.Notification
	toastSeq int

	detail *markdownRenderer
}

// boardLoadedMsg carries the initial projection.
type boardLoadedMsg struct {
	board view.Board
	err   error
}

// toastExpiredMsg clears the toast with a matching sequence number.
type toastExpiredMsg struct {
	seq int
}

// NewModel constructs a board model over svc.
func NewModel(svc Dispatcher, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:            svc,
		status:         "loading...",
		help:           h,
		keys:           newKeyMap(),
		confirm:        ConfirmConfig{DeleteAll: true},
		toastDuration:  3 * time.Second,
		writeClipboard: clipboard.WriteAll,
		textInput:      newModalInput("", "", "", textInputLimit),
		dateInput:      newModalInput("", "", "", dateInputLimit),
		detail:         &markdownRenderer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init loads the first board.
func (m Model) Init() tea.Cmd {
	return m.loadBoard
}

// Update routes messages by mode.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.board = msg.board
		m.clampSelections()
		m.status = "ready"
		return m, nil

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = app.Notification{}
		}
		return m, nil

	case tea.KeyPressMsg:
		switch m.mode {
		case modeAddList, modeAddTask:
			return m.handleFormKey(msg)
		case modeViewTask:
			return m.handleDetailKey(msg)
		case modeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleBoardKey(msg)
		}

	default:
		return m, nil
	}
}

// loadBoard projects the board without dispatching.
func (m Model) loadBoard() tea.Msg {
	board, err := m.svc.Board(context.Background())
	return boardLoadedMsg{board: board, err: err}
}

// dispatch runs one action synchronously and applies its result.
func (m Model) dispatch(action session.Action) (Model, tea.Cmd) {
	res, err := m.svc.Dispatch(context.Background(), action)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil

	prevLists := len(m.board.Lists)
	prevMode := m.mode
	m.board = res.Board
	m.layout = res.Modal
	m.mode = modeForState(res.State)
	if len(m.board.Lists) > prevLists && prevMode == modeAddList {
		m.selectedList = len(m.board.Lists) - 1
		m.selectedRow = 0
	}
	m.clampSelections()
	if (m.mode == modeAddList || m.mode == modeAddTask) && m.mode != prevMode {
		m.startForm()
	}

	var cmd tea.Cmd
	if n := len(res.Notifications); n > 0 {
		cmd = m.showToast(res.Notifications[n-1])
	}
	return m, cmd
}

// modeForState maps a modal state to a key-handling mode.
func modeForState(state modal.State) inputMode {
	switch state.(type) {
	case modal.AddingList:
		return modeAddList
	case modal.AddingTask:
		return modeAddTask
	case modal.ViewingTask:
		return modeViewTask
	default:
		return modeNone
	}
}

// handleBoardKey handles keys while no modal is open.
func (m Model) handleBoardKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.String() == "esc":
		m.help.ShowAll = false
		return m, nil
	case key.Matches(msg, m.keys.moveLeft):
		if m.selectedList > 0 {
			m.selectedList--
			m.selectedRow = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.moveRight):
		if m.selectedList < len(m.board.Lists)-1 {
			m.selectedList++
			m.selectedRow = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		if list, ok := m.currentList(); ok && m.selectedRow < len(list.Rows)-1 {
			m.selectedRow++
		}
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil
	case key.Matches(msg, m.keys.newList):
		return m.dispatch(session.OpenAddList{})
	case key.Matches(msg, m.keys.newTask):
		list, ok := m.currentList()
		if !ok {
			m.status = "create a list first (N)"
			return m, nil
		}
		return m.dispatch(session.OpenAddTask{ListID: list.ID})
	case key.Matches(msg, m.keys.viewTask):
		row, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		return m.dispatch(session.OpenViewTask{ListID: row.ListID, TaskID: row.TaskID})
	case key.Matches(msg, m.keys.toggleTask):
		row, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		return m.dispatch(session.ToggleTask{ListID: row.ListID, TaskID: row.TaskID})
	case key.Matches(msg, m.keys.deleteTask):
		row, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		m.status = "task deleted"
		return m.dispatch(session.DeleteTask{ListID: row.ListID, TaskID: row.TaskID})
	case key.Matches(msg, m.keys.deleteList):
		list, ok := m.currentList()
		if !ok {
			return m, nil
		}
		return m.confirmOrDispatch(m.confirm.DeleteList, fmt.Sprintf("Delete list %q", list.Title), session.DeleteList{ListID: list.ID})
	case key.Matches(msg, m.keys.deleteAll):
		if !m.board.ShowDeleteAll {
			m.status = "nothing to delete"
			return m, nil
		}
		return m.confirmOrDispatch(m.confirm.DeleteAll, "Delete all task lists", session.DeleteAllLists{})
	case key.Matches(msg, m.keys.cycleFilter):
		if list, ok := m.currentList(); ok {
			return m.setFilter(list.ID, list.Filter.Next())
		}
		return m, nil
	case key.Matches(msg, m.keys.filterAll):
		return m.setCurrentFilter(domain.FilterAll)
	case key.Matches(msg, m.keys.filterActive):
		return m.setCurrentFilter(domain.FilterActive)
	case key.Matches(msg, m.keys.filterDone):
		return m.setCurrentFilter(domain.FilterCompleted)
	default:
		return m, nil
	}
}

// handleFormKey handles keys while the add-list or add-task modal is open.
func (m Model) handleFormKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.status = "cancelled"
		return m.dispatch(session.Cancel{})
	case key.Matches(msg, m.keys.save):
		return m.dispatch(session.Save{})
	case key.Matches(msg, m.keys.nextField):
		if m.layout.ShowDate {
			m.focusFormField((m.formFocus + 1) % 2)
		}
		return m, nil
	}

	if m.formFocus == 1 {
		m.dateInput, _ = m.dateInput.Update(msg)
		return m.dispatch(session.SetInput{Field: modal.FieldDueDate, Value: m.dateInput.Value()})
	}
	m.textInput, _ = m.textInput.Update(msg)
	return m.dispatch(session.SetInput{Field: modal.FieldText, Value: m.textInput.Value()})
}

// handleDetailKey handles keys while the task detail modal is open.
func (m Model) handleDetailKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.copyTask):
		detail := m.layout.Detail
		if detail == nil || !detail.Found {
			m.status = "nothing to copy"
			return m, nil
		}
		if err := m.writeClipboard(detail.Text); err != nil {
			m.status = "copy failed: " + err.Error()
			return m, nil
		}
		m.status = "copied task text"
		return m, nil
	case key.Matches(msg, m.keys.cancel), msg.String() == "enter", key.Matches(msg, m.keys.quit):
		return m.dispatch(session.Cancel{})
	default:
		return m, nil
	}
}

// handleConfirmKey resolves a pending destructive action.
func (m Model) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.confirmYes):
		action := m.pending.action
		m.pending = confirmAction{}
		m.mode = modeNone
		m.status = "ready"
		return m.dispatch(action)
	case key.Matches(msg, m.keys.confirmNo):
		m.pending = confirmAction{}
		m.mode = modeNone
		m.status = "cancelled"
		return m, nil
	default:
		return m, nil
	}
}

// confirmOrDispatch asks for confirmation when required.
func (m Model) confirmOrDispatch(required bool, label string, action session.Action) (tea.Model, tea.Cmd) {
	if !required {
		return m.dispatch(action)
	}
	m.pending = confirmAction{label: label, action: action}
	m.mode = modeConfirm
	return m, nil
}

func (m Model) setCurrentFilter(filter domain.Filter) (tea.Model, tea.Cmd) {
	list, ok := m.currentList()
	if !ok {
		return m, nil
	}
	return m.setFilter(list.ID, filter)
}

func (m Model) setFilter(listID string, filter domain.Filter) (tea.Model, tea.Cmd) {
	m.selectedRow = 0
	m.status = "showing " + string(filter)
	return m.dispatch(session.SetFilter{ListID: listID, Filter: filter})
}

// startForm resets modal inputs for the current layout.
func (m *Model) startForm() {
	m.textInput = newModalInput("", m.layout.TextPlaceholder, "", textInputLimit)
	m.dateInput = newModalInput("", m.layout.DatePlaceholder, "", dateInputLimit)
	m.focusFormField(0)
}

// focusFormField focuses text (0) or due date (1).
func (m *Model) focusFormField(idx int) {
	m.formFocus = idx
	if idx == 1 {
		m.textInput.Blur()
		m.dateInput.Focus()
		return
	}
	m.dateInput.Blur()
	m.textInput.Focus()
}

// newModalInput constructs a modal text input.
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

// showToast replaces the visible notification and schedules its expiry.
func (m *Model) showToast(n app.Notification) tea.Cmd {
	m.toast = n
	m.toastSeq++
	if m.toastDuration <= 0 {
		return nil
	}
	seq := m.toastSeq
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m Model) currentList() (view.ListView, bool) {
	if len(m.board.Lists) == 0 {
		return view.ListView{}, false
	}
	return m.board.Lists[clamp(m.selectedList, 0, len(m.board.Lists)-1)], true
}

func (m Model) currentRow() (view.Row, bool) {
	list, ok := m.currentList()
	if !ok || len(list.Rows) == 0 {
		return view.Row{}, false
	}
	return list.Rows[clamp(m.selectedRow, 0, len(list.Rows)-1)], true
}

// clampSelections keeps focus inside the projected board.
func (m *Model) clampSelections() {
	m.selectedList = clamp(m.selectedList, 0, len(m.board.Lists)-1)
	list, ok := m.currentList()
	if !ok {
		m.selectedRow = 0
		return
	}
	m.selectedRow = clamp(m.selectedRow, 0, len(list.Rows)-1)
}

// View renders the board with any active overlay.
func (m Model) View() tea.View {
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}
	v := tea.NewView(m.viewContent())
	v.AltScreen = true
	return v
}

// viewContent renders the full screen as a string.
func (m Model) viewContent() string {
	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)
	errorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

	header := titleStyle.Render("cards") + statusStyle.Render("  ["+m.modeLabel()+"]")
	if !m.board.Empty {
		header += statusStyle.Render(fmt.Sprintf("  %d lists", len(m.board.Lists)))
	}
	sections := []string{header, "", m.renderBoard(accent, muted, dim)}
	if toast := m.renderToast(); toast != "" {
		sections = append(sections, toast)
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render("error: "+m.err.Error()))
	}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)))
	}
	fullContent := content + "\n" + helpLine

	overlay := m.renderOverlay(accent, muted, m.width-8)
	if m.help.ShowAll && m.mode == modeNone {
		overlay = m.renderHelpOverlay(accent, muted, m.width-8)
	}
	if overlay != "" {
		overlayHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			overlayHeight = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, overlayHeight))
	}
	return fullContent
}

// renderBoard draws the visible window of list cards.
func (m Model) renderBoard(accent, muted, dim color.Color) string {
	hintStyle := lipgloss.NewStyle().Foreground(muted)
	if m.board.Empty {
		return strings.Join([]string{
			m.board.EmptyMessage,
			hintStyle.Render("Press N to create your first list."),
		}, "\n")
	}

	cardWidth := m.cardWidth()
	visible := max(1, m.width/(cardWidth+cardOverhead))
	start, end := windowBounds(len(m.board.Lists), m.selectedList, visible)

	baseStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(0, 1).
		MarginRight(1).
		Width(cardWidth)
	selectedStyle := baseStyle.BorderForeground(accent)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	rowStyle := lipgloss.NewStyle()
	selectedRowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Strikethrough(true)

	cards := make([]string, 0, end-start)
	for idx := start; idx < end; idx++ {
		list := m.board.Lists[idx]
		focused := idx == m.selectedList
		lines := []string{
			titleStyle.Render(truncate(list.Title, cardWidth-2)),
			m.renderFilterButtons(list, accent, muted),
			"",
		}
		if len(list.Rows) == 0 {
			lines = append(lines, hintStyle.Render(list.Empty))
		}
		for rowIdx, row := range list.Rows {
			selected := focused && rowIdx == m.selectedRow
			prefix := "  "
			if selected {
				prefix = "│ "
			}
			check := "[ ]"
			if row.Completed {
				check = "[x]"
			}
			text := truncate(row.Text, max(1, cardWidth-8))
			style := rowStyle
			switch {
			case selected:
				style = selectedRowStyle
			case row.Completed:
				style = doneStyle
			}
			lines = append(lines, prefix+check+" "+style.Render(text))
			if row.DueLabel != "" {
				lines = append(lines, "      "+hintStyle.Render(row.DueLabel))
			}
		}
		content := strings.Join(lines, "\n")
		if focused {
			cards = append(cards, selectedStyle.Render(content))
		} else {
			cards = append(cards, baseStyle.Render(content))
		}
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if start > 0 || end < len(m.board.Lists) {
		board += "\n" + hintStyle.Render(fmt.Sprintf("lists %d-%d of %d", start+1, end, len(m.board.Lists)))
	}
	return board
}

// renderFilterButtons draws the per-list filter toggles.
func (m Model) renderFilterButtons(list view.ListView, accent, muted color.Color) string {
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	idleStyle := lipgloss.NewStyle().Foreground(muted)
	parts := make([]string, 0, len(list.FilterButtons))
	for _, button := range list.FilterButtons {
		if button.Active {
			parts = append(parts, activeStyle.Render("["+button.Label+"]"))
			continue
		}
		parts = append(parts, idleStyle.Render(button.Label))
	}
	return strings.Join(parts, " ")
}

// renderToast draws the current notification.
func (m Model) renderToast() string {
	if strings.TrimSpace(m.toast.Message) == "" {
		return ""
	}
	bg := lipgloss.Color("33")
	switch m.toast.Severity {
	case app.SeverityError:
		bg = lipgloss.Color("160")
	case app.SeveritySuccess:
		bg = lipgloss.Color("28")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(bg).
		Padding(0, 1).
		Render(m.toast.Message)
}

// renderOverlay draws the modal or confirmation box, if any.
func (m Model) renderOverlay(accent, muted color.Color, maxWidth int) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	boxWidth := clamp(maxWidth, 32, 64)
	if maxWidth > 0 {
		boxStyle = boxStyle.Width(boxWidth)
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)
	buttonStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("237"))

	switch m.mode {
	case modeAddList, modeAddTask:
		textIn := m.textInput
		textIn.SetWidth(max(16, boxWidth-6))
		lines := []string{titleStyle.Render(m.layout.Title), "", textIn.View()}
		if m.layout.ShowDate {
			dateIn := m.dateInput
			dateIn.SetWidth(max(16, boxWidth-6))
			lines = append(lines, hintStyle.Render("due"), dateIn.View())
		}
		buttons := []string{}
		if m.layout.ShowSave {
			buttons = append(buttons, buttonStyle.Render("Save"))
		}
		buttons = append(buttons, buttonStyle.Render(m.layout.CancelLabel))
		lines = append(lines, "", strings.Join(buttons, " "))
		lines = append(lines, hintStyle.Render(m.help.ShortHelpView(m.keys.modalHelp(m.layout.ShowDate))))
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeViewTask:
		lines := []string{titleStyle.Render(m.layout.Title)}
		if m.layout.Detail != nil {
			lines = append(lines, m.detail.render(detailMarkdown(*m.layout.Detail), boxWidth-4))
		}
		lines = append(lines, "", buttonStyle.Render(m.layout.CancelLabel))
		lines = append(lines, hintStyle.Render(m.help.ShortHelpView(m.keys.detailHelp())))
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeConfirm:
		lines := []string{
			titleStyle.Render("Confirm"),
			m.pending.label + "?",
			hintStyle.Render(m.help.ShortHelpView([]key.Binding{m.keys.confirmYes, m.keys.confirmNo})),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))

	default:
		return ""
	}
}

// renderHelpOverlay draws the full key reference.
func (m Model) renderHelpOverlay(accent, muted color.Color, maxWidth int) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if maxWidth > 0 {
		boxStyle = boxStyle.Width(clamp(maxWidth, 40, 96))
	}
	helpBubble := m.help
	helpBubble.ShowAll = true
	helpBubble.SetWidth(clamp(maxWidth-4, 36, 92))
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render("Keys"),
		helpBubble.View(m.keys),
		lipgloss.NewStyle().Foreground(muted).Render("? or esc to close"),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// modeLabel names the current mode for the header.
func (m Model) modeLabel() string {
	switch m.mode {
	case modeAddList:
		return "new list"
	case modeAddTask:
		return "new task"
	case modeViewTask:
		return "task details"
	case modeConfirm:
		return "confirm"
	default:
		return "board"
	}
}

// cardOverhead is border (2), padding (2) and margin (1).
const cardOverhead = 5

// cardWidth sizes cards so several fit side by side.
func (m Model) cardWidth() int {
	if len(m.board.Lists) == 0 || m.width <= 0 {
		return 28
	}
	w := (m.width - len(m.board.Lists)*cardOverhead) / len(m.board.Lists)
	return clamp(w, 24, 40)
}

// windowBounds returns a half-open window of size windowSize that keeps selected visible.
func windowBounds(total, selected, windowSize int) (int, int) {
	if total <= 0 || windowSize <= 0 {
		return 0, 0
	}
	if total <= windowSize {
		return 0, total
	}
	selected = clamp(selected, 0, total-1)
	start := max(0, selected-windowSize/2)
	end := start + windowSize
	if end > total {
		end = total
		start = max(0, end-windowSize)
	}
	return start, end
}

func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	return min(max(v, minV), maxV)
}

// fitLines pads or truncates content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		lines = append(lines, make([]string, maxLines-len(lines))...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent draws overlay centered above base, leaving the surrounding board visible.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	x := max(0, (width-lipgloss.Width(overlay))/2)
	y := max(0, (height-lipgloss.Height(overlay))/2)
	canvas := lipgloss.NewCanvas(width, height)
	canvas.Compose(lipgloss.NewLayer(fitLines(base, height)).X(0).Y(0).Z(0))
	canvas.Compose(lipgloss.NewLayer(overlay).X(x).Y(y).Z(10))
	return canvas.Render()
}

// truncate shortens s to limit runes with a trailing ellipsis.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	if limit == 1 {
		return string(rs[:1])
	}
	return string(rs[:limit-1]) + "…"
}
