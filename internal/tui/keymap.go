package tui

import "charm.land/bubbles/v2/key"

// keyMap holds board and modal bindings.
type keyMap struct {
	quit         key.Binding
	toggleHelp   key.Binding
	moveLeft     key.Binding
	moveRight    key.Binding
	moveUp       key.Binding
	moveDown     key.Binding
	newList      key.Binding
	newTask      key.Binding
	viewTask     key.Binding
	toggleTask   key.Binding
	deleteTask   key.Binding
	deleteList   key.Binding
	deleteAll    key.Binding
	cycleFilter  key.Binding
	filterAll    key.Binding
	filterActive key.Binding
	filterDone   key.Binding
	nextField    key.Binding
	save         key.Binding
	cancel       key.Binding
	copyTask     key.Binding
	confirmYes   key.Binding
	confirmNo    key.Binding
}

// newKeyMap constructs the default bindings.
func newKeyMap() keyMap {
	return keyMap{
		quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "list left")),
		moveRight:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "list right")),
		moveUp:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "task up")),
		moveDown:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "task down")),
		newList:      key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new list")),
		newTask:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		viewTask:     key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("enter/i", "task details")),
		toggleTask:   key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("space/x", "toggle done")),
		deleteTask:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		deleteList:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete list")),
		deleteAll:    key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete all lists")),
		cycleFilter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		filterAll:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "show all")),
		filterActive: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "show active")),
		filterDone:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "show completed")),
		nextField:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		save:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		copyTask:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
		confirmYes:   key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		confirmNo:    key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "keep")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.newList, k.newTask, k.viewTask, k.toggleTask, k.cycleFilter, k.toggleHelp, k.quit,
	}
}

// FullHelp returns the bindings shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.newList, k.newTask, k.viewTask, k.toggleTask, k.toggleHelp, k.quit},
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown},
		{k.cycleFilter, k.filterAll, k.filterActive, k.filterDone},
		{k.deleteTask, k.deleteList, k.deleteAll},
	}
}

// modalHelp lists bindings active while an input modal is open.
func (k keyMap) modalHelp(showDate bool) []key.Binding {
	if showDate {
		return []key.Binding{k.nextField, k.save, k.cancel}
	}
	return []key.Binding{k.save, k.cancel}
}

// detailHelp lists bindings active in the task detail modal.
func (k keyMap) detailHelp() []key.Binding {
	closeKey := k.cancel
	closeKey.SetHelp("esc/enter", "close")
	return []key.Binding{k.copyTask, closeKey}
}
