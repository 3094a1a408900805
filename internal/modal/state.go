// Package modal implements the input flows for adding lists and tasks and for
// viewing task details.
package modal

// State is the active modal. The concrete types below are the only implementations.
type State interface {
	modalState()
}

// Closed means no modal is shown.
type Closed struct{}

// AddingList collects a new list title.
type AddingList struct{}

// AddingTask collects text and a due date for a task in ListID.
type AddingTask struct {
	ListID string
}

// ViewingTask shows one task read-only.
type ViewingTask struct {
	ListID string
	TaskID string
}

func (Closed) modalState()      {}
func (AddingList) modalState()  {}
func (AddingTask) modalState()  {}
func (ViewingTask) modalState() {}

// IsOpen reports whether s is anything but Closed.
func IsOpen(s State) bool {
	switch s.(type) {
	case nil, Closed:
		return false
	default:
		return true
	}
}

// Field identifies one input of the modal.
type Field int

// FieldText and FieldDueDate enumerate modal inputs.
const (
	FieldText Field = iota
	FieldDueDate
)

// Detail is the read-only payload of ViewingTask.
type Detail struct {
	Found     bool
	Text      string
	Completed bool
	Date      string
	Time      string
}

// Layout describes what a view layer should draw for the current state.
type Layout struct {
	Open            bool
	Title           string
	TextPlaceholder string
	DatePlaceholder string
	ShowText        bool
	ShowDate        bool
	ShowSave        bool
	CancelLabel     string
	Detail          *Detail
}
