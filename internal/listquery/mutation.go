package listquery

import (
	"context"

	"roster-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

const DeleteFailedNotice = "Delete failed"

// RequestDelete asks for confirmation before deleting e. Nothing is sent until
// ConfirmDelete.
func (c *Controller) RequestDelete(e model.Employee) {
	c.pendingDelete = &e
	c.sink.Emit(Event{Kind: EventDeleteRequested, EmployeeID: e.ID})
}

// PendingDelete returns the employee awaiting confirmation.
func (c *Controller) PendingDelete() (model.Employee, bool) {
	if c.pendingDelete == nil {
		return model.Employee{}, false
	}
	return *c.pendingDelete, true
}

func (c *Controller) CancelDelete() {
	if c.pendingDelete == nil {
		return
	}
	c.sink.Emit(Event{Kind: EventDeleteCancelled, EmployeeID: c.pendingDelete.ID})
	c.pendingDelete = nil
}

// ConfirmDelete sends the delete for the pending employee.
func (c *Controller) ConfirmDelete() tea.Cmd {
	if c.pendingDelete == nil {
		return nil
	}
	e := *c.pendingDelete
	c.pendingDelete = nil
	c.sink.Emit(Event{Kind: EventDeleteConfirmed, EmployeeID: e.ID})

	store := c.store
	return func() tea.Msg {
		err := store.DeleteEmployee(context.Background(), e.ID)
		return DeleteDoneMsg{Employee: e, Err: err}
	}
}

// A successful delete re-runs the current query; a failed one leaves the list alone.
func (c *Controller) finishDelete(msg DeleteDoneMsg) tea.Cmd {
	if msg.Err != nil {
		c.sink.Emit(Event{Kind: EventDeleteFailed, EmployeeID: msg.Employee.ID, Err: msg.Err})
		return noticeCmd(DeleteFailedNotice, NoticeError)
	}
	c.sink.Emit(Event{Kind: EventDeleteSucceeded, EmployeeID: msg.Employee.ID})
	return tea.Batch(
		noticeCmd("Deleted "+msg.Employee.FullName(), NoticeInfo),
		c.Reload(),
	)
}
