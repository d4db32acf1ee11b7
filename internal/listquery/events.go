package listquery

import "roster-cli/internal/query"

type EventKind string

const (
	EventQueryEmitted      EventKind = "query.emitted"
	EventTextDeduped       EventKind = "query.text_deduped"
	EventLocationWritten   EventKind = "location.written"
	EventNavigated         EventKind = "location.navigated"
	EventDecodeFallback    EventKind = "location.decode_fallback"
	EventFetchStarted      EventKind = "fetch.started"
	EventFetchSettled      EventKind = "fetch.settled"
	EventFetchDiscarded    EventKind = "fetch.discarded"
	EventReload            EventKind = "fetch.reload"
	EventViewChanged       EventKind = "view.changed"
	EventDeleteRequested   EventKind = "delete.requested"
	EventDeleteCancelled   EventKind = "delete.cancelled"
	EventDeleteConfirmed   EventKind = "delete.confirmed"
	EventDeleteSucceeded   EventKind = "delete.succeeded"
	EventDeleteFailed      EventKind = "delete.failed"
	EventDepartmentsLoaded EventKind = "departments.loaded"
	EventDepartmentsFailed EventKind = "departments.failed"
)

// Event is one structured observation of the controller. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind       EventKind
	Seq        int
	Query      query.Query
	Location   string
	Phase      Phase
	Total      int
	EmployeeID int
	Err        error
}

// Sink receives controller events. Implementations must not block; they are called
// from inside the Bubble Tea update loop.
type Sink interface {
	Emit(Event)
}

type NopSink struct{}

func (NopSink) Emit(Event) {}
