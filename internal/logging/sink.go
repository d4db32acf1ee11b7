package logging

import (
	"roster-cli/internal/listquery"
	"roster-cli/internal/query"

	"github.com/rs/zerolog"
)

// EventSink writes list controller events as structured log lines. Routine events go to
// debug; fetch failures and decode fallbacks are warnings.
type EventSink struct {
	log zerolog.Logger
}

func NewEventSink(l zerolog.Logger) *EventSink {
	return &EventSink{log: l.With().Str("component", "listquery").Logger()}
}

func (s *EventSink) Emit(e listquery.Event) {
	var ev *zerolog.Event
	switch {
	case e.Kind == listquery.EventDecodeFallback,
		e.Kind == listquery.EventDeleteFailed,
		e.Kind == listquery.EventDepartmentsFailed,
		e.Kind == listquery.EventFetchSettled && e.Err != nil:
		ev = s.log.Warn()
	case e.Kind == listquery.EventViewChanged:
		ev = s.log.Trace()
	default:
		ev = s.log.Debug()
	}
	if e.Seq != 0 {
		ev = ev.Int("seq", e.Seq)
	}
	if e.Location != "" {
		ev = ev.Str("location", e.Location)
	}
	if e.Query != (query.Query{}) {
		ev = ev.Str("query", query.Encode(e.Query).Encode())
	}
	if e.Kind == listquery.EventFetchSettled || e.Kind == listquery.EventViewChanged {
		ev = ev.Str("phase", e.Phase.String()).Int("total", e.Total)
	}
	if e.EmployeeID != 0 {
		ev = ev.Int("employee_id", e.EmployeeID)
	}
	if e.Err != nil {
		ev = ev.Err(e.Err)
	}
	ev.Msg(string(e.Kind))
}
