package listquery

import (
	"roster-cli/internal/query"

	tea "github.com/charmbracelet/bubbletea"
)

// Router is the location the list mirrors itself into. Writes always replace the
// current entry so query changes never add history.
type Router interface {
	Replace(location string)
}

type nopRouter struct{}

func (nopRouter) Replace(string) {}

// Navigate applies an externally supplied location (start-up, back/forward, a pasted
// link). Every input cell is overwritten from the decoded query, a pending search
// debounce is dropped, and the page is taken as-is rather than reset.
func (c *Controller) Navigate(location string) tea.Cmd {
	_, values, err := query.ParseLocation(location)
	q := query.Default()
	if err != nil {
		c.sink.Emit(Event{Kind: EventDecodeFallback, Location: location, Err: err})
	} else {
		var derr error
		q, derr = query.DecodeStrict(values)
		for _, e := range unjoin(derr) {
			c.sink.Emit(Event{Kind: EventDecodeFallback, Location: location, Err: e})
		}
	}
	q = q.Normalize()

	c.sink.Emit(Event{Kind: EventNavigated, Location: location, Query: q})
	c.in = inputsFrom(q)
	c.textVersion++
	c.settledText = q.Text
	return c.compose()
}

func (c *Controller) writeLocation(q query.Query) {
	loc := query.Location(q)
	c.router.Replace(loc)
	c.sink.Emit(Event{Kind: EventLocationWritten, Location: loc, Query: q})
}

func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
