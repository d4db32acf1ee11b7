// Package query defines the canonical employee list query and its location encoding.
//
// A Query is a plain comparable value: two queries are the same view iff they are ==
// after Normalize. Everything downstream (fetching, location writes) is gated on that.
package query

import (
	"strings"

	"roster-cli/internal/model"
)

type Status string

const (
	StatusAny      Status = ""
	StatusActive   Status = Status(model.StatusActive)
	StatusInactive Status = Status(model.StatusInactive)
	StatusOnLeave  Status = Status(model.StatusOnLeave)
)

func (s Status) Valid() bool {
	return s == StatusAny || model.EmployeeStatus(s).Valid()
}

type SortKey string

const (
	SortLastName  SortKey = "lastName"
	SortFirstName SortKey = "firstName"
	SortSalary    SortKey = "salary"
	SortHireDate  SortKey = "hireDate"
	SortStatus    SortKey = "status"
)

// SortKeys is the column order used by the TUI (1..5 shortcuts).
var SortKeys = []SortKey{SortLastName, SortFirstName, SortSalary, SortHireDate, SortStatus}

func (k SortKey) Valid() bool {
	for _, v := range SortKeys {
		if v == k {
			return true
		}
	}
	return false
}

type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

func (d SortDir) Valid() bool { return d == Asc || d == Desc }

func (d SortDir) Flip() SortDir {
	if d == Asc {
		return Desc
	}
	return Asc
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = SortLastName
	DefaultOrder    = Asc
)

// PageSizes are the sizes offered by the page-size selector.
var PageSizes = []int{10, 20, 50, 100}

type Query struct {
	Text          string  `json:"q"`
	Status        Status  `json:"status"`
	DepartmentID  int     `json:"departmentId,omitempty"`
	HasDepartment bool    `json:"hasDepartment"`
	Page          int     `json:"page"`
	PageSize      int     `json:"pageSize"`
	Sort          SortKey `json:"sort"`
	Order         SortDir `json:"order"`
}

func Default() Query {
	return Query{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     DefaultSort,
		Order:    DefaultOrder,
	}
}

// Normalize trims the text, clears the department id when no department filter is set,
// and substitutes defaults for out-of-range or unknown fields.
func (q Query) Normalize() Query {
	q.Text = strings.TrimSpace(q.Text)
	if !q.Status.Valid() {
		q.Status = StatusAny
	}
	if !q.HasDepartment {
		q.DepartmentID = 0
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if !q.Sort.Valid() {
		q.Sort = DefaultSort
	}
	if !q.Order.Valid() {
		q.Order = DefaultOrder
	}
	return q
}

func (q Query) Equal(o Query) bool {
	return q.Normalize() == o.Normalize()
}

func (q Query) WithDepartment(id int) Query {
	q.DepartmentID = id
	q.HasDepartment = true
	return q
}

func (q Query) WithoutDepartment() Query {
	q.DepartmentID = 0
	q.HasDepartment = false
	return q
}

// HasFilters reports whether any of the text/status/department filters is set.
func (q Query) HasFilters() bool {
	return strings.TrimSpace(q.Text) != "" || q.Status != StatusAny || q.HasDepartment
}

// ToggleSort flips the order when key is already the sort key; otherwise it sorts by
// key ascending. Either way the page goes back to 1.
func (q Query) ToggleSort(key SortKey) Query {
	if q.Sort == key {
		q.Order = q.Order.Flip()
	} else {
		q.Sort = key
		q.Order = Asc
	}
	q.Page = 1
	return q
}

// TotalPages is ceil(total/pageSize), never less than 1.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage bounds p to [1, TotalPages(total, pageSize)].
func ClampPage(p, total, pageSize int) int {
	maxPage := TotalPages(total, pageSize)
	if p > maxPage {
		p = maxPage
	}
	if p < 1 {
		p = 1
	}
	return p
}

// Offset is the zero-based index of the first record on the query's page.
func (q Query) Offset() int {
	q = q.Normalize()
	return (q.Page - 1) * q.PageSize
}
