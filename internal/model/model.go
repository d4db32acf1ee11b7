package model

import "strings"

type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"
	StatusInactive EmployeeStatus = "inactive"
	StatusOnLeave  EmployeeStatus = "on_leave"
)

// Statuses lists every known employee status in display order.
var Statuses = []EmployeeStatus{StatusActive, StatusOnLeave, StatusInactive}

func (s EmployeeStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave:
		return true
	}
	return false
}

func (s EmployeeStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	case StatusOnLeave:
		return "On leave"
	}
	return string(s)
}

type Employee struct {
	ID           int            `json:"id"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	DepartmentID int            `json:"departmentId"`
	Title        string         `json:"title"`
	Status       EmployeeStatus `json:"status"`
	Salary       float64        `json:"salary"`
	// HireDate is a calendar date (YYYY-MM-DD) as stored by the remote store.
	HireDate  string `json:"hireDate"`
	ManagerID *int   `json:"managerId"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Input returns the employee without its store-assigned id.
func (e Employee) Input() EmployeeInput {
	return EmployeeInput{
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		DepartmentID: e.DepartmentID,
		Title:        e.Title,
		Status:       e.Status,
		Salary:       e.Salary,
		HireDate:     e.HireDate,
		ManagerID:    e.ManagerID,
		AvatarURL:    e.AvatarURL,
		Notes:        e.Notes,
	}
}

// EmployeeInput is the create/update payload; the store owns the id.
type EmployeeInput struct {
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	DepartmentID int            `json:"departmentId"`
	Title        string         `json:"title"`
	Status       EmployeeStatus `json:"status"`
	Salary       float64        `json:"salary"`
	HireDate     string         `json:"hireDate"`
	ManagerID    *int           `json:"managerId"`
	AvatarURL    string         `json:"avatarUrl,omitempty"`
	Notes        string         `json:"notes,omitempty"`
}

func (in EmployeeInput) WithID(id int) Employee {
	return Employee{
		ID:           id,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		DepartmentID: in.DepartmentID,
		Title:        in.Title,
		Status:       in.Status,
		Salary:       in.Salary,
		HireDate:     in.HireDate,
		ManagerID:    in.ManagerID,
		AvatarURL:    in.AvatarURL,
		Notes:        in.Notes,
	}
}

type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Page is one page of a filtered listing. Total counts every record matching the
// filters, not just the ones in Items.
type Page struct {
	Items []Employee `json:"items"`
	Total int        `json:"total"`
}
