// Package fixture is an in-memory employee store that speaks the same json-server
// dialect as the real backend. It backs `roster demo-server` and the HTTP tests.
package fixture

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"roster-cli/internal/model"
)

type DB struct {
	mu          sync.RWMutex
	employees   []model.Employee
	departments []model.Department
	nextID      int
}

func NewDB(employees []model.Employee, departments []model.Department) *DB {
	db := &DB{
		employees:   append([]model.Employee(nil), employees...),
		departments: append([]model.Department(nil), departments...),
	}
	for _, e := range employees {
		if e.ID >= db.nextID {
			db.nextID = e.ID + 1
		}
	}
	if db.nextID == 0 {
		db.nextID = 1
	}
	return db
}

var (
	seedDepartments = []string{"Engineering", "Finance", "Human Resources", "Marketing", "Sales", "Support"}
	seedFirst       = []string{"Ada", "Bruno", "Chiara", "Dmitri", "Elif", "Farah", "Goran", "Hana", "Ivo", "Jonas", "Kemal", "Lena", "Mateo", "Nadia", "Oskar", "Priya", "Quentin", "Rosa", "Stefan", "Tilde"}
	seedLast        = []string{"Almeida", "Berg", "Costa", "Dvorak", "Eriksen", "Fischer", "Garcia", "Horvat", "Ito", "Jensen", "Kowalski", "Larsen", "Moreau", "Novak", "Okafor", "Petrov", "Quinn", "Rossi", "Sato", "Tanaka"}
	seedTitles      = []string{"Engineer", "Analyst", "Manager", "Specialist", "Coordinator"}
	seedStatuses    = []model.EmployeeStatus{model.StatusActive, model.StatusActive, model.StatusActive, model.StatusOnLeave, model.StatusInactive}
)

// Seed builds a deterministic store with n employees spread over six departments.
func Seed(n int) *DB {
	depts := make([]model.Department, len(seedDepartments))
	for i, name := range seedDepartments {
		depts[i] = model.Department{ID: i + 1, Name: name}
	}
	base := time.Date(2015, 1, 5, 0, 0, 0, 0, time.UTC)
	employees := make([]model.Employee, 0, n)
	for i := 0; i < n; i++ {
		first := seedFirst[i%len(seedFirst)]
		last := seedLast[(i*7)%len(seedLast)]
		e := model.Employee{
			ID:           i + 1,
			FirstName:    first,
			LastName:     last,
			Email:        fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			DepartmentID: i%len(depts) + 1,
			Title:        seedTitles[i%len(seedTitles)],
			Status:       seedStatuses[i%len(seedStatuses)],
			Salary:       float64(40000 + (i*7919)%90000/100*100),
			HireDate:     base.AddDate(0, 0, i*37).Format("2006-01-02"),
		}
		if i >= len(depts) {
			mgr := i%len(depts) + 1
			e.ManagerID = &mgr
		}
		employees = append(employees, e)
	}
	return NewDB(employees, depts)
}

// ListParams are the json-server list parameters. Page 0 means "no paging".
type ListParams struct {
	Page         int
	Limit        int
	Sort         string
	Order        string
	Text         string
	DepartmentID int
	Status       string
}

// ParseListParams reads json-server list parameters. Unparseable numbers are ignored.
func ParseListParams(v url.Values) ListParams {
	p := ListParams{
		Sort:   v.Get("_sort"),
		Order:  strings.ToLower(v.Get("_order")),
		Text:   strings.TrimSpace(v.Get("q")),
		Status: v.Get("status"),
	}
	p.Page, _ = strconv.Atoi(v.Get("_page"))
	p.Limit, _ = strconv.Atoi(v.Get("_limit"))
	p.DepartmentID, _ = strconv.Atoi(v.Get("departmentId"))
	if p.Page > 0 && p.Limit <= 0 {
		p.Limit = 10
	}
	return p
}

// List filters, sorts and pages the employees. The returned total counts every match.
func (db *DB) List(p ListParams) ([]model.Employee, int) {
	db.mu.RLock()
	matched := make([]model.Employee, 0, len(db.employees))
	for _, e := range db.employees {
		if p.Matches(e) {
			matched = append(matched, e)
		}
	}
	db.mu.RUnlock()

	if p.Sort != "" {
		less := lessFor(p.Sort)
		desc := p.Order == "desc"
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return less(matched[j], matched[i])
			}
			return less(matched[i], matched[j])
		})
	}

	total := len(matched)
	if p.Page <= 0 {
		return matched, total
	}
	start := (p.Page - 1) * p.Limit
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total
}

func (p ListParams) Matches(e model.Employee) bool {
	if p.Status != "" && string(e.Status) != p.Status {
		return false
	}
	if p.DepartmentID != 0 && e.DepartmentID != p.DepartmentID {
		return false
	}
	if p.Text == "" {
		return true
	}
	needle := strings.ToLower(p.Text)
	for _, field := range []string{e.FirstName, e.LastName, e.Email, e.Title, string(e.Status), e.Notes} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func lessFor(field string) func(a, b model.Employee) bool {
	switch field {
	case "salary":
		return func(a, b model.Employee) bool { return a.Salary < b.Salary }
	case "id":
		return func(a, b model.Employee) bool { return a.ID < b.ID }
	case "departmentId":
		return func(a, b model.Employee) bool { return a.DepartmentID < b.DepartmentID }
	}
	get := stringField(field)
	return func(a, b model.Employee) bool {
		return strings.ToLower(get(a)) < strings.ToLower(get(b))
	}
}

func stringField(field string) func(model.Employee) string {
	switch field {
	case "firstName":
		return func(e model.Employee) string { return e.FirstName }
	case "lastName":
		return func(e model.Employee) string { return e.LastName }
	case "email":
		return func(e model.Employee) string { return e.Email }
	case "title":
		return func(e model.Employee) string { return e.Title }
	case "status":
		return func(e model.Employee) string { return string(e.Status) }
	case "hireDate":
		return func(e model.Employee) string { return e.HireDate }
	}
	return func(model.Employee) string { return "" }
}

func (db *DB) Get(id int) (model.Employee, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, e := range db.employees {
		if e.ID == id {
			return e, true
		}
	}
	return model.Employee{}, false
}

func (db *DB) Create(in model.EmployeeInput) model.Employee {
	db.mu.Lock()
	defer db.mu.Unlock()
	e := in.WithID(db.nextID)
	db.nextID++
	db.employees = append(db.employees, e)
	return e
}

func (db *DB) Update(id int, in model.EmployeeInput) (model.Employee, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, e := range db.employees {
		if e.ID == id {
			db.employees[i] = in.WithID(id)
			return db.employees[i], true
		}
	}
	return model.Employee{}, false
}

func (db *DB) Delete(id int) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, e := range db.employees {
		if e.ID == id {
			db.employees = append(db.employees[:i], db.employees[i+1:]...)
			return true
		}
	}
	return false
}

func (db *DB) Departments() []model.Department {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]model.Department(nil), db.departments...)
}

func (db *DB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.employees)
}
