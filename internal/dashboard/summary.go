// Package dashboard aggregates the whole employee collection into headline numbers.
package dashboard

import (
	"math"
	"sort"
	"strconv"

	"roster-cli/internal/model"
)

const recentHireCount = 5

type DepartmentCount struct {
	DepartmentID int    `json:"departmentId"`
	Name         string `json:"name"`
	Count        int    `json:"count"`
}

type Summary struct {
	Headcount    int               `json:"headcount"`
	Active       int               `json:"active"`
	OnLeave      int               `json:"onLeave"`
	Inactive     int               `json:"inactive"`
	AvgSalary    int               `json:"avgSalary"`
	Departments  int               `json:"departments"`
	ByDepartment []DepartmentCount `json:"byDepartment"`
	RecentHires  []model.Employee  `json:"recentHires"`
}

// Summarize counts employees by status and department. The average salary is rounded to
// the nearest whole unit and is 0 for an empty collection.
func Summarize(employees []model.Employee, departments []model.Department) Summary {
	s := Summary{
		Headcount:    len(employees),
		Departments:  len(departments),
		ByDepartment: []DepartmentCount{},
		RecentHires:  []model.Employee{},
	}

	names := make(map[int]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}

	var sum float64
	perDept := map[int]int{}
	for _, e := range employees {
		switch e.Status {
		case model.StatusActive:
			s.Active++
		case model.StatusOnLeave:
			s.OnLeave++
		case model.StatusInactive:
			s.Inactive++
		}
		sum += e.Salary
		perDept[e.DepartmentID]++
	}
	if len(employees) > 0 {
		s.AvgSalary = int(math.Round(sum / float64(len(employees))))
	}

	for id, n := range perDept {
		name, ok := names[id]
		if !ok {
			name = "#" + strconv.Itoa(id)
		}
		s.ByDepartment = append(s.ByDepartment, DepartmentCount{DepartmentID: id, Name: name, Count: n})
	}
	sort.Slice(s.ByDepartment, func(i, j int) bool {
		a, b := s.ByDepartment[i], s.ByDepartment[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.DepartmentID < b.DepartmentID
	})

	recent := append([]model.Employee(nil), employees...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].HireDate > recent[j].HireDate })
	if len(recent) > recentHireCount {
		recent = recent[:recentHireCount]
	}
	s.RecentHires = append(s.RecentHires, recent...)
	return s
}
