package directory

import (
	"sort"
	"strings"
	"sync"
)

// Store is the in-memory directory of teams and employees. All methods are
// safe for arbitrary concurrent callers; list methods return point-in-time
// snapshots that later writes cannot alter.
type Store struct {
	teamsMu sync.RWMutex
	teams   map[string]Team

	employeesMu sync.RWMutex
	employees   map[string]Employee
}

func NewStore() *Store {
	return &Store{
		teams:     map[string]Team{},
		employees: map[string]Employee{},
	}
}

// PutTeam inserts or replaces a team by id.
func (s *Store) PutTeam(team Team) {
	s.teamsMu.Lock()
	defer s.teamsMu.Unlock()
	s.teams[team.ID] = team
}

func (s *Store) TeamByID(id string) (Team, bool) {
	s.teamsMu.RLock()
	defer s.teamsMu.RUnlock()
	team, ok := s.teams[id]
	return team, ok
}

func (s *Store) Teams() []Team {
	s.teamsMu.RLock()
	defer s.teamsMu.RUnlock()
	teams := make([]Team, 0, len(s.teams))
	for _, team := range s.teams {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams
}

// PutEmployee inserts or replaces an employee by id.
func (s *Store) PutEmployee(employee Employee) {
	s.employeesMu.Lock()
	defer s.employeesMu.Unlock()
	s.employees[employee.ID] = employee
}

func (s *Store) EmployeeByID(id string) (Employee, bool) {
	s.employeesMu.RLock()
	defer s.employeesMu.RUnlock()
	employee, ok := s.employees[id]
	return employee, ok
}

func (s *Store) Employees() []Employee {
	s.employeesMu.RLock()
	defer s.employeesMu.RUnlock()
	return sortedEmployees(s.employees, func(Employee) bool { return true })
}

func (s *Store) EmployeesByTeam(teamID string) []Employee {
	s.employeesMu.RLock()
	defer s.employeesMu.RUnlock()
	return sortedEmployees(s.employees, func(e Employee) bool { return e.TeamID == teamID })
}

// FindByEmail looks up an employee by email, case-insensitively. Duplicate
// emails are not prevented; the employee with the lowest id wins so the
// result never depends on map iteration order.
func (s *Store) FindByEmail(email string) (Employee, bool) {
	s.employeesMu.RLock()
	defer s.employeesMu.RUnlock()

	var match Employee
	found := false
	for _, employee := range s.employees {
		if !strings.EqualFold(employee.Email, email) {
			continue
		}
		if !found || employee.ID < match.ID {
			match = employee
			found = true
		}
	}
	return match, found
}

func sortedEmployees(employees map[string]Employee, keep func(Employee) bool) []Employee {
	out := make([]Employee, 0, len(employees))
	for _, employee := range employees {
		if keep(employee) {
			out = append(out, employee)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
