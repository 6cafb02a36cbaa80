package directory

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Team membership is derived by joining Employee.TeamID; it is never stored
// on the team itself.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Employee records are created once at seed time and never mutated.
// TeamID may reference a team that does not exist; the directory does not
// enforce referential integrity.
type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	TeamID string `json:"teamId"`
	Role   Role   `json:"role"`
}
