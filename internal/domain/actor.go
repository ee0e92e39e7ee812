package domain

type ActorRole string

const (
	ActorRoleStudent          ActorRole = "STUDENT"
	ActorRoleStaff            ActorRole = "STAFF"
	ActorRoleStudentAssistant ActorRole = "STUDENT_ASSISTANT"
	ActorRoleAdmin            ActorRole = "ADMIN"
)

type Actor struct {
	ID           int32     `json:"id"`
	Role         ActorRole `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	// DepartmentID is the student's home department; zero for other roles.
	DepartmentID int32 `json:"department_id,omitempty"`
	// DepartmentScope holds the departments a staff member or student
	// assistant may act on. Empty for students; ignored for admins, who are
	// unrestricted.
	DepartmentScope []int32 `json:"department_scope,omitempty"`
	// Capability flags for student assistants.
	CanSchedule bool   `json:"can_schedule"`
	CanRelease  bool   `json:"can_release"`
	Active      bool   `json:"active"`
	CreatedOn   string `json:"created_on"`
}

// InScope reports whether the actor's department scope covers departmentID.
// Admins are always in scope.
func (a *Actor) InScope(departmentID int32) bool {
	if a.Role == ActorRoleAdmin {
		return true
	}
	for _, d := range a.DepartmentScope {
		if d == departmentID {
			return true
		}
	}
	return false
}
