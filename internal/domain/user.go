package domain

// Role enumerates console roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// User is a console account as reported by the backend. Staff members carry
// a department reference; students and admins do not.
type User struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	Role         Role    `json:"role"`
	DepartmentID *string `json:"departmentId"`
}

// InDepartment reports whether the user belongs to the given department.
func (u *User) InDepartment(departmentID string) bool {
	return u.DepartmentID != nil && *u.DepartmentID == departmentID
}
