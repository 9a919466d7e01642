package domain

import "time"

// Role is the self-declared session role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a known session role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// CurrentUser is the session projection of an Employee plus its session role.
// It is the only record that survives a restart.
type CurrentUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *CurrentUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// NewCurrentUser combines an employee's identity with a session role.
func NewCurrentUser(e Employee, role Role) *CurrentUser {
	return &CurrentUser{
		ID:     e.ID,
		Name:   e.Name,
		Role:   role,
		Email:  e.Email,
		Avatar: e.Avatar,
	}
}

// Credential is the stored secret used by the password strategy.
type Credential struct {
	EmployeeID   string    `json:"employee_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
