package domain

import "time"

const (
	RoleStudent         = "student"
	RoleEmployer        = "employer"
	RoleUniversityAdmin = "university_admin"
	RoleMentor          = "mentor"
	RoleAdmin           = "admin"
	RoleSuperAdmin      = "super_admin"
)

// validRoles is the closed set of roles the permission table knows about.
var validRoles = map[string]struct{}{
	RoleStudent:         {},
	RoleEmployer:        {},
	RoleUniversityAdmin: {},
	RoleMentor:          {},
	RoleAdmin:           {},
	RoleSuperAdmin:      {},
}

// IsValidRole reports whether role belongs to the closed role set.
func IsValidRole(role string) bool {
	_, ok := validRoles[role]
	return ok
}

// User models an authenticated actor on the platform. The association
// fields (EmployerID, UniversityID, MentorID) are ownership proxies
// consulted by rule conditions; they are empty for roles that have none.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	EmployerID   string    `json:"employer_id,omitempty"`
	UniversityID string    `json:"university_id,omitempty"`
	MentorID     string    `json:"mentor_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Association returns the named ownership field. Unknown fields resolve
// to the empty string, which every condition treats as "no association".
func (u *User) Association(field string) string {
	switch field {
	case "id":
		return u.ID
	case "employer_id":
		return u.EmployerID
	case "university_id":
		return u.UniversityID
	case "mentor_id":
		return u.MentorID
	default:
		return ""
	}
}
