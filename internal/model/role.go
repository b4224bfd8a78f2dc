package model

// Role is the account kind a user registers with.
type Role string

const (
	RoleStudent Role = "siswa"
	RoleTeacher Role = "guru"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
