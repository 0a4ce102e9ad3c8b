package user

type Role string

const (
	RoleEntrance Role = "ENTRANCE"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleEntrance, RoleAdmin:
		return true
	default:
		return false
	}
}

// Level orders roles for "at least" checks; unknown roles are 0.
func (r Role) Level() int {
	switch r {
	case RoleEntrance:
		return 1
	case RoleAdmin:
		return 2
	default:
		return 0
	}
}

func (r Role) AtLeast(minRole Role) bool {
	return r.IsValid() && minRole.IsValid() && r.Level() >= minRole.Level()
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
