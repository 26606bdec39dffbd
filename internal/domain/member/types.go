package member

type Role string

const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleTrainer, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanSeeOccupants reports whether grid responses for this role may include
// occupant identity. Members only ever see "unavailable".
func (r Role) CanSeeOccupants() bool {
	return r == RoleTrainer || r == RoleAdmin
}
