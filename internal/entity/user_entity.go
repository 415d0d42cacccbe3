package entity

import "time"

type UserRole string

const (
	RoleVolunteer    UserRole = "volunteer"
	RoleOrganization UserRole = "organization"
	RoleAdmin        UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleVolunteer, RoleOrganization, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Id        uint
	PublicId  string
	Email     string
	FullName  string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor is the authenticated caller of a core operation.
type Actor struct {
	PublicId string
	Role     UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SystemActor is used by the payment webhook and the expiry sweep.
func SystemActor() Actor {
	return Actor{PublicId: "system", Role: RoleAdmin}
}
