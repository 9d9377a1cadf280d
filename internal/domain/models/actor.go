package models

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleCompany   Role = "company"
	RoleAdmin     Role = "admin"
)

// Actor is the authenticated identity resolved by the identity collaborator.
// Core operations receive it explicitly; nothing reads an ambient session.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsCandidate() bool { return a.Role == RoleCandidate }
func (a Actor) IsCompany() bool   { return a.Role == RoleCompany }
func (a Actor) IsAdmin() bool     { return a.Role == RoleAdmin }
