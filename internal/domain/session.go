package domain

// LoginResult is what the auth collaborator hands back for a credential check.
type LoginResult struct {
	Token   string
	Role    UserRole
	Status  UserStatus
	Profile User
}

// Session is an established admin session.
type Session struct {
	Token   string `json:"token"`
	Profile User   `json:"profile"`
}

type EntityKind string

const (
	EntityUser    EntityKind = "user"
	EntityJob     EntityKind = "job"
	EntityBooking EntityKind = "booking"
)
