package domain

import (
	"strings"
	"time"
)

type UserRole string

const (
	UserRoleWorker   UserRole = "worker"
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"
)

type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusUnknown   UserStatus = "unknown"
)

var userStatuses = []UserStatus{UserStatusPending, UserStatusActive, UserStatusSuspended}

// ParseUserStatus accepts only the known status vocabulary.
func ParseUserStatus(raw string) (UserStatus, error) {
	s := UserStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range userStatuses {
		if s == known {
			return s, nil
		}
	}
	return UserStatusUnknown, NewValidationError("decode user", "unknown user status %q", raw)
}

func ParseUserRole(raw string) (UserRole, error) {
	switch r := UserRole(strings.ToLower(strings.TrimSpace(raw))); r {
	case UserRoleWorker, UserRoleEmployer, UserRoleAdmin:
		return r, nil
	}
	return "", NewValidationError("decode user", "unknown user role %q", raw)
}

// Documents are the identity documents uploaded at registration.
type Documents struct {
	NIDNumber string `json:"nidNumber,omitempty"`
	NIDFront  string `json:"nidFront,omitempty"`
	NIDBack   string `json:"nidBack,omitempty"`
}

type User struct {
	ID        string     `json:"id"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Rating    float64    `json:"rating"`
	CreatedAt time.Time  `json:"createdAt"`

	// Role specific, read only here.
	Skills          []string  `json:"skills,omitempty"`
	Company         string    `json:"company,omitempty"`
	Location        string    `json:"location,omitempty"`
	Address         string    `json:"address,omitempty"`
	Availability    string    `json:"availability,omitempty"`
	ProfilePhoto    string    `json:"profilePhoto,omitempty"`
	CompletedJobs   int       `json:"completedJobs,omitempty"`
	TotalJobsPosted int       `json:"totalJobsPosted,omitempty"`
	Documents       Documents `json:"documents"`
}

func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// DisplayName prefers the profile name and falls back to the e-mail.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// UserRef is a weak reference to a user: an id plus a denormalised display
// name. Nothing cascades through it.
type UserRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}
