package models

// Role controls access to the admin routes.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ApplicationStatus classifies where an application is in its lifecycle.
// It is a plain tag: any status may change to any other.
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "APPLIED"
	StatusScreening ApplicationStatus = "SCREENING"
	StatusInterview ApplicationStatus = "INTERVIEW"
	StatusOffer     ApplicationStatus = "OFFER"
	StatusAccepted  ApplicationStatus = "ACCEPTED"
	StatusRejected  ApplicationStatus = "REJECTED"
	StatusWithdrawn ApplicationStatus = "WITHDRAWN"
)

// Statuses lists every status in lifecycle order.
func Statuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusApplied,
		StatusScreening,
		StatusInterview,
		StatusOffer,
		StatusAccepted,
		StatusRejected,
		StatusWithdrawn,
	}
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusScreening, StatusInterview, StatusOffer,
		StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
	Created      int64  `json:"created" db:"created"`
}

type JobApplication struct {
	ID          int64             `json:"id" db:"id"`
	UserID      int64             `json:"userId" db:"user_id"`
	Title       string            `json:"title" db:"title"`
	Company     string            `json:"company" db:"company"`
	Status      ApplicationStatus `json:"status" db:"status"`
	AppliedDate string            `json:"appliedDate" db:"applied_date"`
	Deadline    *string           `json:"deadline,omitempty" db:"deadline"`
	Notes       *string           `json:"notes,omitempty" db:"notes"`
	Created     int64             `json:"created" db:"created"`
	Updated     int64             `json:"updated" db:"updated"`
}

// UserSummary is the admin view of a user: account data plus how many
// applications the account owns, never the application bodies themselves.
type UserSummary struct {
	ID               int64  `json:"id" db:"id"`
	Username         string `json:"username" db:"username"`
	Email            string `json:"email" db:"email"`
	Role             Role   `json:"role" db:"role"`
	Created          int64  `json:"createdAt" db:"created"`
	ApplicationCount int64  `json:"applicationCount" db:"application_count"`
}

// Stats holds per-user application counts, one per status plus the total.
type Stats struct {
	Total     int64 `json:"total"`
	Applied   int64 `json:"applied"`
	Screening int64 `json:"screening"`
	Interview int64 `json:"interview"`
	Offer     int64 `json:"offer"`
	Accepted  int64 `json:"accepted"`
	Rejected  int64 `json:"rejected"`
	Withdrawn int64 `json:"withdrawn"`
}
