package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	Id              uuid.UUID
	Email           string
	PasswordHash    *string // NULL for OAuth-only accounts
	FirstName       string
	LastName        string
	BusinessName    *string
	Industry        *string
	Goal            *string
	Role            UserRole
	ProfileImageURL *string

	// Notification preferences, surfaced on the settings page.
	EmailNotifications bool
	WeeklyReports      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PasswordResetToken uses a split selector/verifier scheme: the selector is
// stored in clear for lookup, the verifier only as a bcrypt hash. The token
// handed to the user is "selector:verifier".
type PasswordResetToken struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Selector     string
	VerifierHash string
	ExpiresAt    time.Time
	Used         bool
	CreatedAt    time.Time
}

type UserRefreshToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	IpAddress string
	UserAgent string
}

type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	AvatarURL      string
	CreatedAt      time.Time
}
