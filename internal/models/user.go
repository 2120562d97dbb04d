package models

import "time"

// Role identifies what a user may do in the system.
type Role string

// User roles.
const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// Lockout policy: after maxLoginAttempts consecutive failures the account
// is locked for lockDuration. The lock check runs before any password
// comparison, so a correct password cannot shortcut an active lock.
const (
	maxLoginAttempts = 5
	lockDuration     = 15 * time.Minute
)

// User represents an account holder: customer, driver, or admin.
// Password is empty for Google-only accounts.
type User struct {
	Base
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Role     Role   `gorm:"default:customer" json:"role"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`

	// Google account linking
	GoogleID       string `gorm:"index" json:"-"`
	GoogleEmail    string `json:"google_email,omitempty"`
	IsGoogleLinked bool   `gorm:"default:false" json:"is_google_linked"`

	// Email verification
	IsEmailVerified          bool       `gorm:"default:false" json:"is_email_verified"`
	EmailVerificationToken   string     `gorm:"size:64" json:"-"`
	EmailVerificationExpires *time.Time `json:"-"`

	// Password reset
	PasswordResetToken   string     `gorm:"size:64" json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	// Login throttling
	LoginAttempts int        `gorm:"default:0" json:"-"`
	LockUntil     *time.Time `json:"-"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// IsLocked reports whether the account currently rejects logins.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}

// RegisterFailedLogin increments the attempt counter and arms the lock
// once the threshold is reached.
func (u *User) RegisterFailedLogin(now time.Time) {
	u.LoginAttempts++
	if u.LoginAttempts >= maxLoginAttempts {
		until := now.Add(lockDuration)
		u.LockUntil = &until
	}
}

// RegisterSuccessfulLogin resets the attempt counter, clears any lock,
// and records the login time.
func (u *User) RegisterSuccessfulLogin(now time.Time) {
	u.LoginAttempts = 0
	u.LockUntil = nil
	u.LastLoginAt = &now
}
