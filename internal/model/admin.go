package model

import "time"

// DefaultAdminRole is assigned when no role is supplied at registration.
const DefaultAdminRole = "admin"

// Admin represents an administrative user who can manage site content and
// leads through the admin API. Passwords are stored as bcrypt hashes.
type Admin struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"full_name" db:"full_name"`
	PasswordHash string    `json:"-" db:"password_hash"` // bcrypt hash, never expose
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
