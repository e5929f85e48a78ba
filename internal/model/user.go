package model

import "time"

// User represents a staff account record as stored in the `users`
// table. Accounts always reference a Person for contact details.
// The json tags are omitted here because these structs are used
// internally by the repository layer; handlers define separate
// response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the account.
//  Username     – unique login name, generated from the person's name.
//  PasswordHash – bcrypt hashed password.
//  IsLocked     – whether the account is locked out.
//  IsActive     – whether the account is active.
//  PersonID     – foreign key into the people table.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	IsLocked     bool      // users.is_locked
	IsActive     bool      // users.is_active
	PersonID     uint64    // users.person_id
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Role represents a row in the `roles` table. Roles are scoped to a
// venue so that staff permissions at one location do not carry over
// to another.
//
// Fields:
//  ID          – numeric identifier of the role.
//  Name        – role name (e.g. ADMIN, HOST).
//  Description – human-readable description.
//  VenueID     – venue this role belongs to.
type Role struct {
	ID          uint64 // roles.id
	Name        string // roles.name
	Description string // roles.description
	VenueID     uint64 // roles.venue_id
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation. The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
