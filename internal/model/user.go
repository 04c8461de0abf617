package model

import "time"

// Roles carried in session tokens. Every account starts as RoleUser;
// administrators are promoted out of band.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account record as stored in the `users` table.
// PasswordHash is never serialized.
//
// Fields:
//  ID              – primary key identifier of the account.
//  FirstName       – given name supplied at registration.
//  LastName        – family name supplied at registration.
//  Email           – unique address, compared exactly as stored.
//  PasswordHash    – bcrypt hash of the password.
//  Role            – USER or ADMIN.
//  EmailVerifiedAt – when the verification code was confirmed (nil if never).
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type User struct {
	ID              uint64     `json:"id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Role            string     `json:"role"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
