package models

import "github.com/dgrijalva/jwt-go"

// TokenClaims is the JWT payload carried by access tokens.
type TokenClaims struct {
	jwt.StandardClaims
	UserID     int64  `json:"user_id"`
	Email      string `json:"email"`
	AccessRole string `json:"access_role"`
}

// Credential is a users table row as the auth layer sees it.
type Credential struct {
	UserID       int64
	Email        string
	PasswordHash []byte
	AccessRole   string
	AthleteID    *int64
	StaffID      *int64
	IsActive     int
	CreatedAt    string
}

// SessionPayload converts a credential into the user object returned
// by the login endpoint and stored in the client session.
func (c Credential) SessionPayload() SessionUser {
	return SessionUser{
		UserID:     c.UserID,
		Email:      c.Email,
		AccessRole: c.AccessRole,
		AthleteID:  c.AthleteID,
		StaffID:    c.StaffID,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}
