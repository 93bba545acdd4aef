package service

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/vietsport/eprofile/internal/models"
)

// refreshTTL is fixed; the client never exchanges refresh tokens, it only
// stores them, so a generous window is fine for a development server.
const refreshTTL = 7 * 24 * time.Hour

// TokenIssuer signs the access and refresh JWTs handed out at login.
type TokenIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

// NewTokenIssuer creates a TokenIssuer signing with the given secret.
func NewTokenIssuer(secret string, accessTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL}
}

// Issue returns a signed access token carrying the user's identity claims
// and a bare refresh token.
func (t *TokenIssuer) Issue(cred *models.Credential) (access string, refresh string, err error) {
	now := time.Now()

	accessClaims := models.TokenClaims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.accessTTL).Unix(),
		},
		UserID:     cred.UserID,
		Email:      cred.Email,
		AccessRole: cred.AccessRole,
	}
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(t.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refreshClaims := jwt.StandardClaims{
		Id:        uuid.NewString(),
		Subject:   cred.Email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(refreshTTL).Unix(),
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(t.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}

	return access, refresh, nil
}
