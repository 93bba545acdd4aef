// Package middleware provides HTTP middleware for bearer-token
// authentication, request logging and metrics.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"github.com/vietsport/eprofile/internal/models"
)

type ctxKey string

// claimsKey is the context key under which verified token claims are stored.
const claimsKey ctxKey = "claims"

// BearerAuth returns middleware that enforces a valid JWT bearer token.
// Requests without one are rejected with a 401 error envelope; on success
// the token claims are stored in the request context.
func BearerAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			claims := &models.TokenClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !parsed.Valid {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext returns the verified token claims stored by
// BearerAuth, or nil if the request was not authenticated.
func GetClaimsFromContext(ctx context.Context) *models.TokenClaims {
	claims, _ := ctx.Value(claimsKey).(*models.TokenClaims)
	return claims
}

// GetUserIDFromContext returns the authenticated user id, or 0.
func GetUserIDFromContext(ctx context.Context) int64 {
	if claims := GetClaimsFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.Envelope[any]{
		Status:  models.StatusError,
		Message: "Phiên đăng nhập hết hạn",
	})
}
