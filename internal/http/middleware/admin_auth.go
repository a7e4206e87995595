package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const adminClaimsKey contextKey = "adminClaims"

// AdminJWT guards admin endpoints with an HMAC-signed bearer token. The token
// subject must match the configured administrator username. With no secret
// configured the whole admin surface stays closed.
func AdminJWT(secret, adminUsername string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "admin auth disabled", http.StatusUnauthorized)
				return
			}

			claims, err := verifyAdminToken(r.Header.Get("Authorization"), secret, adminUsername)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyAdminToken(header, secret, adminUsername string) (jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return claims, errMissingBearer
	}

	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.Subject != adminUsername {
		return claims, errInvalidToken
	}
	return claims, nil
}

var (
	errMissingBearer = authError("missing authorization header")
	errInvalidToken  = authError("invalid token")
)

type authError string

func (e authError) Error() string { return string(e) }

// AdminClaimsFromContext returns admin JWT claims if present.
func AdminClaimsFromContext(ctx context.Context) (jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(adminClaimsKey).(jwt.RegisteredClaims)
	return claims, ok
}
