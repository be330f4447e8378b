package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/muhammadheryan/picking-engine/constant"
	"github.com/muhammadheryan/picking-engine/utils/errors"
)

// AuthMiddleware validates the bearer token issued by the identity service
// and embeds the org and picker ids into the request context. The engine
// itself never issues or stores credentials.
func AuthMiddleware(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			orgID, ok := claimUint(claims, "org_id")
			if !ok {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			pickerID, _ := claimUint(claims, "user_id")

			ctx := context.WithValue(r.Context(), constant.OrgIDKey, orgID)
			ctx = context.WithValue(ctx, constant.UserIDKey, pickerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimUint(claims jwt.MapClaims, key string) (uint64, bool) {
	v, ok := claims[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || f < 0 {
		return 0, false
	}
	return uint64(f), true
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	return strings.HasPrefix(path, "/swagger/") || path == "/healthz"
}
