package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"crimson-pos/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// AuthMiddleware verifies the bearer token and stores the user id in the request context
func AuthMiddleware(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			userID, err := ParseUserToken(parts[1], jwtSecret)
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				if errors.Is(err, jwt.ErrTokenExpired) {
					RespondWithError(w, http.StatusUnauthorized, "token expired")
				} else {
					RespondWithError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			logger.Debug("User authenticated", zap.Int64("user_id", userID))

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseUserToken checks the signature, issuer and expiry of an HS256 token
// and returns the user id held in its subject
func ParseUserToken(tokenString, jwtSecret string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	}, jwt.WithExpirationRequired(), jwt.WithIssuer(service.TokenIssuer))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrTokenSignatureInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, jwt.ErrTokenInvalidSubject
	}

	return userID, nil
}

// GetUserID extracts user ID from request context
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
