package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/repository"
	"github.com/seojin-dev/todo-calendar-api/internal/service"
)

type contextKey string

const userKey contextKey = "user"

type errorResponder func(w http.ResponseWriter, err error)

// Auth verifies the bearer access token, resolves the owning user, and stores
// it on the request context. Token failures keep their distinct signals:
// expired reads as 401, forged as 403.
func Auth(authService *service.AuthService, userRepo repository.UserRepository, respond errorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respond(w, domain.NewAuthenticationError("Access token is required"))
				return
			}

			claims, err := authService.VerifyAccessToken(token)
			if err != nil {
				respond(w, err)
				return
			}

			user, err := userRepo.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					respond(w, domain.NewAuthenticationError("User not found"))
					return
				}
				log.Printf("ERROR [middleware.Auth] failed to load user: %v", err)
				respond(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly runs after Auth and rejects identities whose email is not on the
// injected allowlist.
func AdminOnly(adminEmails []string, respond errorResponder) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allowed[email] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				respond(w, domain.NewAuthenticationError("Access token is required"))
				return
			}
			if _, isAdmin := allowed[user.Email]; !isAdmin {
				respond(w, domain.NewAuthorizationError("Insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
