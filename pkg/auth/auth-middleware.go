package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	JSON "github.com/AndrewStevenDJ/ChefSphere/pkg/json-utilities"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the caller's decoded token payload, attached to the request context.
type Identity struct {
	UserId string
	Role   Role
}

// Auth rejects requests lacking a valid bearer token and attaches the caller's
// identity to the request context for downstream handlers.
func Auth(ts TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, request *http.Request) {

			token, err := parseBearer(request)
			if err != nil {
				JSON.Forbidden(w, "Token de autenticación requerido.")
				return
			}

			identity, err := ts.Validate(token)
			if err != nil {
				JSON.Unauthorised(w, "Token inválido o expirado.")
				return
			}

			next.ServeHTTP(w, request.WithContext(context.WithValue(request.Context(), identityKey, identity)))
		})
	}
}

// Admin gates admin-only routes; it must follow Auth in the middleware chain.
func Admin() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, request *http.Request) {

			identity, err := GetIdentity(request)
			if err != nil {
				JSON.Unauthorised(w, "No autenticado. Token requerido.")
				return
			}

			if !identity.Role.IsAdmin() {
				JSON.Forbidden(w, "Acceso denegado. Se requiere rol de Administrador.")
				return
			}

			next.ServeHTTP(w, request)
		})
	}
}

// Optional attaches an identity when a valid token accompanies the request,
// and lets anonymous callers through; used by routes that merely personalise output,
// such as view tracking on recipe details.
func Optional(ts TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, request *http.Request) {

			if token, err := parseBearer(request); err == nil {
				if identity, err := ts.Validate(token); err == nil {
					request = request.WithContext(context.WithValue(request.Context(), identityKey, identity))
				}
			}

			next.ServeHTTP(w, request)
		})
	}
}

// parseBearer extracts the token from the authorization header.
func parseBearer(request *http.Request) (string, error) {
	var header = request.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") && len(header) > 7 {
		return header[7:], nil
	}
	return "", errors.New("bad authorization header")
}

func GetIdentity(request *http.Request) (Identity, error) {
	var value = request.Context().Value(identityKey)
	// return an error to detect a possibly missing auth middleware
	if value == nil {
		return Identity{}, errors.New("missing identity in request context")
	}
	return value.(Identity), nil
}

// ViewerId labels the caller for view cooldown tracking: the user id when
// authenticated, the caller's network address otherwise.
func ViewerId(request *http.Request) string {
	if identity, err := GetIdentity(request); err == nil {
		return fmt.Sprintf("U:%s", identity.UserId)
	}
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		host = request.RemoteAddr
	}
	return fmt.Sprintf("IP:%s", host)
}
