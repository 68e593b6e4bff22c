package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenService issues and verifies the bearer tokens carried by every authenticated request.
type TokenService interface {
	Generate(userId string, role Role) (string, error)
	Validate(token string) (Identity, error)
}

type tokenService struct {
	secret   []byte
	duration time.Duration
	issuer   string
}

func NewTokenService(secret string, duration time.Duration) TokenService {
	return &tokenService{
		secret:   []byte(secret),
		duration: duration,
		issuer:   "chefsphere",
	}
}

// tokenClaims carries the user id and its role alongside the registered claims.
type tokenClaims struct {
	Id   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (ts *tokenService) Generate(userId string, role Role) (string, error) {
	var now = time.Now()
	var claims = tokenClaims{
		Id:   userId,
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    ts.issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
}

func (ts *tokenService) Validate(token string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ts.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Identity{}, ErrTokenInvalid
	}

	var role = Role(claims.Role)
	if claims.Id == "" || !role.Known() {
		return Identity{}, ErrTokenInvalid
	}

	return Identity{UserId: claims.Id, Role: role}, nil
}
