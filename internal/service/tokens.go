package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/seojin-dev/todo-calendar-api/internal/config"
	"github.com/seojin-dev/todo-calendar-api/internal/domain"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessClaims is what an access token carries about the authenticated user.
type AccessClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenIssuer mints and verifies the two token kinds. Access and refresh
// tokens are signed with independent secrets so one cannot stand in for the
// other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

func (t *TokenIssuer) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   now.Add(t.accessTTL).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.accessSecret)
}

// IssueRefreshToken returns the signed token and its expiry. The jti claim
// makes every mint unique, so one user can hold several live refresh tokens.
func (t *TokenIssuer) IssueRefreshToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(t.refreshTTL)
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"jti": uuid.New().String(),
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.refreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (t *TokenIssuer) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims, err := t.verify(tokenString, t.accessSecret)
	if err != nil {
		return nil, err
	}

	email, _ := claims["email"].(string)
	userID, err := subjectID(claims)
	if err != nil {
		return nil, err
	}

	return &AccessClaims{UserID: userID, Email: email}, nil
}

// VerifyRefreshToken checks signature and embedded expiry only; whether the
// token is still live is the refresh-token store's call.
func (t *TokenIssuer) VerifyRefreshToken(tokenString string) (uuid.UUID, error) {
	claims, err := t.verify(tokenString, t.refreshSecret)
	if err != nil {
		return uuid.Nil, err
	}
	return subjectID(claims)
}

func (t *TokenIssuer) verify(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func subjectID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrTokenInvalid
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return userID, nil
}
