package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/repository"
)

type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	tokens    *TokenIssuer
	hasher    *PasswordHasher
	clock     Clock
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, tokens *TokenIssuer, hasher *PasswordHasher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		hasher:    hasher,
		clock:     systemClock{},
	}
}

type SignUpInput struct {
	Username string
	Email    string
	Password string
}

type SignInInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error) {
	if input.Username == "" || input.Email == "" {
		return nil, domain.NewValidationError("Username and email are required")
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: &hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Uniqueness rides on the store's constraints; a prior existence check
	// would race a concurrent signup.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewConflictError("Username or email already exists")
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*AuthResult, error) {
	// One message for both failure modes, so callers cannot probe which
	// emails have accounts.
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewAuthenticationError("Invalid email or password")
		}
		return nil, err
	}

	if user.PasswordHash == nil || !s.hasher.Check(input.Password, *user.PasswordHash) {
		return nil, domain.NewAuthenticationError("Invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

// SignOut revokes the presented refresh token. Revocation is best effort: a
// token that is unknown or already revoked still signs out cleanly.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	if _, err := s.tokenRepo.DeleteByToken(ctx, refreshToken); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ERROR [AuthService.SignOut] failed to revoke refresh token: %v", err)
	}
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token itself is not rotated; it stays valid until expiry or sign-out.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", domain.NewAuthenticationError("Invalid refresh token")
	}

	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.NewNotFoundError("Refresh token not found")
		}
		return "", err
	}

	// The stored expiry is authoritative. A stale row is dropped so later
	// attempts read as revoked.
	if stored.ExpiresAt.Before(s.clock.Now()) {
		if _, err := s.tokenRepo.DeleteByToken(ctx, refreshToken); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("ERROR [AuthService.Refresh] failed to drop expired refresh token: %v", err)
		}
		return "", domain.NewAuthenticationError("Invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.NewAuthenticationError("Invalid refresh token")
		}
		return "", err
	}

	return s.tokens.IssueAccessToken(user)
}

// VerifyAccessToken maps token failures to the two distinct signals the
// middleware needs: expired (authentication) versus forged (authorization).
func (s *AuthService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, domain.NewAuthenticationError("Access token expired")
		}
		return nil, domain.NewAuthorizationError("Invalid access token")
	}
	return claims, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, expiresAt, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
		CreatedAt: s.clock.Now(),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
