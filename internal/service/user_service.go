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

type UserService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	hasher    *PasswordHasher
}

func NewUserService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, hasher *PasswordHasher) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	Username *string
	Email    *string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != "" {
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != "" {
		user.Email = *input.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewConflictError("Username or email already exists")
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password, rehashes the new one, and logs
// the user out everywhere by revoking every live refresh token.
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.NewValidationError("Current password and new password are required")
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if user.PasswordHash == nil || !s.hasher.Check(currentPassword, *user.PasswordHash) {
		return domain.NewAuthenticationError("Current password is incorrect")
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = &hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if _, err := s.tokenRepo.DeleteByUserID(ctx, userID); err != nil {
		log.Printf("ERROR [UserService.ChangePassword] failed to revoke refresh tokens: %v", err)
	}
	return nil
}
