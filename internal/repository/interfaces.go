package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/seojin-dev/todo-calendar-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Todo, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter domain.TodoFilter) ([]*domain.Todo, error)
	ListDeletedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Todo, error)
	ListPublicHolidays(ctx context.Context, year *int) ([]*domain.Todo, error)
	UpdateFields(ctx context.Context, todo *domain.Todo) (int64, error)
	SetCompleted(ctx context.Context, id, userID uuid.UUID, completed bool) (int64, error)
	SoftDelete(ctx context.Context, id, userID uuid.UUID) (int64, error)
	Restore(ctx context.Context, id, userID uuid.UUID) (int64, error)
	HardDelete(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type Repositories struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Todo         TodoRepository
}
