package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/repository"
)

const maxTitleLength = 255

type TodoService struct {
	todoRepo repository.TodoRepository
}

func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

func (s *TodoService) List(ctx context.Context, userID uuid.UUID, filter domain.TodoFilter) ([]*domain.Todo, error) {
	return s.todoRepo.ListByUser(ctx, userID, filter)
}

func (s *TodoService) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Todo not found")
		}
		return nil, err
	}
	if todo.IsDeleted {
		return nil, domain.NewNotFoundError("Todo not found")
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, todo *domain.Todo) (*domain.Todo, error) {
	if err := validateTitle(todo.Title); err != nil {
		return nil, err
	}

	todo.ID = uuid.Nil
	todo.UserID = &userID
	todo.IsCompleted = false
	todo.IsPublicHoliday = false
	todo.IsDeleted = false
	todo.DeletedAt = nil

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Update rewrites the editable fields of an active row. Completed and deleted
// rows never take field updates.
func (s *TodoService) Update(ctx context.Context, id, userID uuid.UUID, updated *domain.Todo) (*domain.Todo, error) {
	if err := validateTitle(updated.Title); err != nil {
		return nil, err
	}

	updated.ID = id
	updated.UserID = &userID
	affected, err := s.todoRepo.UpdateFields(ctx, updated)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, s.explainGuardFailure(ctx, id, userID, "Cannot update completed todo")
	}

	return s.Get(ctx, id, userID)
}

// ToggleComplete moves an active row to completed or a completed row back to
// active. The guard runs inside the conditional update, so two concurrent
// toggles to the same target cannot both win.
func (s *TodoService) ToggleComplete(ctx context.Context, id, userID uuid.UUID, completed bool) (*domain.Todo, error) {
	affected, err := s.todoRepo.SetCompleted(ctx, id, userID, completed)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		msg := "Todo is already not completed"
		if completed {
			msg = "Todo is already completed"
		}
		return nil, s.explainGuardFailure(ctx, id, userID, msg)
	}

	return s.Get(ctx, id, userID)
}

func (s *TodoService) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	affected, err := s.todoRepo.SoftDelete(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return s.explainGuardFailure(ctx, id, userID, "Cannot delete completed todo")
	}
	return nil
}

func (s *TodoService) ListTrash(ctx context.Context, userID uuid.UUID) ([]*domain.Todo, error) {
	return s.todoRepo.ListDeletedByUser(ctx, userID)
}

func (s *TodoService) Restore(ctx context.Context, id, userID uuid.UUID) (*domain.Todo, error) {
	affected, err := s.todoRepo.Restore(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.NewNotFoundError("Todo not found in trash")
	}

	return s.Get(ctx, id, userID)
}

// Purge permanently removes a trashed row. Terminal: nothing can bring it back.
func (s *TodoService) Purge(ctx context.Context, id, userID uuid.UUID) error {
	affected, err := s.todoRepo.HardDelete(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("Todo not found in trash")
	}
	return nil
}

// explainGuardFailure turns a zero-row conditional update into the right
// domain error: not-found when the row is invisible to the caller, otherwise a
// state conflict with the supplied message.
func (s *TodoService) explainGuardFailure(ctx context.Context, id, userID uuid.UUID, conflictMsg string) error {
	todo, err := s.todoRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("Todo not found")
		}
		return err
	}
	if todo.IsPublicHoliday {
		// Holidays are read-only outside the admin path; do not leak state.
		return domain.NewNotFoundError("Todo not found")
	}
	if todo.IsDeleted {
		return domain.NewNotFoundError("Todo not found or already deleted")
	}
	return domain.NewConflictError(conflictMsg)
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return domain.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLength {
		return domain.NewValidationError("Title must be 255 characters or fewer")
	}
	return nil
}
