package service

import (
	"context"

	"gorm.io/datatypes"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/repository"
)

// HolidayService manages the shared public-holiday rows. Write access is
// enforced upstream by the admin middleware; this service only shapes the rows.
type HolidayService struct {
	todoRepo repository.TodoRepository
}

func NewHolidayService(todoRepo repository.TodoRepository) *HolidayService {
	return &HolidayService{todoRepo: todoRepo}
}

func (s *HolidayService) List(ctx context.Context, year *int) ([]*domain.Todo, error) {
	return s.todoRepo.ListPublicHolidays(ctx, year)
}

type HolidayInput struct {
	Title       string
	Description *string
	DueDate     *datatypes.Date
}

func (s *HolidayService) Add(ctx context.Context, input HolidayInput) (*domain.Todo, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if input.DueDate == nil {
		return nil, domain.NewValidationError("Due date is required for a public holiday")
	}

	holiday := &domain.Todo{
		UserID:          nil, // holidays belong to no account
		Title:           input.Title,
		Description:     input.Description,
		DueDate:         input.DueDate,
		IsPublicHoliday: true,
	}
	if err := s.todoRepo.Create(ctx, holiday); err != nil {
		return nil, err
	}
	return holiday, nil
}
