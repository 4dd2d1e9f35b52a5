package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/repository"
)

// CalendarService is a read-only projection over the todo store: the caller's
// dated todos plus the shared holidays, grouped by due date.
type CalendarService struct {
	todoRepo repository.TodoRepository
}

func NewCalendarService(todoRepo repository.TodoRepository) *CalendarService {
	return &CalendarService{todoRepo: todoRepo}
}

type CalendarDay struct {
	Date     string         `json:"date"`
	Todos    []*domain.Todo `json:"todos"`
	Holidays []*domain.Todo `json:"holidays"`
}

func (s *CalendarService) Range(ctx context.Context, userID uuid.UUID, start, end datatypes.Date) ([]*CalendarDay, error) {
	todos, err := s.todoRepo.ListByUser(ctx, userID, domain.TodoFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	holidays, err := s.todoRepo.ListPublicHolidays(ctx, nil)
	if err != nil {
		return nil, err
	}

	days := map[string]*CalendarDay{}
	dayFor := func(key string) *CalendarDay {
		if day, ok := days[key]; ok {
			return day
		}
		day := &CalendarDay{Date: key, Todos: []*domain.Todo{}, Holidays: []*domain.Todo{}}
		days[key] = day
		return day
	}

	for _, todo := range todos {
		if todo.DueDate == nil {
			continue
		}
		key := dateKey(*todo.DueDate)
		day := dayFor(key)
		day.Todos = append(day.Todos, todo)
	}

	for _, holiday := range holidays {
		if holiday.DueDate == nil || !withinRange(*holiday.DueDate, start, end) {
			continue
		}
		key := dateKey(*holiday.DueDate)
		day := dayFor(key)
		day.Holidays = append(day.Holidays, holiday)
	}

	result := make([]*CalendarDay, 0, len(days))
	for _, day := range days {
		result = append(result, day)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

func dateKey(date datatypes.Date) string {
	return time.Time(date).Format("2006-01-02")
}

func withinRange(date, start, end datatypes.Date) bool {
	t := time.Time(date)
	return !t.Before(time.Time(start)) && !t.After(time.Time(end))
}
