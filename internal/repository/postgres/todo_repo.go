package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
)

type todoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *todoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// GetByID returns the row only if the caller owns it or it is a public holiday.
func (r *todoRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.WithContext(ctx).
		First(&todo, "id = ? AND (user_id = ? OR is_public_holiday = true)", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.TodoFilter) ([]*domain.Todo, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND is_public_holiday = false AND is_deleted = false", userID)

	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("due_date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}
	if filter.IsCompleted != nil {
		query = query.Where("is_completed = ?", *filter.IsCompleted)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var todos []*domain.Todo
	err := query.Order("created_at DESC").Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) ListDeletedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Todo, error) {
	var todos []*domain.Todo
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = true", userID).
		Order("deleted_at DESC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) ListPublicHolidays(ctx context.Context, year *int) ([]*domain.Todo, error) {
	query := r.db.WithContext(ctx).Where("is_public_holiday = true")
	if year != nil {
		query = query.Where("EXTRACT(YEAR FROM due_date) = ?", *year)
	}

	var holidays []*domain.Todo
	err := query.Order("due_date ASC").Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

// UpdateFields writes title/description/dates through a conditional update so a
// row that was completed or deleted by a concurrent request is left untouched.
func (r *todoRepository) UpdateFields(ctx context.Context, todo *domain.Todo) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Todo{}).
		Where("id = ? AND user_id = ? AND is_deleted = false AND is_completed = false", todo.ID, todo.UserID).
		Updates(map[string]interface{}{
			"title":       todo.Title,
			"description": todo.Description,
			"start_date":  todo.StartDate,
			"due_date":    todo.DueDate,
		})
	return result.RowsAffected, result.Error
}

// SetCompleted flips the completion flag only when the row is currently in the
// opposite state, so concurrent toggles cannot both succeed.
func (r *todoRepository) SetCompleted(ctx context.Context, id, userID uuid.UUID, completed bool) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Todo{}).
		Where("id = ? AND user_id = ? AND is_deleted = false AND is_completed = ?", id, userID, !completed).
		Update("is_completed", completed)
	return result.RowsAffected, result.Error
}

func (r *todoRepository) SoftDelete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&domain.Todo{}).
		Where("id = ? AND user_id = ? AND is_deleted = false AND is_completed = false", id, userID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *todoRepository) Restore(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Todo{}).
		Where("id = ? AND user_id = ? AND is_deleted = true", id, userID).
		Updates(map[string]interface{}{
			"is_deleted": false,
			"deleted_at": gorm.Expr("NULL"),
		})
	return result.RowsAffected, result.Error
}

// HardDelete permanently removes a trashed row. Rows that are not soft-deleted
// are never purged.
func (r *todoRepository) HardDelete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&domain.Todo{}, "id = ? AND user_id = ? AND is_deleted = true", id, userID)
	return result.RowsAffected, result.Error
}
