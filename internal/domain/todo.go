package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Todo is a single task row. Rows with a nil UserID and IsPublicHoliday set are
// shared public holidays: globally readable, writable only through the admin path.
type Todo struct {
	ID              uuid.UUID       `json:"todoId" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          *uuid.UUID      `json:"userId" gorm:"type:uuid;index"`
	Title           string          `json:"title" gorm:"size:255;not null"`
	Description     *string         `json:"description"`
	StartDate       *datatypes.Date `json:"startDate"`
	DueDate         *datatypes.Date `json:"dueDate"`
	IsCompleted     bool            `json:"isCompleted" gorm:"not null;default:false"`
	IsPublicHoliday bool            `json:"isPublicHoliday" gorm:"not null;default:false"`
	IsDeleted       bool            `json:"isDeleted" gorm:"not null;default:false"`
	DeletedAt       *time.Time      `json:"deletedAt"` // set iff IsDeleted
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// TodoFilter narrows active-todo listings.
type TodoFilter struct {
	StartDate   *datatypes.Date
	EndDate     *datatypes.Date
	IsCompleted *bool
	Keyword     string
}
