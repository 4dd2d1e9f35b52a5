package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "Passw0rd!",
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	hash := string(hashedPassword)
	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: &hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Success bool `json:"success"`
	Data    struct {
		User struct {
			UserID   string `json:"userId"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"data"`
}

// BuildAndAuthenticate creates a user via the signup API and returns the user
// and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/signup"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign up user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.Data.User.UserID)
	user := &domain.User{
		ID:       userID,
		Username: authResp.Data.User.Username,
		Email:    authResp.Data.User.Email,
	}

	return user, authResp.Data.AccessToken
}

// TodoBuilder creates test todos with a builder pattern
type TodoBuilder struct {
	owner       *domain.User
	title       string
	description *string
	dueDate     *datatypes.Date
	isCompleted bool
	isDeleted   bool
	isHoliday   bool
}

// NewTodoBuilder creates a new TodoBuilder with default values
func NewTodoBuilder() *TodoBuilder {
	return &TodoBuilder{
		title: fmt.Sprintf("Test todo %s", uuid.New().String()[:8]),
	}
}

func (b *TodoBuilder) WithOwner(user *domain.User) *TodoBuilder {
	b.owner = user
	return b
}

func (b *TodoBuilder) WithTitle(title string) *TodoBuilder {
	b.title = title
	return b
}

func (b *TodoBuilder) WithDescription(description string) *TodoBuilder {
	b.description = &description
	return b
}

func (b *TodoBuilder) WithDueDate(year int, month time.Month, day int) *TodoBuilder {
	date := datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	b.dueDate = &date
	return b
}

func (b *TodoBuilder) Completed() *TodoBuilder {
	b.isCompleted = true
	return b
}

func (b *TodoBuilder) Deleted() *TodoBuilder {
	b.isDeleted = true
	return b
}

// AsPublicHoliday makes the row a shared holiday owned by no account
func (b *TodoBuilder) AsPublicHoliday() *TodoBuilder {
	b.isHoliday = true
	b.owner = nil
	return b
}

// Build creates the todo in the database
func (b *TodoBuilder) Build(t *testing.T, db *gorm.DB) *domain.Todo {
	t.Helper()

	if b.owner == nil && !b.isHoliday {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	todo := &domain.Todo{
		ID:              uuid.New(),
		Title:           b.title,
		Description:     b.description,
		DueDate:         b.dueDate,
		IsCompleted:     b.isCompleted,
		IsPublicHoliday: b.isHoliday,
		IsDeleted:       b.isDeleted,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if b.owner != nil {
		todo.UserID = &b.owner.ID
	}
	if b.isDeleted {
		now := time.Now()
		todo.DeletedAt = &now
	}

	if err := db.Create(todo).Error; err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	return todo
}

// Date builds a datatypes.Date at UTC midnight
func Date(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
