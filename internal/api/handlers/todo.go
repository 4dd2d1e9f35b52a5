package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/seojin-dev/todo-calendar-api/internal/api/middleware"
	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/service"
)

type TodoHandler struct {
	todoService *service.TodoService
	respond     *Responder
}

func NewTodoHandler(todoService *service.TodoService, respond *Responder) *TodoHandler {
	return &TodoHandler{todoService: todoService, respond: respond}
}

type TodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StartDate   *string `json:"startDate"`
	DueDate     *string `json:"dueDate"`
}

type ToggleCompleteRequest struct {
	IsCompleted *bool `json:"isCompleted"`
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.respond.Error(w, domain.NewAuthenticationError("Access token is required"))
		return
	}

	filter, err := parseTodoFilter(r)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	todos, err := h.todoService.List(r.Context(), user.ID, filter)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, todos, "Todos retrieved successfully")
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.respond.Error(w, domain.NewAuthenticationError("Access token is required"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	todo, err := h.todoService.Get(r.Context(), id, user.ID)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, todo, "Todo retrieved successfully")
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.respond.Error(w, domain.NewAuthenticationError("Access token is required"))
		return
	}

	todo, err := decodeTodo(r)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	created, err := h.todoService.Create(r.Context(), user.ID, todo)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusCreated, created, "Todo created successfully")
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.respond.Error(w, domain.NewAuthenticationError("Access token is required"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	todo, err := decodeTodo(r)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	updated, err := h.todoService.Update(r.Context(), id, user.ID, todo)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, updated, "Todo updated successfully")
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.respond.Error(w, domain.NewAuthenticationError("Access token is required"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	if err := h.todoService.SoftDelete(r.Context(), id, user.ID); err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, nil, "Todo deleted successfully")
}

func (h *TodoHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.respond.Error(w, domain.NewAuthenticationError("Access token is required"))
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	var req ToggleCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsCompleted == nil {
		h.respond.Error(w, domain.NewValidationError("isCompleted is required"))
		return
	}

	todo, err := h.todoService.ToggleComplete(r.Context(), id, user.ID, *req.IsCompleted)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	message := "Todo marked as not completed successfully"
	if *req.IsCompleted {
		message = "Todo marked as completed successfully"
	}
	h.respond.JSON(w, http.StatusOK, todo, message)
}

func decodeTodo(r *http.Request) (*domain.Todo, error) {
	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, domain.NewValidationError("Invalid request body")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	return &domain.Todo{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		DueDate:     dueDate,
	}, nil
}

func parseTodoFilter(r *http.Request) (domain.TodoFilter, error) {
	var filter domain.TodoFilter

	query := r.URL.Query()
	if v := query.Get("startDate"); v != "" {
		date, err := parseDate(&v)
		if err != nil {
			return filter, err
		}
		filter.StartDate = date
	}
	if v := query.Get("endDate"); v != "" {
		date, err := parseDate(&v)
		if err != nil {
			return filter, err
		}
		filter.EndDate = date
	}
	if v := query.Get("isCompleted"); v != "" && v != "all" {
		completed := v == "true"
		filter.IsCompleted = &completed
	}
	filter.Keyword = query.Get("keyword")

	return filter, nil
}

func parseDate(value *string) (*datatypes.Date, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, domain.NewValidationError("Dates must use the YYYY-MM-DD format")
	}
	date := datatypes.Date(parsed)
	return &date, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("Invalid todo id")
	}
	return id, nil
}
