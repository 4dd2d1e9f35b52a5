package handlers

import (
	"net/http"

	"github.com/seojin-dev/todo-calendar-api/internal/api/middleware"
	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/service"
)

type TrashHandler struct {
	todoService *service.TodoService
	respond     *Responder
}

func NewTrashHandler(todoService *service.TodoService, respond *Responder) *TrashHandler {
	return &TrashHandler{todoService: todoService, respond: respond}
}

func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.respond.Error(w, domain.NewAuthenticationError("Access token is required"))
		return
	}

	todos, err := h.todoService.ListTrash(r.Context(), user.ID)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, todos, "Trash todos retrieved successfully")
}

func (h *TrashHandler) Restore(w http.ResponseWriter, r *http.Request) {
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

	todo, err := h.todoService.Restore(r.Context(), id, user.ID)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, todo, "Todo restored successfully")
}

func (h *TrashHandler) Purge(w http.ResponseWriter, r *http.Request) {
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

	if err := h.todoService.Purge(r.Context(), id, user.ID); err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, nil, "Todo permanently deleted successfully")
}
