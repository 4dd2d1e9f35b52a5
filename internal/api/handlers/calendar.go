package handlers

import (
	"net/http"

	"github.com/seojin-dev/todo-calendar-api/internal/api/middleware"
	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/service"
)

type CalendarHandler struct {
	calendarService *service.CalendarService
	respond         *Responder
}

func NewCalendarHandler(calendarService *service.CalendarService, respond *Responder) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService, respond: respond}
}

func (h *CalendarHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.respond.Error(w, domain.NewAuthenticationError("Access token is required"))
		return
	}

	query := r.URL.Query()
	startValue := query.Get("startDate")
	endValue := query.Get("endDate")
	if startValue == "" || endValue == "" {
		h.respond.Error(w, domain.NewValidationError("startDate and endDate are required"))
		return
	}

	start, err := parseDate(&startValue)
	if err != nil {
		h.respond.Error(w, err)
		return
	}
	end, err := parseDate(&endValue)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	days, err := h.calendarService.Range(r.Context(), user.ID, *start, *end)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, days, "Calendar data retrieved successfully")
}
