package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/service"
)

type HolidayHandler struct {
	holidayService *service.HolidayService
	respond        *Responder
}

func NewHolidayHandler(holidayService *service.HolidayService, respond *Responder) *HolidayHandler {
	return &HolidayHandler{holidayService: holidayService, respond: respond}
}

type HolidayRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request) {
	var year *int
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			h.respond.Error(w, domain.NewValidationError("Year must be a number"))
			return
		}
		year = &parsed
	}

	holidays, err := h.holidayService.List(r.Context(), year)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, holidays, "Public holidays retrieved successfully")
}

func (h *HolidayHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req HolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond.Error(w, domain.NewValidationError("Invalid request body"))
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	holiday, err := h.holidayService.Add(r.Context(), service.HolidayInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
	})
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusCreated, holiday, "Public holiday added successfully")
}
