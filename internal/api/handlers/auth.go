package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	respond     *Responder
}

func NewAuthHandler(authService *service.AuthService, respond *Responder) *AuthHandler {
	return &AuthHandler{authService: authService, respond: respond}
}

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond.Error(w, domain.NewValidationError("Invalid request body"))
		return
	}

	result, err := h.authService.SignUp(r.Context(), service.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusCreated, AuthResponse{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "Successfully signed up")
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond.Error(w, domain.NewValidationError("Invalid request body"))
		return
	}

	result, err := h.authService.SignIn(r.Context(), service.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, AuthResponse{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "Successfully signed in")
}

// SignOut always reports success; revocation of an unknown token is not an
// error the client can act on.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	h.authService.SignOut(r.Context(), req.RefreshToken)
	h.respond.JSON(w, http.StatusOK, nil, "Successfully signed out")
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond.Error(w, domain.NewValidationError("Invalid request body"))
		return
	}

	accessToken, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.respond.Error(w, err)
		return
	}

	h.respond.JSON(w, http.StatusOK, map[string]string{"accessToken": accessToken}, "")
}
