package service

import (
	"github.com/seojin-dev/todo-calendar-api/internal/config"
	"github.com/seojin-dev/todo-calendar-api/internal/repository"
)

type Services struct {
	Auth     *AuthService
	User     *UserService
	Todo     *TodoService
	Holiday  *HolidayService
	Calendar *CalendarService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	hasher := NewPasswordHasher(cfg.BcryptCost)
	tokens := NewTokenIssuer(cfg)

	return &Services{
		Auth:     NewAuthService(repos.User, repos.RefreshToken, tokens, hasher),
		User:     NewUserService(repos.User, repos.RefreshToken, hasher),
		Todo:     NewTodoService(repos.Todo),
		Holiday:  NewHolidayService(repos.Todo),
		Calendar: NewCalendarService(repos.Todo),
	}
}
