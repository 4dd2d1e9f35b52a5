package service

import "time"

// Clock lets tests pin "now" when exercising expiry checks.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// WithClock swaps the service's time source. Test hook.
func (s *AuthService) WithClock(clock Clock) *AuthService {
	s.clock = clock
	return s
}
