package service

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
)

const passwordPolicyMessage = "Password must be at least 8 characters long and include at least one letter, one number, and one special character"

var (
	passwordHasLetter  = regexp.MustCompile(`[A-Za-z]`)
	passwordHasDigit   = regexp.MustCompile(`\d`)
	passwordHasSpecial = regexp.MustCompile(`[@$!%*#?&]`)
	passwordCharset    = regexp.MustCompile(`^[A-Za-z\d@$!%*#?&]+$`)
)

// PasswordHasher wraps bcrypt with a configurable work factor.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Check reports whether password matches digest. bcrypt's comparison does not
// short-circuit on mismatched digests.
func (h *PasswordHasher) Check(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// ValidatePassword enforces the signup password policy: at least 8 characters
// drawn from letters, digits and the fixed special set, with at least one of
// each class present.
func ValidatePassword(password string) error {
	if len(password) < 8 ||
		!passwordCharset.MatchString(password) ||
		!passwordHasLetter.MatchString(password) ||
		!passwordHasDigit.MatchString(password) ||
		!passwordHasSpecial.MatchString(password) {
		return domain.NewValidationError(passwordPolicyMessage)
	}
	return nil
}
