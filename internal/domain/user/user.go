package user

import (
	"regexp"
	"strings"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*\.\w{2,4}$`)

// User is the aggregate root for a registered user.
type User struct {
	id    int64
	name  string
	email string
}

// NewUser creates a user with a required name and a well-formed email.
func NewUser(name, email string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	return &User{name: name, email: email}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id int64, name, email string) *User {
	return &User{id: id, name: name, email: email}
}

// --- Getters ---

func (u *User) ID() int64     { return u.id }
func (u *User) Name() string  { return u.name }
func (u *User) Email() string { return u.email }

// --- Behavior ---

// AssignID sets the identifier issued by the store on first save.
func (u *User) AssignID(id int64) {
	u.id = id
}

// Update applies a partial update. Nil or blank fields are left unchanged.
func (u *User) Update(name, email *string) error {
	if email != nil && strings.TrimSpace(*email) != "" {
		if err := validateEmail(*email); err != nil {
			return err
		}
		u.email = *email
	}
	if name != nil && strings.TrimSpace(*name) != "" {
		u.name = *name
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.NewValidationError("email is required")
	}
	if !emailPattern.MatchString(email) {
		return domain.NewValidationError("invalid email: " + email)
	}
	return nil
}
