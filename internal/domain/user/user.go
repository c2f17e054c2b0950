package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNameRequired  = errors.New("user: name is required")
	ErrEmailRequired = errors.New("user: email is required")
	ErrEmailInvalid  = errors.New("user: email is invalid")
	ErrEmailTaken    = errors.New("user: email already exists")
	ErrNotFound      = errors.New("user: not found")
)

type ID string

// User owns items, books other users' items and comments on them.
type User struct {
	ID    ID
	Name  string
	Email string
}

// Repository persists users. Save without an ID inserts and returns the entity
// with its assigned identity; uniqueness of email is enforced by the store and
// surfaces as ErrEmailTaken.
type Repository interface {
	ByID(ctx context.Context, id ID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	All(ctx context.Context) ([]*User, error)
	Save(ctx context.Context, u *User) (*User, error)
	Delete(ctx context.Context, id ID) error
}

// local part, @, domain with a dot; anything stricter belongs to the gateway
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type CreateParams struct {
	Name  string
	Email string
}

func NewUser(params CreateParams) (*User, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := normalizeEmail(params.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	return &User{Name: name, Email: email}, nil
}

func (u *User) Rename(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	u.Name = trimmed
	return nil
}

func (u *User) ChangeEmail(email string) error {
	normalized := normalizeEmail(email)
	if !emailPattern.MatchString(normalized) {
		return ErrEmailInvalid
	}
	u.Email = normalized
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
