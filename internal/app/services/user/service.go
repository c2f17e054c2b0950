// Package user implements account CRUD with email uniqueness.
package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/e1zenberg/java-shareit/internal/apperr"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type Service struct {
	Users  domainuser.Repository
	Logger *slog.Logger
}

func (s *Service) Create(ctx context.Context, params domainuser.CreateParams) (*domainuser.User, error) {
	u, err := domainuser.NewUser(params)
	if err != nil {
		return nil, apperr.InvalidInput("%s", err)
	}
	if _, err := s.Users.ByEmail(ctx, u.Email); err == nil {
		return nil, apperr.Conflict("email already exists: %s", u.Email)
	} else if !errors.Is(err, domainuser.ErrNotFound) {
		return nil, err
	}
	saved, err := s.Users.Save(ctx, u)
	if err != nil {
		if errors.Is(err, domainuser.ErrEmailTaken) {
			return nil, apperr.Conflict("email already exists: %s", u.Email)
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user created", "user_id", saved.ID)
	}
	return saved, nil
}

// Patch applies a partial update; blank fields keep their current value.
type Patch struct {
	Name  string
	Email string
}

func (s *Service) Update(ctx context.Context, id domainuser.ID, patch Patch) (*domainuser.User, error) {
	u, err := s.Users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, apperr.NotFound("user not found: %s", id)
		}
		return nil, err
	}
	if strings.TrimSpace(patch.Name) != "" {
		if err := u.Rename(patch.Name); err != nil {
			return nil, apperr.InvalidInput("%s", err)
		}
	}
	if strings.TrimSpace(patch.Email) != "" {
		if err := u.ChangeEmail(patch.Email); err != nil {
			return nil, apperr.InvalidInput("%s", err)
		}
		if other, err := s.Users.ByEmail(ctx, u.Email); err == nil && other.ID != id {
			return nil, apperr.Conflict("email already exists: %s", u.Email)
		} else if err != nil && !errors.Is(err, domainuser.ErrNotFound) {
			return nil, err
		}
	}
	saved, err := s.Users.Save(ctx, u)
	if err != nil {
		if errors.Is(err, domainuser.ErrEmailTaken) {
			return nil, apperr.Conflict("email already exists: %s", u.Email)
		}
		return nil, err
	}
	return saved, nil
}

func (s *Service) Get(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	u, err := s.Users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, apperr.NotFound("user not found: %s", id)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) All(ctx context.Context) ([]*domainuser.User, error) {
	return s.Users.All(ctx)
}

func (s *Service) Delete(ctx context.Context, id domainuser.ID) error {
	return s.Users.Delete(ctx, id)
}
