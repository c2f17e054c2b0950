// Package request holds item-requests: a user describes a thing they need,
// and other users may answer by listing matching items.
package request

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/e1zenberg/java-shareit/internal/domain/user"
)

var (
	ErrDescriptionRequired = errors.New("request: description must not be blank")
	ErrNotFound            = errors.New("request: not found")
)

type ID string

type ItemRequest struct {
	ID          ID
	Description string
	RequestorID user.ID
	Created     time.Time
}

// Repository persists item-requests. Listing methods order newest-first.
type Repository interface {
	ByID(ctx context.Context, id ID) (*ItemRequest, error)
	ByRequestor(ctx context.Context, requestorID user.ID) ([]*ItemRequest, error)
	// ByOthers pages over requests created by everyone except requestorID.
	ByOthers(ctx context.Context, requestorID user.ID, page, size int) ([]*ItemRequest, error)
	Save(ctx context.Context, r *ItemRequest) (*ItemRequest, error)
}

func New(description string, requestorID user.ID, now time.Time) (*ItemRequest, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return nil, ErrDescriptionRequired
	}
	return &ItemRequest{
		Description: trimmed,
		RequestorID: requestorID,
		Created:     now.UTC(),
	}, nil
}
