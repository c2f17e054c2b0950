package item

import (
	"context"
	"errors"
	"strings"

	"github.com/e1zenberg/java-shareit/internal/domain/request"
	"github.com/e1zenberg/java-shareit/internal/domain/user"
)

var (
	ErrNameRequired        = errors.New("item: name is required")
	ErrDescriptionRequired = errors.New("item: description is required")
	ErrAvailableRequired   = errors.New("item: available flag is required")
	ErrNotFound            = errors.New("item: not found")
)

type ID string

// Item is a shareable thing listed by its owner. Available is a flag the
// owner toggles by hand; it is not derived from the booking history.
type Item struct {
	ID          ID
	Name        string
	Description string
	Available   bool
	OwnerID     user.ID
	RequestID   request.ID // set when the item answers an item-request
}

// Repository persists items. Save without an ID inserts and returns the entity
// with its assigned identity.
type Repository interface {
	ByID(ctx context.Context, id ID) (*Item, error)
	ByOwner(ctx context.Context, ownerID user.ID) ([]*Item, error)
	ByRequestIDs(ctx context.Context, requestIDs []request.ID) ([]*Item, error)
	// Search matches text against name and description, case-insensitively,
	// returning available items only. Blank text yields an empty result.
	Search(ctx context.Context, text string) ([]*Item, error)
	Save(ctx context.Context, it *Item) (*Item, error)
}

type CreateParams struct {
	Name        string
	Description string
	Available   *bool
	OwnerID     user.ID
	RequestID   request.ID
}

func NewItem(params CreateParams) (*Item, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	description := strings.TrimSpace(params.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if params.Available == nil {
		return nil, ErrAvailableRequired
	}
	return &Item{
		Name:        name,
		Description: description,
		Available:   *params.Available,
		OwnerID:     params.OwnerID,
		RequestID:   params.RequestID,
	}, nil
}

// Patch applies a partial update; empty fields keep their current value.
type Patch struct {
	Name        string
	Description string
	Available   *bool
}

func (i *Item) Apply(patch Patch) {
	if name := strings.TrimSpace(patch.Name); name != "" {
		i.Name = name
	}
	if desc := strings.TrimSpace(patch.Description); desc != "" {
		i.Description = desc
	}
	if patch.Available != nil {
		i.Available = *patch.Available
	}
}
