package item

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/e1zenberg/java-shareit/internal/domain/user"
)

var ErrCommentTextRequired = errors.New("item: comment text must not be blank")

type CommentID string

// Comment is feedback left by a user after a finished approved booking.
type Comment struct {
	ID         CommentID
	Text       string
	ItemID     ID
	AuthorID   user.ID
	AuthorName string
	Created    time.Time
}

type CommentRepository interface {
	ByItem(ctx context.Context, itemID ID) ([]*Comment, error)
	ByItems(ctx context.Context, itemIDs []ID) (map[ID][]*Comment, error)
	Save(ctx context.Context, c *Comment) (*Comment, error)
}

func NewComment(text string, itemID ID, author *user.User, now time.Time) (*Comment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrCommentTextRequired
	}
	return &Comment{
		Text:       trimmed,
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now.UTC(),
	}, nil
}
