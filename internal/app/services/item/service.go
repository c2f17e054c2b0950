// Package item implements item CRUD, text search, the owner's enriched item
// view and comment creation behind the finished-booking eligibility gate.
package item

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/e1zenberg/java-shareit/internal/apperr"
	"github.com/e1zenberg/java-shareit/internal/app/availability"
	domainbooking "github.com/e1zenberg/java-shareit/internal/domain/booking"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type Service struct {
	Items        domainitem.Repository
	Comments     domainitem.CommentRepository
	Users        domainuser.Repository
	Bookings     domainbooking.Repository
	Availability *availability.Aggregator
	Logger       *slog.Logger

	now func() time.Time
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) Create(ctx context.Context, ownerID domainuser.ID, params domainitem.CreateParams) (*domainitem.Item, error) {
	if _, err := s.Users.ByID(ctx, ownerID); err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, apperr.NotFound("user not found: %s", ownerID)
		}
		return nil, err
	}
	params.OwnerID = ownerID
	it, err := domainitem.NewItem(params)
	if err != nil {
		return nil, apperr.InvalidInput("%s", err)
	}
	return s.Items.Save(ctx, it)
}

// Update applies a partial patch. A non-owner caller gets NotFound, matching
// the existence-hiding convention of the booking path.
func (s *Service) Update(ctx context.Context, ownerID domainuser.ID, itemID domainitem.ID, patch domainitem.Patch) (*domainitem.Item, error) {
	it, err := s.Items.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domainitem.ErrNotFound) {
			return nil, apperr.NotFound("item not found: %s", itemID)
		}
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, apperr.NotFound("item not found: %s", itemID)
	}
	it.Apply(patch)
	return s.Items.Save(ctx, it)
}

// Details is the single-item view: comments always, last/next only when the
// requester owns the item.
type Details struct {
	Item     *domainitem.Item
	Comments []*domainitem.Comment
	Last     *domainbooking.Short
	Next     *domainbooking.Short
}

func (s *Service) Get(ctx context.Context, requesterID domainuser.ID, itemID domainitem.ID) (*Details, error) {
	it, err := s.Items.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domainitem.ErrNotFound) {
			return nil, apperr.NotFound("item not found: %s", itemID)
		}
		return nil, err
	}
	comments, err := s.Comments.ByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	details := &Details{Item: it, Comments: comments}
	if it.OwnerID == requesterID {
		summary, err := s.Availability.ForItem(ctx, itemID, s.clock())
		if err != nil {
			return nil, err
		}
		details.Last = summary.Last
		details.Next = summary.Next
	}
	return details, nil
}

// OwnerItem is one row of the owner's list: the item, its comments and its
// booking horizon.
type OwnerItem struct {
	Item     *domainitem.Item
	Comments []*domainitem.Comment
	Last     *domainbooking.Short
	Next     *domainbooking.Short
}

// ListByOwner enriches every item of the owner with comments and last/next
// summaries. Items are independent: an empty booking history on one item
// never blocks the rest.
func (s *Service) ListByOwner(ctx context.Context, ownerID domainuser.ID, from, size int) ([]*OwnerItem, error) {
	if from < 0 {
		return nil, apperr.InvalidInput("'from' must be >= 0")
	}
	if size <= 0 {
		return nil, apperr.InvalidInput("'size' must be > 0")
	}
	items, err := s.Items.ByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*OwnerItem{}, nil
	}

	ids := make([]domainitem.ID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	commentsByItem, err := s.Comments.ByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	summaries, err := s.Availability.LastAndNext(ctx, ids, s.clock())
	if err != nil {
		return nil, err
	}

	rows := make([]*OwnerItem, 0, len(items))
	for _, it := range items {
		summary := summaries[it.ID]
		rows = append(rows, &OwnerItem{
			Item:     it,
			Comments: commentsByItem[it.ID],
			Last:     summary.Last,
			Next:     summary.Next,
		})
	}

	start := min(from, len(rows))
	end := min(start+size, len(rows))
	return rows[start:end], nil
}

func (s *Service) Search(ctx context.Context, text string) ([]*domainitem.Item, error) {
	return s.Items.Search(ctx, text)
}

// CanComment is the eligibility gate: only a booker whose APPROVED booking of
// the item has already ended may leave feedback.
func (s *Service) CanComment(ctx context.Context, userID domainuser.ID, itemID domainitem.ID, now time.Time) (bool, error) {
	return s.Bookings.HasFinishedApproved(ctx, userID, itemID, now)
}

func (s *Service) AddComment(ctx context.Context, userID domainuser.ID, itemID domainitem.ID, text string) (*domainitem.Comment, error) {
	now := s.clock()
	ok, err := s.CanComment(ctx, userID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidInput("only users with a finished approved booking may comment")
	}

	it, err := s.Items.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domainitem.ErrNotFound) {
			return nil, apperr.NotFound("item not found: %s", itemID)
		}
		return nil, err
	}
	author, err := s.Users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, apperr.NotFound("user not found: %s", userID)
		}
		return nil, err
	}
	comment, err := domainitem.NewComment(text, it.ID, author, now)
	if err != nil {
		return nil, apperr.InvalidInput("%s", err)
	}
	saved, err := s.Comments.Save(ctx, comment)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("comment added", "item_id", it.ID, "author_id", author.ID)
	}
	return saved, nil
}
