// Package request implements item-requests: creation and the three read
// shapes, each carrying the items listed in answer to a request.
package request

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/e1zenberg/java-shareit/internal/apperr"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainrequest "github.com/e1zenberg/java-shareit/internal/domain/request"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type Service struct {
	Requests domainrequest.Repository
	Items    domainitem.Repository
	Users    domainuser.Repository
	Logger   *slog.Logger

	now func() time.Time
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

// WithItems pairs a request with the items listed in answer to it.
type WithItems struct {
	Request *domainrequest.ItemRequest
	Items   []*domainitem.Item
}

func (s *Service) Create(ctx context.Context, requestorID domainuser.ID, description string) (*domainrequest.ItemRequest, error) {
	if err := s.ensureUser(ctx, requestorID); err != nil {
		return nil, err
	}
	r, err := domainrequest.New(description, requestorID, s.clock())
	if err != nil {
		return nil, apperr.InvalidInput("%s", err)
	}
	saved, err := s.Requests.Save(ctx, r)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("item request created", "request_id", saved.ID, "requestor_id", requestorID)
	}
	return saved, nil
}

// Own returns the caller's requests, newest first, with answering items.
func (s *Service) Own(ctx context.Context, requestorID domainuser.ID) ([]*WithItems, error) {
	if err := s.ensureUser(ctx, requestorID); err != nil {
		return nil, err
	}
	requests, err := s.Requests.ByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// Others pages over requests created by everyone else.
func (s *Service) Others(ctx context.Context, requestorID domainuser.ID, from, size int) ([]*WithItems, error) {
	if err := s.ensureUser(ctx, requestorID); err != nil {
		return nil, err
	}
	if from < 0 {
		return nil, apperr.InvalidInput("'from' must be >= 0")
	}
	if size <= 0 {
		return nil, apperr.InvalidInput("'size' must be > 0")
	}
	requests, err := s.Requests.ByOthers(ctx, requestorID, from/size, size)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *Service) Get(ctx context.Context, userID domainuser.ID, requestID domainrequest.ID) (*WithItems, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.Requests.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domainrequest.ErrNotFound) {
			return nil, apperr.NotFound("request not found: %s", requestID)
		}
		return nil, err
	}
	rows, err := s.attachItems(ctx, []*domainrequest.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (s *Service) ensureUser(ctx context.Context, id domainuser.ID) error {
	if _, err := s.Users.ByID(ctx, id); err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return apperr.NotFound("user not found: %s", id)
		}
		return err
	}
	return nil
}

func (s *Service) attachItems(ctx context.Context, requests []*domainrequest.ItemRequest) ([]*WithItems, error) {
	rows := make([]*WithItems, 0, len(requests))
	if len(requests) == 0 {
		return rows, nil
	}
	ids := make([]domainrequest.ID, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	items, err := s.Items.ByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[domainrequest.ID][]*domainitem.Item, len(ids))
	for _, it := range items {
		byRequest[it.RequestID] = append(byRequest[it.RequestID], it)
	}
	for _, r := range requests {
		rows = append(rows, &WithItems{Request: r, Items: byRequest[r.ID]})
	}
	return rows, nil
}
