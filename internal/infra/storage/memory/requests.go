package memory

import (
	"context"
	"sort"
	"sync"

	domainrequest "github.com/e1zenberg/java-shareit/internal/domain/request"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type RequestRepository struct {
	mu       sync.RWMutex
	seq      sequence
	requests map[domainrequest.ID]*domainrequest.ItemRequest
}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{requests: make(map[domainrequest.ID]*domainrequest.ItemRequest)}
}

func (r *RequestRepository) ByID(ctx context.Context, id domainrequest.ID) (*domainrequest.ItemRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domainrequest.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *RequestRepository) ByRequestor(ctx context.Context, requestorID domainuser.ID) ([]*domainrequest.ItemRequest, error) {
	return r.collect(func(req *domainrequest.ItemRequest) bool {
		return req.RequestorID == requestorID
	}, 0, 0)
}

func (r *RequestRepository) ByOthers(ctx context.Context, requestorID domainuser.ID, page, size int) ([]*domainrequest.ItemRequest, error) {
	return r.collect(func(req *domainrequest.ItemRequest) bool {
		return req.RequestorID != requestorID
	}, page, size)
}

func (r *RequestRepository) Save(ctx context.Context, req *domainrequest.ItemRequest) (*domainrequest.ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = domainrequest.ID(r.seq.next())
	}
	copied := *req
	r.requests[req.ID] = &copied
	return req, nil
}

// collect filters, sorts newest-first and applies paging when size > 0.
func (r *RequestRepository) collect(match func(*domainrequest.ItemRequest) bool, page, size int) ([]*domainrequest.ItemRequest, error) {
	r.mu.RLock()
	out := make([]*domainrequest.ItemRequest, 0)
	for _, req := range r.requests {
		if match(req) {
			copied := *req
			out = append(out, &copied)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].ID > out[j].ID
	})

	if size <= 0 {
		return out, nil
	}
	start := page * size
	if start >= len(out) {
		return []*domainrequest.ItemRequest{}, nil
	}
	end := start + size
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}
