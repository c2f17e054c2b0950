package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainrequest "github.com/e1zenberg/java-shareit/internal/domain/request"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type ItemRepository struct {
	mu    sync.RWMutex
	seq   sequence
	items map[domainitem.ID]*domainitem.Item
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[domainitem.ID]*domainitem.Item)}
}

func (r *ItemRepository) ByID(ctx context.Context, id domainitem.ID) (*domainitem.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domainitem.ErrNotFound
	}
	copied := *it
	return &copied, nil
}

func (r *ItemRepository) ByOwner(ctx context.Context, ownerID domainuser.ID) ([]*domainitem.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainitem.Item, 0)
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			copied := *it
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ItemRepository) ByRequestIDs(ctx context.Context, requestIDs []domainrequest.ID) ([]*domainitem.Item, error) {
	wanted := make(map[domainrequest.ID]struct{}, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainitem.Item, 0)
	for _, it := range r.items {
		if it.RequestID == "" {
			continue
		}
		if _, ok := wanted[it.RequestID]; ok {
			copied := *it
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ItemRepository) Search(ctx context.Context, text string) ([]*domainitem.Item, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return []*domainitem.Item{}, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainitem.Item, 0)
	for _, it := range r.items {
		if !it.Available {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(it.Description), needle) {
			copied := *it
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ItemRepository) Save(ctx context.Context, it *domainitem.Item) (*domainitem.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it.ID == "" {
		it.ID = domainitem.ID(r.seq.next())
	}
	copied := *it
	r.items[it.ID] = &copied
	return it, nil
}

// ownerOf reports the owner of an item without copying; used by the booking
// repository to resolve owner-scoped queries.
func (r *ItemRepository) ownerOf(id domainitem.ID) (domainuser.ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return "", false
	}
	return it.OwnerID, true
}
