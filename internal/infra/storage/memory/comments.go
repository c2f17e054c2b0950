package memory

import (
	"context"
	"sort"
	"sync"

	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
)

type CommentRepository struct {
	mu       sync.RWMutex
	seq      sequence
	comments map[domainitem.CommentID]*domainitem.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[domainitem.CommentID]*domainitem.Comment)}
}

func (r *CommentRepository) ByItem(ctx context.Context, itemID domainitem.ID) ([]*domainitem.Comment, error) {
	grouped, err := r.ByItems(ctx, []domainitem.ID{itemID})
	if err != nil {
		return nil, err
	}
	if rows, ok := grouped[itemID]; ok {
		return rows, nil
	}
	return []*domainitem.Comment{}, nil
}

func (r *CommentRepository) ByItems(ctx context.Context, itemIDs []domainitem.ID) (map[domainitem.ID][]*domainitem.Comment, error) {
	wanted := make(map[domainitem.ID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[domainitem.ID][]*domainitem.Comment)
	for _, c := range r.comments {
		if _, ok := wanted[c.ItemID]; !ok {
			continue
		}
		copied := *c
		out[c.ItemID] = append(out[c.ItemID], &copied)
	}
	for _, rows := range out {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Created.Before(rows[j].Created) })
	}
	return out, nil
}

func (r *CommentRepository) Save(ctx context.Context, c *domainitem.Comment) (*domainitem.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = domainitem.CommentID(r.seq.next())
	}
	copied := *c
	r.comments[c.ID] = &copied
	return c, nil
}
