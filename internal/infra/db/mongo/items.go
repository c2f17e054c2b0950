package mongo

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainrequest "github.com/e1zenberg/java-shareit/internal/domain/request"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection("items")}
}

func (r *ItemRepository) ByID(ctx context.Context, id domainitem.ID) (*domainitem.Item, error) {
	var doc itemDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainitem.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *ItemRepository) ByOwner(ctx context.Context, ownerID domainuser.ID) ([]*domainitem.Item, error) {
	return r.find(ctx, bson.M{"owner_id": string(ownerID)})
}

func (r *ItemRepository) ByRequestIDs(ctx context.Context, requestIDs []domainrequest.ID) ([]*domainitem.Item, error) {
	ids := make([]string, 0, len(requestIDs))
	for _, id := range requestIDs {
		ids = append(ids, string(id))
	}
	return r.find(ctx, bson.M{"request_id": bson.M{"$in": ids}})
}

func (r *ItemRepository) Search(ctx context.Context, text string) ([]*domainitem.Item, error) {
	if text == "" {
		return []*domainitem.Item{}, nil
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	return r.find(ctx, bson.M{
		"available": true,
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		},
	})
}

func (r *ItemRepository) Save(ctx context.Context, it *domainitem.Item) (*domainitem.Item, error) {
	if it.ID == "" {
		it.ID = domainitem.ID(uuid.NewString())
	}
	doc := newItemDocument(it)
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// ownerItemIDs is used by the booking repository to scope queries by owner.
func (r *ItemRepository) ownerItemIDs(ctx context.Context, ownerID domainuser.ID) ([]string, error) {
	cursor, err := r.col.Find(ctx, bson.M{"owner_id": string(ownerID)},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func (r *ItemRepository) find(ctx context.Context, filter bson.M) ([]*domainitem.Item, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domainitem.Item, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toEntity())
	}
	return out, nil
}

type itemDocument struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
	Available   bool   `bson:"available"`
	OwnerID     string `bson:"owner_id"`
	RequestID   string `bson:"request_id,omitempty"`
}

func newItemDocument(it *domainitem.Item) itemDocument {
	return itemDocument{
		ID:          string(it.ID),
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     string(it.OwnerID),
		RequestID:   string(it.RequestID),
	}
}

func (d itemDocument) toEntity() *domainitem.Item {
	return &domainitem.Item{
		ID:          domainitem.ID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Available:   d.Available,
		OwnerID:     domainuser.ID(d.OwnerID),
		RequestID:   domainrequest.ID(d.RequestID),
	}
}
