package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection("comments")}
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
	ids := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		ids = append(ids, string(id))
	}
	cursor, err := r.col.Find(ctx,
		bson.M{"item_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "created", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make(map[domainitem.ID][]*domainitem.Comment)
	for _, doc := range docs {
		c := doc.toEntity()
		out[c.ItemID] = append(out[c.ItemID], c)
	}
	return out, nil
}

func (r *CommentRepository) Save(ctx context.Context, c *domainitem.Comment) (*domainitem.Comment, error) {
	if c.ID == "" {
		c.ID = domainitem.CommentID(uuid.NewString())
	}
	if _, err := r.col.InsertOne(ctx, newCommentDocument(c)); err != nil {
		return nil, err
	}
	return c, nil
}

type commentDocument struct {
	ID         string `bson:"_id"`
	Text       string `bson:"text"`
	ItemID     string `bson:"item_id"`
	AuthorID   string `bson:"author_id"`
	AuthorName string `bson:"author_name"`
	Created    int64  `bson:"created"`
}

func newCommentDocument(c *domainitem.Comment) commentDocument {
	return commentDocument{
		ID:         string(c.ID),
		Text:       c.Text,
		ItemID:     string(c.ItemID),
		AuthorID:   string(c.AuthorID),
		AuthorName: c.AuthorName,
		Created:    c.Created.UnixMilli(),
	}
}

func (d commentDocument) toEntity() *domainitem.Comment {
	return &domainitem.Comment{
		ID:         domainitem.CommentID(d.ID),
		Text:       d.Text,
		ItemID:     domainitem.ID(d.ItemID),
		AuthorID:   domainuser.ID(d.AuthorID),
		AuthorName: d.AuthorName,
		Created:    time.UnixMilli(d.Created).UTC(),
	}
}
