package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainrequest "github.com/e1zenberg/java-shareit/internal/domain/request"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type RequestRepository struct {
	col *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{col: db.Collection("item_requests")}
}

func (r *RequestRepository) ByID(ctx context.Context, id domainrequest.ID) (*domainrequest.ItemRequest, error) {
	var doc requestDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainrequest.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *RequestRepository) ByRequestor(ctx context.Context, requestorID domainuser.ID) ([]*domainrequest.ItemRequest, error) {
	return r.find(ctx, bson.M{"requestor_id": string(requestorID)}, nil)
}

func (r *RequestRepository) ByOthers(ctx context.Context, requestorID domainuser.ID, page, size int) ([]*domainrequest.ItemRequest, error) {
	opts := options.Find().SetSkip(int64(page * size)).SetLimit(int64(size))
	return r.find(ctx, bson.M{"requestor_id": bson.M{"$ne": string(requestorID)}}, opts)
}

func (r *RequestRepository) Save(ctx context.Context, req *domainrequest.ItemRequest) (*domainrequest.ItemRequest, error) {
	if req.ID == "" {
		req.ID = domainrequest.ID(uuid.NewString())
	}
	doc := newRequestDocument(req)
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *RequestRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domainrequest.ItemRequest, error) {
	if opts == nil {
		opts = options.Find()
	}
	opts.SetSort(bson.D{{Key: "created", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []requestDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domainrequest.ItemRequest, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toEntity())
	}
	return out, nil
}

type requestDocument struct {
	ID          string `bson:"_id"`
	Description string `bson:"description"`
	RequestorID string `bson:"requestor_id"`
	Created     int64  `bson:"created"`
}

func newRequestDocument(req *domainrequest.ItemRequest) requestDocument {
	return requestDocument{
		ID:          string(req.ID),
		Description: req.Description,
		RequestorID: string(req.RequestorID),
		Created:     req.Created.UnixMilli(),
	}
}

func (d requestDocument) toEntity() *domainrequest.ItemRequest {
	return &domainrequest.ItemRequest{
		ID:          domainrequest.ID(d.ID),
		Description: d.Description,
		RequestorID: domainuser.ID(d.RequestorID),
		Created:     time.UnixMilli(d.Created).UTC(),
	}
}
