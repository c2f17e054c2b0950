package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "github.com/e1zenberg/java-shareit/internal/domain/booking"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

// BookingRepository stores bookings with millisecond timestamps and resolves
// owner-scoped queries through the items collection.
type BookingRepository struct {
	col   *mongo.Collection
	items *ItemRepository
}

func NewBookingRepository(db *mongo.Database, items *ItemRepository) *BookingRepository {
	return &BookingRepository{col: db.Collection("bookings"), items: items}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domainbooking.Booking) (*domainbooking.Booking, error) {
	if b.ID == "" {
		b.ID = domainbooking.ID(uuid.NewString())
	}
	if _, err := r.col.InsertOne(ctx, newBookingDocument(b)); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateStatus is the conditional write closing the approve race: the filter
// matches the row only while it still carries `from`, so a losing concurrent
// decision sees no document instead of overwriting a terminal status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id domainbooking.ID, from, to domainbooking.Status) (*domainbooking.Booking, error) {
	var doc bookingDocument
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": string(id), "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.toEntity(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	// Distinguish a missing booking from one already decided.
	if _, lookupErr := r.ByID(ctx, id); lookupErr != nil {
		return nil, lookupErr
	}
	return nil, domainbooking.ErrNotWaiting
}

func (r *BookingRepository) ListByBooker(ctx context.Context, bookerID domainuser.ID, q domainbooking.Query) ([]*domainbooking.Booking, error) {
	filter := queryFilter(q)
	filter["booker_id"] = string(bookerID)
	return r.page(ctx, filter, q)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID domainuser.ID, q domainbooking.Query) ([]*domainbooking.Booking, error) {
	itemIDs, err := r.items.ownerItemIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return []*domainbooking.Booking{}, nil
	}
	filter := queryFilter(q)
	filter["item_id"] = bson.M{"$in": itemIDs}
	return r.page(ctx, filter, q)
}

func (r *BookingRepository) LastForItems(ctx context.Context, itemIDs []domainitem.ID, now time.Time) (map[domainitem.ID]*domainbooking.Booking, error) {
	return r.firstPerItem(ctx, itemIDs,
		bson.M{"start": bson.M{"$lt": now.UnixMilli()}},
		bson.D{{Key: "end", Value: -1}},
	)
}

func (r *BookingRepository) NextForItems(ctx context.Context, itemIDs []domainitem.ID, now time.Time) (map[domainitem.ID]*domainbooking.Booking, error) {
	return r.firstPerItem(ctx, itemIDs,
		bson.M{"start": bson.M{"$gt": now.UnixMilli()}},
		bson.D{{Key: "start", Value: 1}},
	)
}

func (r *BookingRepository) HasFinishedApproved(ctx context.Context, bookerID domainuser.ID, itemID domainitem.ID, now time.Time) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{
		"booker_id": string(bookerID),
		"item_id":   string(itemID),
		"status":    string(domainbooking.StatusApproved),
		"end":       bson.M{"$lt": now.UnixMilli()},
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// firstPerItem groups APPROVED bookings of the requested items and keeps the
// first document per item under the given sort: one pipeline, not one query
// per item.
func (r *BookingRepository) firstPerItem(ctx context.Context, itemIDs []domainitem.ID, window bson.M, sort bson.D) (map[domainitem.ID]*domainbooking.Booking, error) {
	ids := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		ids = append(ids, string(id))
	}
	match := bson.M{
		"item_id": bson.M{"$in": ids},
		"status":  string(domainbooking.StatusApproved),
	}
	for k, v := range window {
		match[k] = v
	}
	cursor, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$group", Value: bson.M{"_id": "$item_id", "doc": bson.M{"$first": "$$ROOT"}}}},
	})
	if err != nil {
		return nil, err
	}
	var groups []struct {
		Doc bookingDocument `bson:"doc"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	out := make(map[domainitem.ID]*domainbooking.Booking, len(groups))
	for _, g := range groups {
		b := g.Doc.toEntity()
		out[b.ItemID] = b
	}
	return out, nil
}

func (r *BookingRepository) page(ctx context.Context, filter bson.M, q domainbooking.Query) ([]*domainbooking.Booking, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "start", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.Size)))
	if err != nil {
		return nil, err
	}
	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domainbooking.Booking, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toEntity())
	}
	return out, nil
}

func queryFilter(q domainbooking.Query) bson.M {
	now := q.Now.UnixMilli()
	switch q.Filter {
	case domainbooking.FilterCurrent:
		return bson.M{"start": bson.M{"$lte": now}, "end": bson.M{"$gt": now}}
	case domainbooking.FilterPast:
		return bson.M{"end": bson.M{"$lt": now}}
	case domainbooking.FilterFuture:
		return bson.M{"start": bson.M{"$gt": now}}
	case domainbooking.FilterWaiting:
		return bson.M{"status": string(domainbooking.StatusWaiting)}
	case domainbooking.FilterRejected:
		return bson.M{"status": string(domainbooking.StatusRejected)}
	default:
		return bson.M{}
	}
}

type bookingDocument struct {
	ID       string `bson:"_id"`
	Start    int64  `bson:"start"`
	End      int64  `bson:"end"`
	ItemID   string `bson:"item_id"`
	BookerID string `bson:"booker_id"`
	Status   string `bson:"status"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:       string(b.ID),
		Start:    b.Start.UnixMilli(),
		End:      b.End.UnixMilli(),
		ItemID:   string(b.ItemID),
		BookerID: string(b.BookerID),
		Status:   string(b.Status),
	}
}

func (d bookingDocument) toEntity() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:       domainbooking.ID(d.ID),
		Start:    time.UnixMilli(d.Start).UTC(),
		End:      time.UnixMilli(d.End).UTC(),
		ItemID:   domainitem.ID(d.ItemID),
		BookerID: domainuser.ID(d.BookerID),
		Status:   domainbooking.Status(d.Status),
	}
}
