package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuscal/calendar-system/internal/core/domain"
	"github.com/campuscal/calendar-system/internal/core/ports"
)

const eventCollection = "events"

// EventRepository implements ports.EventRepository on MongoDB.
type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventCollection)}
}

type mongoEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Department  string             `bson:"department"`
	Location    string             `bson:"location,omitempty"`
	StartsAt    time.Time          `bson:"starts_at"`
	EndsAt      time.Time          `bson:"ends_at"`
	AllDay      bool               `bson:"all_day"`
	CreatedBy   string             `bson:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *EventRepository) Create(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	doc := toMongoEvent(event)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *event
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var me mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EventRepository) List(ctx context.Context, filter ports.EventFilter) ([]domain.CalendarEvent, error) {
	q := bson.M{}
	if filter.Department != "" {
		q["department"] = filter.Department
	}
	if filter.EventID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.EventID)
		if err != nil {
			return []domain.CalendarEvent{}, nil
		}
		q["_id"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	events := []domain.CalendarEvent{}
	for cur.Next(ctx) {
		var me mongoEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, *me.toDomain())
	}
	return events, cur.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	oid, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	doc := toMongoEvent(event)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func toMongoEvent(e *domain.CalendarEvent) mongoEvent {
	return mongoEvent{
		Title:       e.Title,
		Description: e.Description,
		Department:  e.Department,
		Location:    e.Location,
		StartsAt:    e.StartsAt.UTC(),
		EndsAt:      e.EndsAt.UTC(),
		AllDay:      e.AllDay,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

func (me *mongoEvent) toDomain() *domain.CalendarEvent {
	return &domain.CalendarEvent{
		ID:          me.ID.Hex(),
		Title:       me.Title,
		Description: me.Description,
		Department:  me.Department,
		Location:    me.Location,
		StartsAt:    me.StartsAt,
		EndsAt:      me.EndsAt,
		AllDay:      me.AllDay,
		CreatedBy:   me.CreatedBy,
		CreatedAt:   me.CreatedAt,
		UpdatedAt:   me.UpdatedAt,
	}
}
