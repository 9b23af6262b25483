package bookingRepo

import (
	"context"
	"time"

	"flupp/database"
	"flupp/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoBookingRepo struct {
	coll     *mongo.Collection
	lockColl *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("flupp")
	repo := &mongoBookingRepo{
		coll:     db.Collection("bookings"),
		lockColl: db.Collection("booking_locks"),
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("booking index creation failed", zap.Error(err))
	}
	return repo
}

// Create inserts a new booking after verifying no overlapping interval
// exists for the same customer. The check and the insert run under a
// short-lived advisory lock keyed by customer email, so two concurrent
// requests for the same customer cannot both pass the overlap check.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if err := r.acquireLock(ctx, booking.CustomerEmail); err != nil {
		return err
	}
	defer r.releaseLock(booking.CustomerEmail)

	overlap, err := r.hasOverlap(ctx, booking)
	if err != nil {
		return err
	}
	if overlap {
		return ErrOverlap
	}

	_, err = r.coll.InsertOne(ctx, booking)
	return err
}

// hasOverlap reports whether a non-cancelled booking for the same
// customer intersects the half-open interval [StartAt, EndAt).
func (r *mongoBookingRepo) hasOverlap(ctx context.Context, booking *models.Booking) (bool, error) {
	filter := bson.M{
		"customer_email": booking.CustomerEmail,
		"status":         bson.M{"$ne": models.StatusCancelled},
		"start_at":       bson.M{"$lt": booking.EndAt},
		"end_at":         bson.M{"$gt": booking.StartAt},
	}
	err := r.coll.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByID returns a booking by its id.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateStatusFrom performs a compare-and-swap on the booking status.
// The filter includes the expected current status; if the document moved
// under us the update matches nothing and ErrStale is returned so the
// caller can re-read and re-validate the transition.
func (r *mongoBookingRepo) UpdateStatusFrom(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// Distinguish a missing booking from a concurrent status change.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetPaymentIntent records the external processor's intent reference.
func (r *mongoBookingRepo) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	update := bson.M{"$set": bson.M{"payment_intent_id": intentID, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelExpiredPending cancels bookings still awaiting payment whose end
// time has passed. Used by the expiry sweep worker.
func (r *mongoBookingRepo) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"status": models.StatusPendingPayment,
		"end_at": bson.M{"$lt": now},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusCancelled, "updated_at": now}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// acquireLock inserts an advisory lock document keyed by customer email.
// The unique _id makes concurrent inserts collide; losers retry briefly
// and then give up with ErrLockTimeout. A TTL index on expires_at cleans
// up locks abandoned by a crashed process.
func (r *mongoBookingRepo) acquireLock(ctx context.Context, customerEmail string) error {
	doc := bson.M{
		"_id":        "booking:" + customerEmail,
		"expires_at": time.Now().UTC().Add(10 * time.Second),
		"created_at": time.Now().UTC(),
	}
	const maxAttempts = 20
	for attempt := 0; attempt < maxAttempts; attempt++ {
		_, err := r.lockColl.InsertOne(ctx, doc)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
	return ErrLockTimeout
}

func (r *mongoBookingRepo) releaseLock(customerEmail string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _ = r.lockColl.DeleteOne(ctx, bson.M{"_id": "booking:" + customerEmail})
}
