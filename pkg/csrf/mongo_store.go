package csrf

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const tokensCollection = "csrf_tokens"

type tokenDoc struct {
	Token     string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// MongoStore implements Store backed by the application document store.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a CSRF token store on the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coll: db.Collection(tokensCollection),
	}
}

// EnsureIndexes creates the expiry index the cleanup sweep queries against.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "expires_at", Value: 1}},
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Put upserts the token record. Re-issuing an identical token refreshes its
// expiry instead of failing on the primary index.
func (s *MongoStore) Put(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": token},
		tokenDoc{Token: token, ExpiresAt: expiresAt},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Exists reports whether the token is present and unexpired at now.
func (s *MongoStore) Exists(ctx context.Context, token string, now time.Time) (bool, error) {
	err := s.coll.FindOne(ctx, bson.M{
		"_id":        token,
		"expires_at": bson.M{"$gt": now},
	}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	return true, nil
}

// Delete removes a token. Absent tokens are not an error.
func (s *MongoStore) Delete(ctx context.Context, token string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": token}); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteExpired bulk-deletes tokens expired before now.
func (s *MongoStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}})
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return res.DeletedCount, nil
}

var _ Store = (*MongoStore)(nil)
