package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const sessionsCollection = "sessions"

// sessionDoc is the persisted shape of a Session. Identifiers are stored
// as strings so documents stay readable in the shell and queryable without
// driver-specific binary encodings.
type sessionDoc struct {
	Token     string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Role      string    `bson:"role"`
	Transport string    `bson:"transport"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func toDoc(s *Session) sessionDoc {
	return sessionDoc{
		Token:     s.Token,
		UserID:    s.UserID.String(),
		Role:      string(s.Role),
		Transport: string(s.Transport),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

// fromDoc validates the stored record at the store boundary. A role or
// transport outside the closed enums, or an unparseable user id, is an
// integrity failure surfaced as a store-class error rather than passed
// through.
func fromDoc(doc sessionDoc) (*Session, error) {
	role := Role(doc.Role)
	transport := Transport(doc.Transport)
	if !role.Valid() || !transport.Valid() {
		return nil, errors.Join(ErrStoreUnavailable, ErrIntegrity)
	}

	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, ErrIntegrity, err)
	}

	return &Session{
		Token:     doc.Token,
		UserID:    userID,
		Role:      role,
		Transport: transport,
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

// MongoStore implements Store backed by the application document store.
// The session token is the document _id, so uniqueness is enforced by the
// collection's primary index.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a session store on the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coll: db.Collection(sessionsCollection),
	}
}

// EnsureIndexes creates the secondary indexes the store queries against:
// expiry for the cleanup sweep, user id for bulk revocation. Call once at
// startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "expires_at", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Create inserts a new session record.
func (s *MongoStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrIntegrity
	}

	if _, err := s.coll.InsertOne(ctx, toDoc(session)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateToken
		}
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// FindByToken retrieves a session by token without filtering by expiry;
// expiry semantics belong to the caller.
func (s *MongoStore) FindByToken(ctx context.Context, token string) (*Session, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": token}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	return fromDoc(doc)
}

// Delete removes a session by token. Absent tokens are not an error.
func (s *MongoStore) Delete(ctx context.Context, token string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": token}); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteExpired bulk-deletes sessions expired before now and returns the
// number removed. Deletions target only already-expired rows, so the sweep
// is safe to run concurrently with normal traffic.
func (s *MongoStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}})
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return res.DeletedCount, nil
}

// DeleteByUserID removes all sessions for a specific user.
func (s *MongoStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"user_id": userID.String()}); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
