package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/studiohq/portal/pkg/session"
)

// ErrAccountNotFound indicates no account matches the lookup
var ErrAccountNotFound = errors.New("auth.account_not_found")

// Account is the read-only projection of the external accounts collection
// this layer needs: enough to check credentials and stamp a role onto a
// session. Account data is owned elsewhere; nothing here writes to it.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         session.Role
}

// AccountStore is the account lookup contract.
type AccountStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

const accountsCollection = "accounts"

type accountDoc struct {
	ID           string `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
}

// MongoAccountStore adapts the external accounts collection to the
// AccountStore contract.
type MongoAccountStore struct {
	coll *mongo.Collection
}

// NewMongoAccountStore creates an account lookup adapter on the given
// database.
func NewMongoAccountStore(db *mongo.Database) *MongoAccountStore {
	return &MongoAccountStore{
		coll: db.Collection(accountsCollection),
	}
}

func (s *MongoAccountStore) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

func (s *MongoAccountStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoAccountStore) findOne(ctx context.Context, filter bson.M) (*Account, error) {
	var doc accountDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}

	role := session.Role(doc.Role)
	if !role.Valid() {
		return nil, errors.New("auth.account_role_invalid")
	}

	return &Account{
		ID:           id,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         role,
	}, nil
}

var _ AccountStore = (*MongoAccountStore)(nil)
