package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/realestate/portal/internal/core/domain"
	"github.com/realestate/portal/internal/core/ports"
)

const sessionCollection = "sessions"

// SessionStore keeps the session as one document keyed by name.
type SessionStore struct {
	coll *mongo.Collection
	name string
}

func NewSessionStore(db *mongo.Database, name string) *SessionStore {
	return &SessionStore{coll: db.Collection(sessionCollection), name: name}
}

type mongoSession struct {
	ID      string       `bson:"_id"`
	Token   string       `bson:"token"`
	User    *domain.User `bson:"user"`
	SavedAt int64        `bson:"saved_at"`
}

func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	var ms mongoSession
	if err := s.coll.FindOne(ctx, bson.M{"_id": s.name}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNoSession
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &domain.Session{
		Token:   ms.Token,
		User:    ms.User,
		SavedAt: unixToTime(ms.SavedAt),
	}, nil
}

// Save replaces the whole document in one upsert.
func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	doc := mongoSession{
		ID:      s.name,
		Token:   sess.Token,
		User:    sess.User,
		SavedAt: sess.SavedAt.Unix(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.name}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}
