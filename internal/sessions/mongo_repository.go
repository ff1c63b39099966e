package sessions

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository implements Repository using a Mongo collection. Expiry is
// enforced on read; deployments should additionally put a TTL index on
// expiresAt so abandoned sessions get garbage-collected.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, s *Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *MongoRepository) GetByToken(ctx context.Context, token string) (*Session, error) {
	var s Session
	if err := r.col.FindOne(ctx, bson.M{"_id": token}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	if time.Now().UTC().After(s.ExpiresAt) {
		_, _ = r.col.DeleteOne(ctx, bson.M{"_id": token})
		return nil, nil
	}
	return &s, nil
}

func (r *MongoRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": token})
	return err
}
