package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thecryptoview/cryptoview-api/internal/identifier"
)

// MongoUserStore implements UserStore using a MongoDB collection. Documents
// carry a native ObjectID _id; records returned to callers expose it as the
// "id" field in canonical hex form.
type MongoUserStore struct {
	col *mongo.Collection
}

// NewMongoUserStore creates a store over the given collection.
func NewMongoUserStore(col *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{col: col}
}

func fromDocument(doc bson.M) User {
	u := make(User, len(doc))
	for k, v := range doc {
		if k == "_id" {
			if oid, ok := v.(primitive.ObjectID); ok {
				u["id"] = oid.Hex()
			} else {
				u["id"] = fmt.Sprintf("%v", v)
			}
			continue
		}
		u[k] = v
	}
	return u
}

func (s *MongoUserStore) FindAll(ctx context.Context) ([]User, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []User{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromDocument(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id identifier.ID) (User, error) {
	var doc bson.M
	err := s.col.FindOne(ctx, bson.M{"_id": id.ObjectID()}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

func (s *MongoUserStore) Insert(ctx context.Context, body User) (User, error) {
	res, err := s.col.InsertOne(ctx, bson.M(withoutID(body)))
	if err != nil {
		return nil, err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	// re-read so store-assigned fields are visible to the caller
	var doc bson.M
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}

func (s *MongoUserStore) UpdateByID(ctx context.Context, id identifier.ID, patch User) (User, error) {
	set := withoutID(patch)
	if len(set) > 0 {
		res, err := s.col.UpdateOne(ctx, bson.M{"_id": id.ObjectID()}, bson.M{"$set": bson.M(set)})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
	}
	// fresh read: callers get the post-update record, not the write ack
	return s.FindByID(ctx, id)
}

func (s *MongoUserStore) DeleteByID(ctx context.Context, id identifier.ID) (*DeleteResult, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id.ObjectID()})
	if err != nil {
		return nil, err
	}
	if res.DeletedCount == 0 {
		return nil, ErrNotFound
	}
	return &DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
