package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore implements Store on top of a MongoDB database. The database
// handle is shared and safe for concurrent use; one MongoStore serves all
// collections.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Insert(ctx context.Context, collection string, fields map[string]interface{}) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	doc := bson.M{"createdAt": now, "updatedAt": now}
	for k, v := range fields {
		doc[k] = v
	}
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, id primitive.ObjectID) (*Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	doc := documentFromRaw(raw)
	return &doc, nil
}

func (s *MongoStore) FindAll(ctx context.Context, collection string) ([]Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []Document{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, documentFromRaw(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) UpdatePartial(ctx context.Context, collection string, id primitive.ObjectID, fields map[string]interface{}) (int64, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *MongoStore) Delete(ctx context.Context, collection string, id primitive.ObjectID) (int64, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// documentFromRaw splits a decoded BSON document into id, timestamps and the
// remaining resource fields.
func documentFromRaw(raw bson.M) Document {
	d := Document{Fields: make(map[string]interface{}, len(raw))}
	for k, v := range raw {
		switch k {
		case "_id":
			if id, ok := v.(primitive.ObjectID); ok {
				d.ID = id
			}
		case "createdAt":
			d.CreatedAt = asTime(v)
		case "updatedAt":
			d.UpdatedAt = asTime(v)
		default:
			d.Fields[k] = v
		}
	}
	return d
}

func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t
	}
	return time.Time{}
}
