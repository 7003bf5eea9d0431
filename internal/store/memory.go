package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory Store used in unit tests and as a fallback when
// MongoDB is unreachable. It mints real ObjectIDs so ids round-trip through
// ParseID exactly as with the Mongo backend.
type MemoryStore struct {
	mu   sync.RWMutex
	cols map[string]map[primitive.ObjectID]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cols: make(map[string]map[primitive.ObjectID]Document)}
}

func (s *MemoryStore) collection(name string) map[primitive.ObjectID]Document {
	col, ok := s.cols[name]
	if !ok {
		col = make(map[primitive.ObjectID]Document)
		s.cols[name] = col
	}
	return col
}

func (s *MemoryStore) Insert(_ context.Context, collection string, fields map[string]interface{}) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	id := primitive.NewObjectID()
	s.collection(collection)[id] = Document{
		ID:        id,
		Fields:    cloneFields(fields),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id, nil
}

func (s *MemoryStore) FindOne(_ context.Context, collection string, id primitive.ObjectID) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.cols[collection][id]
	if !ok {
		return nil, nil
	}
	out := d
	out.Fields = cloneFields(d.Fields)
	return &out, nil
}

func (s *MemoryStore) FindAll(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Document{}
	for _, d := range s.cols[collection] {
		c := d
		c.Fields = cloneFields(d.Fields)
		out = append(out, c)
	}
	return out, nil
}

func (s *MemoryStore) UpdatePartial(_ context.Context, collection string, id primitive.ObjectID, fields map[string]interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.cols[collection][id]
	if !ok {
		return 0, nil
	}
	for k, v := range fields {
		d.Fields[k] = v
	}
	d.UpdatedAt = time.Now().UTC()
	s.cols[collection][id] = d
	return 1, nil
}

func (s *MemoryStore) Delete(_ context.Context, collection string, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cols[collection][id]; !ok {
		return 0, nil
	}
	delete(s.cols[collection], id)
	return 1, nil
}

func cloneFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
