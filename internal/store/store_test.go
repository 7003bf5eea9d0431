package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"well-formed", "65b2f0a1c9e77a3d4f1b2c3d", true},
		{"empty", "", false},
		{"too short", "65b2f0a1", false},
		{"too long", "65b2f0a1c9e77a3d4f1b2c3d00", false},
		{"non-hex", "65b2f0a1c9e77a3d4f1b2czz", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ParseID(tc.raw)
			if tc.valid {
				require.NoError(t, err)
				require.Equal(t, tc.raw, id.Hex())
			} else {
				require.ErrorIs(t, err, ErrInvalidID)
			}
		})
	}
}

func TestMemoryStoreInsertAndFindOne(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, "countries", map[string]interface{}{"name": "Wales", "code": "WAL"})
	require.NoError(t, err)
	require.False(t, id.IsZero())

	d, err := s.FindOne(ctx, "countries", id)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Equal(t, "Wales", d.Fields["name"])
	require.Equal(t, "WAL", d.Fields["code"])
	require.False(t, d.CreatedAt.IsZero())
	require.Equal(t, d.CreatedAt, d.UpdatedAt)
}

func TestMemoryStoreFindOneMissing(t *testing.T) {
	s := NewMemoryStore()
	id, _ := ParseID("65b2f0a1c9e77a3d4f1b2c3d")

	d, err := s.FindOne(context.Background(), "countries", id)
	require.NoError(t, err, "a missing document is not an error")
	require.Nil(t, d)
}

func TestMemoryStoreFindAll(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	all, err := s.FindAll(ctx, "interests")
	require.NoError(t, err)
	require.Empty(t, all)
	require.NotNil(t, all, "empty collection is an empty slice, not nil")

	_, err = s.Insert(ctx, "interests", map[string]interface{}{"name": "chess"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "interests", map[string]interface{}{"name": "hiking"})
	require.NoError(t, err)

	all, err = s.FindAll(ctx, "interests")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestMemoryStoreUpdatePartial(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, "countries", map[string]interface{}{"name": "Wales", "code": "WAL"})
	require.NoError(t, err)

	matched, err := s.UpdatePartial(ctx, "countries", id, map[string]interface{}{"code": "CYM"})
	require.NoError(t, err)
	require.Equal(t, int64(1), matched)

	d, err := s.FindOne(ctx, "countries", id)
	require.NoError(t, err)
	require.Equal(t, "Wales", d.Fields["name"], "untouched fields survive a partial update")
	require.Equal(t, "CYM", d.Fields["code"])
	require.False(t, d.UpdatedAt.Before(d.CreatedAt))

	missing, _ := ParseID("65b2f0a1c9e77a3d4f1b2c3d")
	matched, err = s.UpdatePartial(ctx, "countries", missing, map[string]interface{}{"code": "XXX"})
	require.NoError(t, err)
	require.Equal(t, int64(0), matched, "update never creates a document")
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, "products", map[string]interface{}{"name": "widget"})
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, "products", id)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	deleted, err = s.Delete(ctx, "products", id)
	require.NoError(t, err)
	require.Equal(t, int64(0), deleted, "second delete matches nothing")
}

func TestMemoryStoreCopiesFields(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	fields := map[string]interface{}{"name": "chess"}
	id, err := s.Insert(ctx, "interests", fields)
	require.NoError(t, err)

	fields["name"] = "mutated"
	d, err := s.FindOne(ctx, "interests", id)
	require.NoError(t, err)
	require.Equal(t, "chess", d.Fields["name"])

	d.Fields["name"] = "mutated again"
	d2, err := s.FindOne(ctx, "interests", id)
	require.NoError(t, err)
	require.Equal(t, "chess", d2.Fields["name"])
}
