package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type testDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Category  string             `bson:"category"`
	Price     float64            `bson:"price"`
	Stock     int                `bson:"stock"`
	CreatedAt time.Time          `bson:"created_at,omitempty"`
}

func seed(t *testing.T, c Collection, docs ...testDoc) []primitive.ObjectID {
	t.Helper()
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		inserted, err := c.InsertOne(context.Background(), d)
		require.NoError(t, err)
		id, ok := inserted.(primitive.ObjectID)
		require.True(t, ok)
		ids = append(ids, id)
	}
	return ids
}

func TestMemoryInsertAssignsID(t *testing.T) {
	c := NewMemory().Collection("docs")
	ids := seed(t, c, testDoc{Name: "Tomato", Stock: 5})
	assert.False(t, ids[0].IsZero())

	var got testDoc
	require.NoError(t, c.FindOne(context.Background(), bson.M{"_id": ids[0]}, &got))
	assert.Equal(t, "Tomato", got.Name)
	assert.Equal(t, 5, got.Stock)
}

func TestMemoryFindOneNotFound(t *testing.T) {
	c := NewMemory().Collection("docs")
	var got testDoc
	err := c.FindOne(context.Background(), bson.M{"name": "missing"}, &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryComparisonOperators(t *testing.T) {
	c := NewMemory().Collection("docs")
	seed(t, c,
		testDoc{Name: "a", Stock: 0, Price: 10},
		testDoc{Name: "b", Stock: 15, Price: 50},
		testDoc{Name: "c", Stock: 40, Price: 100},
	)

	count := func(filter bson.M) int64 {
		n, err := c.CountDocuments(context.Background(), filter)
		require.NoError(t, err)
		return n
	}

	assert.Equal(t, int64(2), count(bson.M{"stock": bson.M{"$gt": 0}}))
	assert.Equal(t, int64(2), count(bson.M{"stock": bson.M{"$gte": 15}}))
	assert.Equal(t, int64(2), count(bson.M{"stock": bson.M{"$lte": 15}}))
	assert.Equal(t, int64(1), count(bson.M{"stock": bson.M{"$lt": 15}}))
	assert.Equal(t, int64(2), count(bson.M{"price": bson.M{"$lte": 50.0}}))
	// Both bounds on one field.
	assert.Equal(t, int64(1), count(bson.M{"stock": bson.M{"$gt": 0, "$gte": 20}}))
}

func TestMemoryRegexAndOr(t *testing.T) {
	c := NewMemory().Collection("docs")
	seed(t, c,
		testDoc{Name: "Basmati Rice", Category: "Grain"},
		testDoc{Name: "Tomato", Category: "Vegetable"},
		testDoc{Name: "Sunflower Oil", Category: "Oil"},
	)

	count := func(filter bson.M) int64 {
		n, err := c.CountDocuments(context.Background(), filter)
		require.NoError(t, err)
		return n
	}

	assert.Equal(t, int64(1), count(bson.M{"category": bson.M{"$regex": "veg", "$options": "i"}}))
	assert.Equal(t, int64(0), count(bson.M{"category": bson.M{"$regex": "veg"}}))
	assert.Equal(t, int64(2), count(bson.M{"$or": []bson.M{
		{"name": bson.M{"$regex": "rice", "$options": "i"}},
		{"category": "Oil"},
	}}))
}

func TestMemoryUpdateSetAndInc(t *testing.T) {
	c := NewMemory().Collection("docs")
	ids := seed(t, c, testDoc{Name: "Tomato", Stock: 10})

	matched, err := c.UpdateOne(context.Background(),
		bson.M{"_id": ids[0]},
		bson.M{"$inc": bson.M{"stock": -3}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	matched, err = c.UpdateOne(context.Background(),
		bson.M{"_id": ids[0]},
		bson.M{"$set": bson.M{"name": "Cherry Tomato", "created_at": time.Now().UTC()}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	var got testDoc
	require.NoError(t, c.FindOne(context.Background(), bson.M{"_id": ids[0]}, &got))
	assert.Equal(t, 7, got.Stock)
	assert.Equal(t, "Cherry Tomato", got.Name)
	assert.False(t, got.CreatedAt.IsZero())

	matched, err = c.UpdateOne(context.Background(),
		bson.M{"name": "nobody"},
		bson.M{"$set": bson.M{"stock": 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), matched)
}

func TestMemoryFindSortDescending(t *testing.T) {
	c := NewMemory().Collection("docs")
	base := time.Now().UTC()
	seed(t, c,
		testDoc{Name: "oldest", CreatedAt: base.Add(-2 * time.Hour)},
		testDoc{Name: "newest", CreatedAt: base},
		testDoc{Name: "middle", CreatedAt: base.Add(-time.Hour)},
	)

	var got []testDoc
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	require.NoError(t, c.Find(context.Background(), bson.M{}, &got, opts))
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Name)
	assert.Equal(t, "middle", got[1].Name)
	assert.Equal(t, "oldest", got[2].Name)
}

func TestMemoryDistinct(t *testing.T) {
	c := NewMemory().Collection("docs")
	seed(t, c,
		testDoc{Name: "a", Category: "Grain"},
		testDoc{Name: "b", Category: "Vegetable"},
		testDoc{Name: "c", Category: "Grain"},
	)

	values, err := c.Distinct(context.Background(), "category", bson.M{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []interface{}{"Grain", "Vegetable"}, values)
}
