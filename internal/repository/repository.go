// Package repository provides methods to initialize db and perform different db queries.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ikovac/met-forecast-api/internal/model"
)

// DB collections.
const (
	metaCollection      = "forecastMeta"
	responsesCollection = "cachedResponses"
	placesCollection    = "places"
)

// DB errors.
var (
	ErrNoMeta           = errors.New("there is no cache metadata for the given coordinate")
	ErrNoCachedResponse = errors.New("there is no cached forecast for the given coordinate")
	ErrNoPlaces         = errors.New("there are no saved places yet")
)

// Repository wraps database and mongo client.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// metaDoc and responseDoc carry the canonical coordinate key used for the
// per-coordinate upserts alongside the domain value.
type metaDoc struct {
	Key                string `bson:"key"`
	model.ForecastMeta `bson:",inline"`
}

type responseDoc struct {
	Key                  string `bson:"key"`
	model.CachedResponse `bson:",inline"`
}

// New creates a new repository connected to the given mongo deployment.
func New(uri, dbName string) (*Repository, error) {
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := NewMongoDBClient(ctxWithTimeout, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	db := client.Database(dbName)

	err = createIndexes(ctxWithTimeout, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &Repository{
		client: client,
		db:     db,
	}, nil
}

// createIndexes creates the unique per-coordinate indexes both stores rely on
// for their last-write-wins upserts.
func createIndexes(ctx context.Context, db *mongo.Database) error {
	keyIndex := mongo.IndexModel{
		Keys:    bson.M{"key": 1},
		Options: options.Index().SetUnique(true),
	}

	for _, collection := range []string{metaCollection, responsesCollection} {
		_, err := db.Collection(collection).Indexes().CreateOne(ctx, keyIndex)
		if err != nil {
			return fmt.Errorf("failed to create unique coordinate key index on %s: %w", collection, err)
		}
	}

	return nil
}

// Close closes mongo db connection.
func (r *Repository) Close() error {
	if err := r.client.Disconnect(context.TODO()); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}

	return nil
}

// GetMeta gets the cache metadata stored for a coordinate.
func (r *Repository) GetMeta(ctx context.Context, coord model.Coordinate) (*model.ForecastMeta, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"key": coord.Key()}

	doc := new(metaDoc)
	err := r.db.Collection(metaCollection).FindOne(ctxWithTimeout, filter).Decode(doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoMeta
	}
	if err != nil {
		return nil, err
	}

	return &doc.ForecastMeta, nil
}

// UpsertMeta replaces the cache metadata for a coordinate. The replace is a
// single atomic upsert, so a reader never observes a partial row.
func (r *Repository) UpsertMeta(ctx context.Context, meta *model.ForecastMeta) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := meta.Coordinate.Key()
	doc := metaDoc{Key: key, ForecastMeta: *meta}

	_, err := r.db.Collection(metaCollection).ReplaceOne(
		ctxWithTimeout,
		bson.M{"key": key},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cache metadata: %w", err)
	}

	return nil
}

// GetCachedResponse gets the raw forecast payload stored for a coordinate.
func (r *Repository) GetCachedResponse(ctx context.Context, coord model.Coordinate) (*model.CachedResponse, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"key": coord.Key()}

	doc := new(responseDoc)
	err := r.db.Collection(responsesCollection).FindOne(ctxWithTimeout, filter).Decode(doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoCachedResponse
	}
	if err != nil {
		return nil, err
	}

	return &doc.CachedResponse, nil
}

// UpsertCachedResponse replaces the raw forecast payload for a coordinate.
func (r *Repository) UpsertCachedResponse(ctx context.Context, response *model.CachedResponse) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := response.Coordinate.Key()
	doc := responseDoc{Key: key, CachedResponse: *response}

	_, err := r.db.Collection(responsesCollection).ReplaceOne(
		ctxWithTimeout,
		bson.M{"key": key},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cached response: %w", err)
	}

	return nil
}

// DeleteExpired removes meta and payload rows whose Expires header passed
// more than olderThan ago. Returns the number of coordinates swept.
func (r *Repository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-olderThan)
	filter := bson.M{"expires": bson.M{"$lt": cutoff}}

	cur, err := r.db.Collection(metaCollection).Find(ctxWithTimeout, filter)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctxWithTimeout)

	var keys []string
	for cur.Next(ctxWithTimeout) {
		doc := metaDoc{}
		if err := cur.Decode(&doc); err != nil {
			return 0, err
		}
		keys = append(keys, doc.Key)
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}

	if len(keys) == 0 {
		return 0, nil
	}

	keyFilter := bson.M{"key": bson.M{"$in": keys}}
	if _, err := r.db.Collection(responsesCollection).DeleteMany(ctxWithTimeout, keyFilter); err != nil {
		return 0, err
	}
	if _, err := r.db.Collection(metaCollection).DeleteMany(ctxWithTimeout, keyFilter); err != nil {
		return 0, err
	}

	return int64(len(keys)), nil
}

// InsertPlace inserts a saved place.
func (r *Repository) InsertPlace(ctx context.Context, place *model.Place) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if place.ID == "" {
		place.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.db.Collection(placesCollection).InsertOne(ctxWithTimeout, place)
	if err != nil {
		return fmt.Errorf("failed to insert place: %w", err)
	}

	return nil
}

// GetPlaces gets all saved places.
func (r *Repository) GetPlaces(ctx context.Context) ([]*model.Place, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var places []*model.Place

	cur, err := r.db.Collection(placesCollection).Find(ctxWithTimeout, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctxWithTimeout)

	for cur.Next(ctxWithTimeout) {
		p := model.Place{}
		err := cur.Decode(&p)
		if err != nil {
			return nil, err
		}

		places = append(places, &p)
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	if len(places) == 0 {
		return nil, ErrNoPlaces
	}

	return places, nil
}
