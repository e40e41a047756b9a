// Package mongo implements every repository on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/aevon-lab/devicescout/internal/core/storage"
)

// Collection names
const (
	CollectionBuckets         = "observation_buckets"
	CollectionRecommendations = "recommendations"
	CollectionKnownDevices    = "known_devices"
	CollectionModels          = "model_records"
)

// Connect opens a pooled client and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Adapter implements storage.Store for MongoDB.
type Adapter struct {
	db              *mongo.Database
	buckets         *mongo.Collection
	recommendations *mongo.Collection
	devices         *mongo.Collection
	models          *mongo.Collection
	now             func() time.Time
}

var _ storage.Store = (*Adapter)(nil)

func NewAdapter(db *mongo.Database) *Adapter {
	return &Adapter{
		db:              db,
		buckets:         db.Collection(CollectionBuckets),
		recommendations: db.Collection(CollectionRecommendations),
		devices:         db.Collection(CollectionKnownDevices),
		models:          db.Collection(CollectionModels),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the uniqueness indexes and the bucket TTL index.
// Buckets expire bucketRetention after their start.
func (a *Adapter) EnsureIndexes(ctx context.Context, bucketRetention time.Duration) error {
	slog.Info("[Mongo] Ensuring indexes", "bucket_retention", bucketRetention)

	if err := createIndexes(ctx, a.buckets, []mongo.IndexModel{
		{Keys: bson.D{{Key: "bucketStartAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(int32(bucketRetention.Seconds()))},
		{Keys: bson.D{{Key: "bucketStartEpoch", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", CollectionBuckets, err)
	}

	if err := createIndexes(ctx, a.recommendations, []mongo.IndexModel{
		{Keys: bson.D{{Key: "fingerprint", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "promoted", Value: 1}, {Key: "lastSeen", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", CollectionRecommendations, err)
	}

	if err := createIndexes(ctx, a.devices, []mongo.IndexModel{
		{Keys: bson.D{{Key: "fingerprint", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", CollectionKnownDevices, err)
	}

	if err := createIndexes(ctx, a.models, []mongo.IndexModel{
		{Keys: bson.D{{Key: "model", Value: 1}, {Key: "fingerprint", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", CollectionModels, err)
	}
	return nil
}

func createIndexes(ctx context.Context, coll *mongo.Collection, indexes []mongo.IndexModel) error {
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.Client().Ping(ctx, readpref.Primary())
}

func (a *Adapter) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.db.Client().Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}

type bucketDoc struct {
	Key         string    `bson:"_id"`
	Fingerprint string    `bson:"fingerprint"`
	BucketStart int64     `bson:"bucketStartEpoch"`
	Count       int64     `bson:"count"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// IncrementBucket upserts the bucket with $inc, setting identity fields on insert only.
func (a *Adapter) IncrementBucket(ctx context.Context, key, fingerprint string, bucketStart, delta int64) (int64, error) {
	update := bson.M{
		"$inc": bson.M{"count": delta},
		"$set": bson.M{"updatedAt": a.now()},
		"$setOnInsert": bson.M{
			"fingerprint":      fingerprint,
			"bucketStartEpoch": bucketStart,
			"bucketStartAt":    time.Unix(bucketStart*60, 0).UTC(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc bucketDoc
	if err := a.buckets.FindOneAndUpdate(ctx, bson.M{"_id": key}, update, opts).Decode(&doc); err != nil {
		return 0, fmt.Errorf("failed to increment bucket %s: %w", key, err)
	}
	return doc.Count, nil
}

func (a *Adapter) BucketCount(ctx context.Context, key string) (int64, error) {
	var doc bucketDoc
	err := a.buckets.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read bucket %s: %w", key, err)
	}
	return doc.Count, nil
}

func (a *Adapter) PurgeBucketsBefore(ctx context.Context, bucketStart int64) (int64, error) {
	res, err := a.buckets.DeleteMany(ctx, bson.M{"bucketStartEpoch": bson.M{"$lt": bucketStart}})
	if err != nil {
		return 0, fmt.Errorf("failed to purge buckets: %w", err)
	}
	return res.DeletedCount, nil
}

func (a *Adapter) FindRecommendation(ctx context.Context, fingerprint string) (*storage.Recommendation, error) {
	var rec storage.Recommendation
	err := a.recommendations.FindOne(ctx, bson.M{"fingerprint": fingerprint}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendation: %w", err)
	}
	return &rec, nil
}

// UpsertRecommendation only matches unpromoted documents. A promoted one makes
// the upsert collide with the unique fingerprint index, and is returned as is.
// The bucket count is advanced by a second conditional update so that a late
// smaller count never overwrites a larger or newer one.
func (a *Adapter) UpsertRecommendation(ctx context.Context, rec *storage.Recommendation) (*storage.Recommendation, error) {
	filter := bson.M{"fingerprint": rec.Fingerprint, "promoted": false}
	update := bson.M{
		"$set": bson.M{
			"propertiesSample": rec.PropertiesSample,
		},
		"$max": bson.M{
			"lastSeen": rec.LastSeen,
		},
		"$setOnInsert": bson.M{
			"_id":         rec.ID,
			"model":       rec.Model,
			"deviceId":    rec.DeviceID,
			"firstSeen":   rec.FirstSeen,
			"bucketStart": rec.BucketStart,
			"bucketCount": rec.BucketCount,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored storage.Recommendation
	err := a.recommendations.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if mongo.IsDuplicateKeyError(err) {
		return a.FindRecommendation(ctx, rec.Fingerprint)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert recommendation: %w", err)
	}
	if !stored.Supersedes(rec.BucketStart, rec.BucketCount) {
		return &stored, nil
	}

	advance := bson.M{
		"fingerprint": rec.Fingerprint,
		"promoted":    false,
		"$or": bson.A{
			bson.M{"bucketStart": bson.M{"$lt": rec.BucketStart}},
			bson.M{"bucketStart": rec.BucketStart, "bucketCount": bson.M{"$lt": rec.BucketCount}},
		},
	}
	err = a.recommendations.FindOneAndUpdate(ctx, advance,
		bson.M{"$set": bson.M{"bucketStart": rec.BucketStart, "bucketCount": rec.BucketCount}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Overtaken by a concurrent writer or a promotion.
		return a.FindRecommendation(ctx, rec.Fingerprint)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to advance recommendation bucket count: %w", err)
	}
	return &stored, nil
}

func (a *Adapter) MarkPromoted(ctx context.Context, fingerprint string, at time.Time) error {
	res, err := a.recommendations.UpdateOne(ctx,
		bson.M{"fingerprint": fingerprint, "promoted": false},
		bson.M{"$set": bson.M{"promoted": true, "promotedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark recommendation promoted: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (a *Adapter) ListCandidates(ctx context.Context) ([]*storage.Recommendation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastSeen", Value: -1}, {Key: "fingerprint", Value: 1}})
	cursor, err := a.recommendations.Find(ctx, bson.M{"promoted": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	var result []*storage.Recommendation
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return result, nil
}

func (a *Adapter) InsertKnownDevice(ctx context.Context, dev *storage.KnownDevice) error {
	_, err := a.devices.InsertOne(ctx, dev)
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert known device: %w", err)
	}
	return nil
}

func (a *Adapter) FindKnownDevice(ctx context.Context, fingerprint string) (*storage.KnownDevice, error) {
	var dev storage.KnownDevice
	err := a.devices.FindOne(ctx, bson.M{"fingerprint": fingerprint}).Decode(&dev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find known device: %w", err)
	}
	return &dev, nil
}

func (a *Adapter) ListKnownDevices(ctx context.Context) ([]*storage.KnownDevice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "fingerprint", Value: 1}})
	cursor, err := a.devices.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query known devices: %w", err)
	}
	var result []*storage.KnownDevice
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode known devices: %w", err)
	}
	return result, nil
}

func (a *Adapter) FindModel(ctx context.Context, model, fingerprint string) (*storage.ModelRecord, error) {
	var rec storage.ModelRecord
	err := a.models.FindOne(ctx, bson.M{"model": model, "fingerprint": fingerprint}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find model: %w", err)
	}
	return &rec, nil
}

func (a *Adapter) InsertModel(ctx context.Context, rec *storage.ModelRecord) error {
	_, err := a.models.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert model: %w", err)
	}
	return nil
}

func (a *Adapter) UpdateModel(ctx context.Context, rec *storage.ModelRecord) error {
	filter := bson.M{"model": rec.Model, "fingerprint": rec.Fingerprint, "version": rec.Version}
	update := bson.M{
		"$set": bson.M{
			"category":   rec.Category,
			"sensors":    rec.Sensors,
			"modifiedAt": rec.ModifiedAt,
		},
		"$inc": bson.M{"version": 1},
	}
	res, err := a.models.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update model: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	rec.Version++
	return nil
}

func (a *Adapter) ListModels(ctx context.Context) ([]*storage.ModelRecord, error) {
	return a.SearchModels(ctx, storage.ModelFilter{})
}

func (a *Adapter) SearchModels(ctx context.Context, filter storage.ModelFilter) ([]*storage.ModelRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "model", Value: 1}, {Key: "fingerprint", Value: 1}})
	cursor, err := a.models.Find(ctx, modelQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	var result []*storage.ModelRecord
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode models: %w", err)
	}
	return result, nil
}

// modelQuery builds case-insensitive contains filters; empty fields are omitted.
func modelQuery(filter storage.ModelFilter) bson.M {
	q := bson.M{}
	add := func(field, value string) {
		if value == "" {
			return
		}
		q[field] = bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
	}
	add("model", filter.Model)
	add("source", filter.Source)
	add("category", filter.Category)
	return q
}
