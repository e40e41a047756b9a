package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicate is returned when a record violates a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")
	// ErrNotFound is returned when a lookup by key matches nothing.
	ErrNotFound = errors.New("record not found")
)

// ObservationStore holds the time-bucketed observation counters.
type ObservationStore interface {
	// IncrementBucket atomically adds delta to the bucket's count, creating the
	// bucket with fingerprint and bucketStart on first write. Returns the
	// post-increment count.
	IncrementBucket(ctx context.Context, key, fingerprint string, bucketStart, delta int64) (int64, error)

	// BucketCount returns the durable count for key, or 0 when the bucket does not exist.
	BucketCount(ctx context.Context, key string) (int64, error)

	// PurgeBucketsBefore deletes buckets whose start is before the given epoch minute.
	PurgeBucketsBefore(ctx context.Context, bucketStart int64) (int64, error)
}

// RecommendationStore holds candidate devices.
type RecommendationStore interface {
	FindRecommendation(ctx context.Context, fingerprint string) (*Recommendation, error)

	// UpsertRecommendation inserts rec, or refreshes LastSeen and
	// PropertiesSample of an existing unpromoted one. BucketCount is replaced
	// when rec is from a newer bucket and only raised within the same bucket.
	// FirstSeen and promoted rows are never modified. Returns the stored row.
	UpsertRecommendation(ctx context.Context, rec *Recommendation) (*Recommendation, error)

	// MarkPromoted flags the recommendation as promoted. Returns ErrNotFound
	// when no unpromoted recommendation exists for fingerprint.
	MarkPromoted(ctx context.Context, fingerprint string, at time.Time) error

	// ListCandidates returns unpromoted recommendations, most recently seen first.
	ListCandidates(ctx context.Context) ([]*Recommendation, error)
}

// KnownDeviceStore holds the confirmed device catalog.
type KnownDeviceStore interface {
	// InsertKnownDevice returns ErrDuplicate when the fingerprint is already cataloged.
	InsertKnownDevice(ctx context.Context, dev *KnownDevice) error
	FindKnownDevice(ctx context.Context, fingerprint string) (*KnownDevice, error)
	ListKnownDevices(ctx context.Context) ([]*KnownDevice, error)
}

// ModelStore holds canonical model structures.
type ModelStore interface {
	FindModel(ctx context.Context, model, fingerprint string) (*ModelRecord, error)
	// InsertModel returns ErrDuplicate when (model, fingerprint) already exists.
	InsertModel(ctx context.Context, rec *ModelRecord) error
	// UpdateModel replaces category and sensors when rec.Version matches the
	// stored version, then bumps the version. Returns ErrNotFound otherwise.
	UpdateModel(ctx context.Context, rec *ModelRecord) error
	ListModels(ctx context.Context) ([]*ModelRecord, error)
	SearchModels(ctx context.Context, filter ModelFilter) ([]*ModelRecord, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is the full set of repositories provided by one backend.
type Store interface {
	ObservationStore
	RecommendationStore
	KnownDeviceStore
	ModelStore
	Pinger
	Close() error
}
