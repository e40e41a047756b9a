package storage

import (
	"strings"
	"time"
)

// ObservationBucket counts observations of one fingerprint in one time bucket.
type ObservationBucket struct {
	Key         string    `json:"key" bson:"_id"`
	Fingerprint string    `json:"fingerprint" bson:"fingerprint"`
	BucketStart int64     `json:"bucket_start" bson:"bucketStartEpoch"`
	Count       int64     `json:"count" bson:"count"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updatedAt"`
}

// Recommendation is a recurring unknown device awaiting confirmation.
type Recommendation struct {
	ID               string         `json:"id" bson:"_id"`
	Fingerprint      string         `json:"fingerprint" bson:"fingerprint"`
	Model            string         `json:"model" bson:"model"`
	DeviceID         string         `json:"device_id" bson:"deviceId"`
	FirstSeen        time.Time      `json:"first_seen" bson:"firstSeen"`
	LastSeen         time.Time      `json:"last_seen" bson:"lastSeen"`
	BucketStart      int64          `json:"bucket_start" bson:"bucketStart"`
	BucketCount      int64          `json:"bucket_count" bson:"bucketCount"`
	PropertiesSample map[string]any `json:"properties_sample,omitempty" bson:"propertiesSample,omitempty"`
	Promoted         bool           `json:"promoted" bson:"promoted"`
	PromotedAt       *time.Time     `json:"promoted_at,omitempty" bson:"promotedAt,omitempty"`
}

// Supersedes reports whether a count of bucketCount in bucketStart should
// replace the stored bucket count: a newer bucket always does, the same bucket
// only when larger.
func (r *Recommendation) Supersedes(bucketStart, bucketCount int64) bool {
	if bucketStart != r.BucketStart {
		return bucketStart > r.BucketStart
	}
	return bucketCount > r.BucketCount
}

// KnownDevice is a confirmed catalog entry.
type KnownDevice struct {
	ID          string    `json:"id" bson:"_id"`
	DeviceID    string    `json:"device_id" bson:"deviceId"`
	Model       string    `json:"model" bson:"model"`
	Fingerprint string    `json:"fingerprint" bson:"fingerprint"`
	Name        string    `json:"name" bson:"name"`
	Type        string    `json:"type" bson:"type"`
	Area        string    `json:"area" bson:"area"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"`
	ModifiedAt  time.Time `json:"modified_at" bson:"modifiedAt"`
	Version     int64     `json:"version" bson:"version"`
}

// SensorMapping names one property of a model's payload as a sensor.
type SensorMapping struct {
	Name     string `json:"name" bson:"name"`
	Property string `json:"property" bson:"property"`
	Unit     string `json:"unit,omitempty" bson:"unit,omitempty"`
	Class    string `json:"class,omitempty" bson:"class,omitempty"`
}

// ModelRecord is the canonical structure of one payload type.
type ModelRecord struct {
	ID          string          `json:"id" bson:"_id"`
	Source      string          `json:"source" bson:"source"`
	Model       string          `json:"model" bson:"model"`
	Fingerprint string          `json:"fingerprint" bson:"fingerprint"`
	Structure   string          `json:"structure" bson:"structure"`
	Category    string          `json:"category,omitempty" bson:"category,omitempty"`
	Sensors     []SensorMapping `json:"sensors,omitempty" bson:"sensors,omitempty"`
	CreatedAt   time.Time       `json:"created_at" bson:"createdAt"`
	ModifiedAt  time.Time       `json:"modified_at" bson:"modifiedAt"`
	Version     int64           `json:"version" bson:"version"`
}

// ModelFilter selects model records by case-insensitive substring. Empty
// fields match everything.
type ModelFilter struct {
	Model    string `json:"model"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// Matches reports whether rec satisfies every non-empty filter field.
func (f ModelFilter) Matches(rec *ModelRecord) bool {
	return containsFold(rec.Model, f.Model) &&
		containsFold(rec.Source, f.Source) &&
		containsFold(rec.Category, f.Category)
}

func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
