package v1

import (
	"encoding/json"
	"time"
)

// PromotionRequest confirms a candidate device. Empty DeviceID and Model are
// taken from the recommendation.
type PromotionRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Area     string `json:"area"`
	DeviceID string `json:"device_id"`
	Model    string `json:"model"`
}

// SensorMapping names one payload property as a sensor.
type SensorMapping struct {
	Name     string `json:"name" binding:"required"`
	Property string `json:"property" binding:"required"`
	Unit     string `json:"unit,omitempty"`
	Class    string `json:"class,omitempty"`
}

// SensorsUpdateRequest replaces a model's category and sensor mappings.
type SensorsUpdateRequest struct {
	Category string          `json:"category"`
	Sensors  []SensorMapping `json:"sensors" binding:"dive"`
}

// SearchRequest filters model records by case-insensitive substring.
type SearchRequest struct {
	Model    string `json:"model"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// ModelResource is the API view of a model record.
type ModelResource struct {
	Source      string          `json:"source"`
	Model       string          `json:"model"`
	Fingerprint string          `json:"fingerprint"`
	Category    string          `json:"category,omitempty"`
	Structure   json.RawMessage `json:"structure"`
	Sensors     []SensorMapping `json:"sensors,omitempty"`
	CreatedOn   time.Time       `json:"created_on"`
	ModifiedOn  time.Time       `json:"modified_on"`
	Version     int64           `json:"version"`
}

// IngestResult reports what one observation did.
type IngestResult struct {
	Fingerprint          string `json:"fingerprint"`
	BucketStart          int64  `json:"bucket_start"`
	BucketCount          int64  `json:"bucket_count"`
	Recommended          bool   `json:"recommended"`
	StructureFingerprint string `json:"structure_fingerprint,omitempty"`
}
