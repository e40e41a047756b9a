package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aevon-lab/devicescout/internal/core/storage"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// marshalProperties returns nil (SQL NULL) for an empty sample rather than JSON "null".
func marshalProperties(props map[string]any) ([]byte, error) {
	if len(props) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal properties sample: %w", err)
	}
	return b, nil
}

func marshalSensors(sensors []storage.SensorMapping) ([]byte, error) {
	if sensors == nil {
		sensors = []storage.SensorMapping{}
	}
	b, err := json.Marshal(sensors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sensors: %w", err)
	}
	return b, nil
}

// scanRecommendation works for both sql.Row and sql.Rows.
func scanRecommendation(row scanner) (*storage.Recommendation, error) {
	var (
		rec        storage.Recommendation
		propsJSON  []byte
		promotedAt sql.NullTime
	)
	err := row.Scan(
		&rec.ID,
		&rec.Fingerprint,
		&rec.Model,
		&rec.DeviceID,
		&rec.FirstSeen,
		&rec.LastSeen,
		&rec.BucketStart,
		&rec.BucketCount,
		&propsJSON,
		&rec.Promoted,
		&promotedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(propsJSON) > 0 {
		if err := json.Unmarshal(propsJSON, &rec.PropertiesSample); err != nil {
			return nil, fmt.Errorf("failed to unmarshal properties sample: %w", err)
		}
	}
	if promotedAt.Valid {
		at := promotedAt.Time
		rec.PromotedAt = &at
	}
	return &rec, nil
}

func scanKnownDevice(row scanner) (*storage.KnownDevice, error) {
	var dev storage.KnownDevice
	err := row.Scan(
		&dev.ID,
		&dev.DeviceID,
		&dev.Model,
		&dev.Fingerprint,
		&dev.Name,
		&dev.Type,
		&dev.Area,
		&dev.CreatedAt,
		&dev.ModifiedAt,
		&dev.Version,
	)
	if err != nil {
		return nil, err
	}
	return &dev, nil
}

func scanModel(row scanner) (*storage.ModelRecord, error) {
	var (
		rec         storage.ModelRecord
		sensorsJSON []byte
	)
	err := row.Scan(
		&rec.ID,
		&rec.Source,
		&rec.Model,
		&rec.Fingerprint,
		&rec.Structure,
		&rec.Category,
		&sensorsJSON,
		&rec.CreatedAt,
		&rec.ModifiedAt,
		&rec.Version,
	)
	if err != nil {
		return nil, err
	}
	if len(sensorsJSON) > 0 {
		if err := json.Unmarshal(sensorsJSON, &rec.Sensors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sensors: %w", err)
		}
	}
	if len(rec.Sensors) == 0 {
		rec.Sensors = nil
	}
	return &rec, nil
}
