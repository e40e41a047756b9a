// Package memory is an in-memory implementation of every repository.
// Useful for testing and development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aevon-lab/devicescout/internal/core/storage"
)

type modelKey struct{ model, fingerprint string }

type Store struct {
	mu              sync.RWMutex
	buckets         map[string]*storage.ObservationBucket
	recommendations map[string]*storage.Recommendation
	devices         map[string]*storage.KnownDevice
	models          map[modelKey]*storage.ModelRecord
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		buckets:         make(map[string]*storage.ObservationBucket),
		recommendations: make(map[string]*storage.Recommendation),
		devices:         make(map[string]*storage.KnownDevice),
		models:          make(map[modelKey]*storage.ModelRecord),
	}
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

func (s *Store) IncrementBucket(_ context.Context, key, fingerprint string, bucketStart, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok {
		b = &storage.ObservationBucket{Key: key, Fingerprint: fingerprint, BucketStart: bucketStart}
		s.buckets[key] = b
	}
	b.Count += delta
	b.UpdatedAt = time.Now().UTC()
	return b.Count, nil
}

func (s *Store) BucketCount(_ context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.buckets[key]; ok {
		return b.Count, nil
	}
	return 0, nil
}

func (s *Store) PurgeBucketsBefore(_ context.Context, bucketStart int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, b := range s.buckets {
		if b.BucketStart < bucketStart {
			delete(s.buckets, k)
			n++
		}
	}
	return n, nil
}

func (s *Store) FindRecommendation(_ context.Context, fingerprint string) (*storage.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recommendations[fingerprint]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyRecommendation(r), nil
}

func (s *Store) UpsertRecommendation(_ context.Context, rec *storage.Recommendation) (*storage.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.recommendations[rec.Fingerprint]
	if !ok {
		stored := copyRecommendation(rec)
		s.recommendations[rec.Fingerprint] = stored
		return copyRecommendation(stored), nil
	}
	if !existing.Promoted {
		if rec.LastSeen.After(existing.LastSeen) {
			existing.LastSeen = rec.LastSeen
		}
		if existing.Supersedes(rec.BucketStart, rec.BucketCount) {
			existing.BucketStart = rec.BucketStart
			existing.BucketCount = rec.BucketCount
		}
		existing.PropertiesSample = copyMap(rec.PropertiesSample)
	}
	return copyRecommendation(existing), nil
}

func (s *Store) MarkPromoted(_ context.Context, fingerprint string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recommendations[fingerprint]
	if !ok || r.Promoted {
		return storage.ErrNotFound
	}
	r.Promoted = true
	promotedAt := at
	r.PromotedAt = &promotedAt
	return nil
}

func (s *Store) ListCandidates(context.Context) ([]*storage.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*storage.Recommendation
	for _, r := range s.recommendations {
		if !r.Promoted {
			result = append(result, copyRecommendation(r))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastSeen.Equal(result[j].LastSeen) {
			return result[i].Fingerprint < result[j].Fingerprint
		}
		return result[i].LastSeen.After(result[j].LastSeen)
	})
	return result, nil
}

func (s *Store) InsertKnownDevice(_ context.Context, dev *storage.KnownDevice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.devices[dev.Fingerprint]; exists {
		return storage.ErrDuplicate
	}
	copy := *dev
	s.devices[dev.Fingerprint] = &copy
	return nil
}

func (s *Store) FindKnownDevice(_ context.Context, fingerprint string) (*storage.KnownDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.devices[fingerprint]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copy := *d
	return &copy, nil
}

func (s *Store) ListKnownDevices(context.Context) ([]*storage.KnownDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*storage.KnownDevice, 0, len(s.devices))
	for _, d := range s.devices {
		copy := *d
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Fingerprint < result[j].Fingerprint
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) FindModel(_ context.Context, model, fingerprint string) (*storage.ModelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.models[modelKey{model, fingerprint}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyModel(m), nil
}

func (s *Store) InsertModel(_ context.Context, rec *storage.ModelRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := modelKey{rec.Model, rec.Fingerprint}
	if _, exists := s.models[k]; exists {
		return storage.ErrDuplicate
	}
	s.models[k] = copyModel(rec)
	return nil
}

func (s *Store) UpdateModel(_ context.Context, rec *storage.ModelRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.models[modelKey{rec.Model, rec.Fingerprint}]
	if !ok || m.Version != rec.Version {
		return storage.ErrNotFound
	}
	m.Category = rec.Category
	m.Sensors = append([]storage.SensorMapping(nil), rec.Sensors...)
	m.ModifiedAt = rec.ModifiedAt
	m.Version++
	rec.Version = m.Version
	return nil
}

func (s *Store) ListModels(ctx context.Context) ([]*storage.ModelRecord, error) {
	return s.SearchModels(ctx, storage.ModelFilter{})
}

func (s *Store) SearchModels(_ context.Context, filter storage.ModelFilter) ([]*storage.ModelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*storage.ModelRecord
	for _, m := range s.models {
		if filter.Matches(m) {
			result = append(result, copyModel(m))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Model == result[j].Model {
			return result[i].Fingerprint < result[j].Fingerprint
		}
		return result[i].Model < result[j].Model
	})
	return result, nil
}

func copyRecommendation(r *storage.Recommendation) *storage.Recommendation {
	copy := *r
	copy.PropertiesSample = copyMap(r.PropertiesSample)
	if r.PromotedAt != nil {
		at := *r.PromotedAt
		copy.PromotedAt = &at
	}
	return &copy
}

func copyModel(m *storage.ModelRecord) *storage.ModelRecord {
	copy := *m
	copy.Sensors = append([]storage.SensorMapping(nil), m.Sensors...)
	return &copy
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
