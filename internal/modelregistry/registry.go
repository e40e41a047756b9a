// Package modelregistry keeps one canonical structure record per
// (model, structure fingerprint) pair.
package modelregistry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	"github.com/aevon-lab/devicescout/internal/core/cache"
	coreerrors "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/aevon-lab/devicescout/internal/core/fingerprint"
	"github.com/aevon-lab/devicescout/internal/core/keylock"
	"github.com/aevon-lab/devicescout/internal/core/storage"
)

const cacheName = "models"

// Key identifies a model record.
type Key struct {
	Model       string
	Fingerprint string
}

func (k Key) String() string {
	return k.Model + "::" + k.Fingerprint
}

// HasMinimumLoadingCriteria reports whether the key can be looked up in the store.
func (k Key) HasMinimumLoadingCriteria() bool {
	return k.Model != "" && k.Fingerprint != ""
}

// Config holds the cache settings of the registry.
type Config struct {
	L1TTL             time.Duration
	L2TTL             time.Duration
	L1CleanupInterval time.Duration
}

// Registry deduplicates payload structures per model.
type Registry struct {
	store   storage.ModelStore
	locks   *keylock.Table
	records *cache.Tiered[Key, *storage.ModelRecord]
	nowFn   func() time.Time
}

// NewRegistry creates a registry whose read path goes through an in-memory
// tier and l2. A nil l2 leaves the cache single-tiered.
func NewRegistry(
	store storage.ModelStore,
	locks *keylock.Table,
	l2 cache.Store[Key, *storage.ModelRecord],
	cfg Config,
	recorder cache.Recorder,
) *Registry {
	if locks == nil {
		locks = keylock.New()
	}
	if cfg.L1CleanupInterval <= 0 {
		cfg.L1CleanupInterval = time.Minute
	}

	r := &Registry{
		store: store,
		locks: locks,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	opts := cache.Options[Key, *storage.ModelRecord]{
		Name:     cacheName,
		L1:       cache.NewMemoryLayer[Key, *storage.ModelRecord](cfg.L1CleanupInterval),
		L2:       l2,
		Loader:   r.load,
		L1TTL:    cfg.L1TTL,
		L2TTL:    cfg.L2TTL,
		Recorder: recorder,
	}
	r.records = cache.NewTiered(opts)
	return r
}

func (r *Registry) load(ctx context.Context, key Key) (*storage.ModelRecord, bool, error) {
	rec, err := r.store.FindModel(ctx, key.Model, key.Fingerprint)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// Resolve returns the record for payload's structure under model, inserting
// it when this is the first time the structure is seen. Concurrent calls for
// the same structure converge on one record.
func (r *Registry) Resolve(ctx context.Context, source, model string, payload map[string]any) (*storage.ModelRecord, bool, error) {
	if model == "" {
		return nil, false, coreerrors.Invalid("model is required")
	}
	shape, err := fingerprint.StructureOf(payload)
	if err != nil {
		return nil, false, coreerrors.Invalid(fmt.Sprintf("payload structure: %v", err))
	}
	key := Key{Model: model, Fingerprint: shape.Fingerprint}

	// A miss here already went through the store via the loader.
	rec, ok, err := r.records.Load(ctx, key)
	if err != nil {
		return nil, false, coreerrors.Transient("failed to find model", err)
	}
	if ok {
		return rec, false, nil
	}

	var created bool
	err = r.locks.Do(ctx, lockKey(key), func(ctx context.Context) error {
		// A concurrent Resolve in this process may have inserted it meanwhile.
		if cached, ok := r.records.Peek(key); ok {
			rec = cached
			return nil
		}

		now := r.nowFn()
		candidate := &storage.ModelRecord{
			ID:          uuid.NewString(),
			Source:      source,
			Model:       key.Model,
			Fingerprint: key.Fingerprint,
			Structure:   shape.Descriptor,
			CreatedAt:   now,
			ModifiedAt:  now,
			Version:     1,
		}
		if err := r.store.InsertModel(ctx, candidate); err != nil {
			if !errors.Is(err, storage.ErrDuplicate) {
				return coreerrors.Transient("failed to insert model", err)
			}
			// Another instance won the insert.
			existing, err := r.store.FindModel(ctx, key.Model, key.Fingerprint)
			if err != nil {
				return coreerrors.Transient("failed to find model after duplicate insert", err)
			}
			rec = existing
			r.records.Put(ctx, key, rec)
			return nil
		}

		rec = candidate
		created = true
		r.records.Put(ctx, key, rec)
		return nil
	})
	if err != nil {
		return nil, false, asFailure(err)
	}

	if created {
		slog.Info("New model structure registered", "model", rec.Model, "fingerprint", rec.Fingerprint, "source", rec.Source)
	}
	return rec, created, nil
}

// Find returns the record for (model, fingerprint).
func (r *Registry) Find(ctx context.Context, model, fp string) (*storage.ModelRecord, error) {
	key := Key{Model: model, Fingerprint: fp}
	if !key.HasMinimumLoadingCriteria() {
		return nil, coreerrors.Invalid("model and fingerprint are required")
	}
	rec, ok, err := r.records.Load(ctx, key)
	if err != nil {
		return nil, coreerrors.Transient("failed to find model", err)
	}
	if !ok {
		return nil, coreerrors.NotFound(fmt.Sprintf("no model %s with fingerprint %s", model, fp))
	}
	return rec, nil
}

// List returns every model record.
func (r *Registry) List(ctx context.Context) ([]*storage.ModelRecord, error) {
	recs, err := r.store.ListModels(ctx)
	if err != nil {
		return nil, coreerrors.Transient("failed to list models", err)
	}
	return recs, nil
}

// Search returns records matching filter. Empty filter fields match everything.
func (r *Registry) Search(ctx context.Context, filter storage.ModelFilter) ([]*storage.ModelRecord, error) {
	recs, err := r.store.SearchModels(ctx, filter)
	if err != nil {
		return nil, coreerrors.Transient("failed to search models", err)
	}
	return recs, nil
}

// UpdateSensors replaces the category and sensor mappings of a record.
func (r *Registry) UpdateSensors(ctx context.Context, model, fp string, req v1.SensorsUpdateRequest) (*storage.ModelRecord, error) {
	key := Key{Model: model, Fingerprint: fp}
	if !key.HasMinimumLoadingCriteria() {
		return nil, coreerrors.Invalid("model and fingerprint are required")
	}

	var updated *storage.ModelRecord
	err := r.locks.Do(ctx, lockKey(key), func(ctx context.Context) error {
		current, err := r.store.FindModel(ctx, model, fp)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return coreerrors.NotFound(fmt.Sprintf("no model %s with fingerprint %s", model, fp))
			}
			return coreerrors.Transient("failed to find model", err)
		}

		next := *current
		next.Category = req.Category
		next.Sensors = toSensorMappings(req.Sensors)
		next.ModifiedAt = r.nowFn()
		if err := r.store.UpdateModel(ctx, &next); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return coreerrors.Conflict(fmt.Sprintf("model %s was modified concurrently", key))
			}
			return coreerrors.Transient("failed to update model", err)
		}
		updated = &next
		return nil
	})
	if err != nil {
		r.records.Invalidate(ctx, key)
		return nil, asFailure(err)
	}

	r.records.Put(ctx, key, updated)
	return updated, nil
}

// ToResource converts a record to its API view.
func ToResource(rec *storage.ModelRecord) v1.ModelResource {
	res := v1.ModelResource{
		Source:      rec.Source,
		Model:       rec.Model,
		Fingerprint: rec.Fingerprint,
		Category:    rec.Category,
		CreatedOn:   rec.CreatedAt,
		ModifiedOn:  rec.ModifiedAt,
		Version:     rec.Version,
	}
	if json.Valid([]byte(rec.Structure)) {
		res.Structure = json.RawMessage(rec.Structure)
	}
	for _, s := range rec.Sensors {
		res.Sensors = append(res.Sensors, v1.SensorMapping{Name: s.Name, Property: s.Property, Unit: s.Unit, Class: s.Class})
	}
	return res
}

func toSensorMappings(in []v1.SensorMapping) []storage.SensorMapping {
	if len(in) == 0 {
		return nil
	}
	out := make([]storage.SensorMapping, 0, len(in))
	for _, s := range in {
		out = append(out, storage.SensorMapping{Name: s.Name, Property: s.Property, Unit: s.Unit, Class: s.Class})
	}
	return out
}

func lockKey(key Key) string {
	return "model::" + key.String()
}

func asFailure(err error) error {
	var failure *coreerrors.Failure
	if errors.As(err, &failure) {
		return err
	}
	return coreerrors.Unknown("model registry operation aborted", err)
}
