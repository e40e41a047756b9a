// Package recommendation turns recurring unknown devices into catalog entries.
//
// A fingerprint becomes a candidate once one of its buckets reaches the
// configured count threshold. An operator then promotes the candidate,
// which creates a KnownDevice and marks the candidate as promoted.
package recommendation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	coreerrors "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/aevon-lab/devicescout/internal/core/keylock"
	"github.com/aevon-lab/devicescout/internal/core/storage"
)

const defaultThreshold = 3

// Candidate is one observation that may create or refresh a recommendation.
type Candidate struct {
	Fingerprint string
	Model       string
	DeviceID    string
	BucketStart int64
	BucketCount int64
	Properties  map[string]any
}

// Recorder observes promoter outcomes.
type Recorder interface {
	Recommendation(outcome string)
}

// Promoter drives the none -> candidate -> promoted lifecycle.
type Promoter struct {
	recommendations storage.RecommendationStore
	devices         storage.KnownDeviceStore
	locks           *keylock.Table
	threshold       int64
	nowFn           func() time.Time
	recorder        Recorder
}

// NewPromoter creates a promoter. A threshold below 1 uses the default of 3.
func NewPromoter(
	recommendations storage.RecommendationStore,
	devices storage.KnownDeviceStore,
	locks *keylock.Table,
	threshold int64,
) *Promoter {
	if threshold < 1 {
		threshold = defaultThreshold
	}
	if locks == nil {
		locks = keylock.New()
	}
	return &Promoter{
		recommendations: recommendations,
		devices:         devices,
		locks:           locks,
		threshold:       threshold,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// SetRecorder installs r. Must be called before the promoter is used.
func (p *Promoter) SetRecorder(r Recorder) {
	p.recorder = r
}

// Threshold returns the bucket count at which a candidate is recommended.
func (p *Promoter) Threshold() int64 {
	return p.threshold
}

// MaybeCreate records c as a recommendation when its bucket count reaches the
// threshold. It returns nil when below threshold or when the fingerprint was
// already promoted.
func (p *Promoter) MaybeCreate(ctx context.Context, c Candidate) (*storage.Recommendation, error) {
	if c.BucketCount < p.threshold {
		return nil, nil
	}

	var stored *storage.Recommendation
	err := p.locks.Do(ctx, lockKey(c.Fingerprint), func(ctx context.Context) error {
		now := p.nowFn()
		var err error
		stored, err = p.recommendations.UpsertRecommendation(ctx, &storage.Recommendation{
			ID:               uuid.NewString(),
			Fingerprint:      c.Fingerprint,
			Model:            c.Model,
			DeviceID:         c.DeviceID,
			FirstSeen:        now,
			LastSeen:         now,
			BucketStart:      c.BucketStart,
			BucketCount:      c.BucketCount,
			PropertiesSample: maps.Clone(c.Properties),
		})
		return err
	})
	if err != nil {
		p.record("failed")
		return nil, coreerrors.Transient("failed to store recommendation", err)
	}

	if stored.Promoted {
		p.record("already_promoted")
		return nil, nil
	}

	p.record("upserted")
	slog.Debug("Recommendation updated",
		"fingerprint", stored.Fingerprint,
		"model", stored.Model,
		"device_id", stored.DeviceID,
		"bucket_count", stored.BucketCount,
	)
	return stored, nil
}

// Find returns the recommendation for fingerprint, promoted or not.
func (p *Promoter) Find(ctx context.Context, fingerprint string) (*storage.Recommendation, error) {
	rec, err := p.recommendations.FindRecommendation(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, coreerrors.NotFound(fmt.Sprintf("no recommendation for fingerprint %s", fingerprint))
		}
		return nil, coreerrors.Transient("failed to find recommendation", err)
	}
	return rec, nil
}

// ListCandidates returns every unpromoted recommendation.
func (p *Promoter) ListCandidates(ctx context.Context) ([]*storage.Recommendation, error) {
	recs, err := p.recommendations.ListCandidates(ctx)
	if err != nil {
		return nil, coreerrors.Transient("failed to list recommendation candidates", err)
	}
	if recs == nil {
		recs = []*storage.Recommendation{}
	}
	return recs, nil
}

// Promote confirms the candidate for fingerprint as a known device and marks
// the candidate promoted. Missing candidates are NotFound; candidates that
// were already promoted or cataloged are Conflict.
func (p *Promoter) Promote(ctx context.Context, fingerprint string, req v1.PromotionRequest) (*storage.KnownDevice, error) {
	if fingerprint == "" {
		return nil, coreerrors.Invalid("fingerprint is required")
	}
	if req.Name == "" {
		return nil, coreerrors.Invalid("name is required")
	}

	var device *storage.KnownDevice
	err := p.locks.Do(ctx, lockKey(fingerprint), func(ctx context.Context) error {
		rec, err := p.Find(ctx, fingerprint)
		if err != nil {
			return err
		}
		if rec.Promoted {
			return coreerrors.Conflict(fmt.Sprintf("recommendation %s is already promoted", fingerprint))
		}

		now := p.nowFn()
		dev := &storage.KnownDevice{
			ID:          uuid.NewString(),
			DeviceID:    firstNonEmpty(req.DeviceID, rec.DeviceID),
			Model:       firstNonEmpty(req.Model, rec.Model),
			Fingerprint: fingerprint,
			Name:        req.Name,
			Type:        req.Type,
			Area:        req.Area,
			CreatedAt:   now,
			ModifiedAt:  now,
			Version:     1,
		}
		if err := p.devices.InsertKnownDevice(ctx, dev); err != nil {
			if !errors.Is(err, storage.ErrDuplicate) {
				return coreerrors.Transient("failed to insert known device", err)
			}
			// The candidate is still unpromoted, so an earlier attempt
			// cataloged the device and failed before marking. Finish it.
			existing, err := p.devices.FindKnownDevice(ctx, fingerprint)
			if errors.Is(err, storage.ErrNotFound) {
				return coreerrors.Conflict(fmt.Sprintf("device %s is already cataloged", fingerprint))
			}
			if err != nil {
				return coreerrors.Transient("failed to load known device", err)
			}
			slog.Warn("Resuming interrupted promotion", "fingerprint", fingerprint, "device", existing.ID)
			dev = existing
		}

		if err := p.recommendations.MarkPromoted(ctx, fingerprint, now); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return coreerrors.Conflict(fmt.Sprintf("recommendation %s is already promoted", fingerprint))
			}
			return coreerrors.Transient("failed to mark recommendation promoted", err)
		}

		device = dev
		return nil
	})
	if err != nil {
		var failure *coreerrors.Failure
		if !errors.As(err, &failure) {
			// Lock wait cancelled.
			err = coreerrors.Unknown("promotion aborted", err)
		}
		return nil, err
	}

	p.record("promoted")
	slog.Info("Recommendation promoted",
		"fingerprint", device.Fingerprint,
		"name", device.Name,
		"model", device.Model,
	)
	return device, nil
}

func (p *Promoter) record(outcome string) {
	if p.recorder != nil {
		p.recorder.Recommendation(outcome)
	}
}

func lockKey(fingerprint string) string {
	return "recommendation::" + fingerprint
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
