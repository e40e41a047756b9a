package ingestion

import (
	"context"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	coreerrors "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/aevon-lab/devicescout/internal/core/storage"
	"github.com/aevon-lab/devicescout/internal/observation"
	"github.com/aevon-lab/devicescout/internal/recommendation"
)

// Source names recorded on model records.
const (
	SourceHTTP = "http"
)

// Processor runs one observation through the pipeline.
type Processor interface {
	Process(ctx context.Context, source string, obs *v1.Observation) (v1.IngestResult, error)
}

// Registrar counts an observation in its time bucket.
type Registrar interface {
	Register(ctx context.Context, obs *v1.Observation) (observation.Result, error)
}

// Recommender records a candidate once its bucket count crosses the threshold.
type Recommender interface {
	MaybeCreate(ctx context.Context, c recommendation.Candidate) (*storage.Recommendation, error)
}

// StructureResolver deduplicates payload structures per model.
type StructureResolver interface {
	Resolve(ctx context.Context, source, model string, payload map[string]any) (*storage.ModelRecord, bool, error)
}

// Pipeline counts observations, feeds the recommendation state machine and
// registers payload structures.
type Pipeline struct {
	counter     Registrar
	recommender Recommender
	structures  StructureResolver
	nowFn       func() time.Time
}

// NewPipeline creates a pipeline. structures may be nil to skip structure dedup.
func NewPipeline(counter Registrar, recommender Recommender, structures StructureResolver) *Pipeline {
	if counter == nil {
		panic("ingestion: counter must not be nil")
	}
	if recommender == nil {
		panic("ingestion: recommender must not be nil")
	}
	return &Pipeline{
		counter:     counter,
		recommender: recommender,
		structures:  structures,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Process validates obs and runs it through every stage. Structure dedup
// failures are logged and do not fail the observation.
func (p *Pipeline) Process(ctx context.Context, source string, obs *v1.Observation) (v1.IngestResult, error) {
	if err := obs.Validate(); err != nil {
		return v1.IngestResult{}, coreerrors.Invalid(err.Error())
	}
	if obs.Time.IsZero() {
		obs.Time = p.nowFn()
	}

	counted, err := p.counter.Register(ctx, obs)
	if err != nil {
		return v1.IngestResult{}, err
	}

	result := v1.IngestResult{
		Fingerprint: counted.Fingerprint,
		BucketStart: counted.BucketStart,
		BucketCount: counted.Count,
	}

	rec, err := p.recommender.MaybeCreate(ctx, recommendation.Candidate{
		Fingerprint: counted.Fingerprint,
		Model:       obs.Model,
		DeviceID:    obs.ID,
		BucketStart: counted.BucketStart,
		BucketCount: counted.Count,
		Properties:  obs.Properties,
	})
	if err != nil {
		return result, err
	}
	result.Recommended = rec != nil

	if p.structures != nil {
		model, _, err := p.structures.Resolve(ctx, source, obs.Model, obs.Payload())
		if err != nil {
			slog.Warn("Structure registration failed", "model", obs.Model, "source", source, "error", err)
		} else {
			result.StructureFingerprint = model.Fingerprint
		}
	}

	return result, nil
}
