package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/aevon-lab/devicescout/internal/core/storage"
)

func TestModelQuery(t *testing.T) {
	require.Equal(t, bson.M{}, modelQuery(storage.ModelFilter{}))

	q := modelQuery(storage.ModelFilter{Model: "acu.rite", Category: "Weather"})
	require.Equal(t, bson.M{
		"model":    bson.M{"$regex": `acu\.rite`, "$options": "i"},
		"category": bson.M{"$regex": "Weather", "$options": "i"},
	}, q)
}

func TestAdapter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("increment bucket returns post-increment count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: "fp#100"},
				{Key: "fingerprint", Value: "fp"},
				{Key: "bucketStartEpoch", Value: int64(100)},
				{Key: "count", Value: int64(4)},
			}},
		))

		count, err := NewAdapter(mt.DB).IncrementBucket(context.Background(), "fp#100", "fp", 100, 1)
		require.NoError(mt, err)
		require.Equal(mt, int64(4), count)
	})

	mt.Run("find recommendation not found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + CollectionRecommendations
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewAdapter(mt.DB).FindRecommendation(context.Background(), "missing")
		require.ErrorIs(mt, err, storage.ErrNotFound)
	})

	mt.Run("duplicate known device maps to ErrDuplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := NewAdapter(mt.DB).InsertKnownDevice(context.Background(), &storage.KnownDevice{
			ID: "k1", Fingerprint: "fp", CreatedAt: time.Now(), ModifiedAt: time.Now(), Version: 1,
		})
		require.ErrorIs(mt, err, storage.ErrDuplicate)
	})

	mt.Run("mark promoted without match is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := NewAdapter(mt.DB).MarkPromoted(context.Background(), "fp", time.Now())
		require.ErrorIs(mt, err, storage.ErrNotFound)
	})

	recommendationDoc := func(bucketStart, bucketCount int64) bson.D {
		return bson.D{
			{Key: "_id", Value: "r1"},
			{Key: "fingerprint", Value: "fp"},
			{Key: "bucketStart", Value: bucketStart},
			{Key: "bucketCount", Value: bucketCount},
			{Key: "promoted", Value: false},
		}
	}

	mt.Run("late smaller count in the same bucket keeps the stored count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: recommendationDoc(100, 4)},
		))

		got, err := NewAdapter(mt.DB).UpsertRecommendation(context.Background(), &storage.Recommendation{
			ID: "r2", Fingerprint: "fp", BucketStart: 100, BucketCount: 3,
		})
		require.NoError(mt, err)
		require.Equal(mt, int64(4), got.BucketCount)
		require.Len(mt, mt.GetAllStartedEvents(), 1, "no bucket advance is issued")
	})

	mt.Run("newer bucket advances the stored count", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: recommendationDoc(100, 4)}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: recommendationDoc(101, 3)}),
		)

		got, err := NewAdapter(mt.DB).UpsertRecommendation(context.Background(), &storage.Recommendation{
			ID: "r2", Fingerprint: "fp", BucketStart: 101, BucketCount: 3,
		})
		require.NoError(mt, err)
		require.Equal(mt, int64(101), got.BucketStart)
		require.Equal(mt, int64(3), got.BucketCount)

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 2)
		require.Equal(mt, "findAndModify", events[1].CommandName)
	})

	mt.Run("list candidates decodes documents", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + CollectionRecommendations
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "r1"},
				{Key: "fingerprint", Value: "fp1"},
				{Key: "model", Value: "sensor-A"},
				{Key: "deviceId", Value: "D1"},
				{Key: "bucketCount", Value: int64(3)},
				{Key: "promoted", Value: false},
			}),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		got, err := NewAdapter(mt.DB).ListCandidates(context.Background())
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		require.Equal(mt, "fp1", got[0].Fingerprint)
		require.Equal(mt, "D1", got[0].DeviceID)
		require.Equal(mt, int64(3), got[0].BucketCount)
	})
}
