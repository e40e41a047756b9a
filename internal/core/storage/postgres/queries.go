package postgres

const (
	// queryIncrementBucket adds to a bucket's count. fingerprint and bucket_start
	// are only written when the row is created.
	queryIncrementBucket = `
		INSERT INTO observation_buckets (bucket_key, fingerprint, bucket_start, count, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (bucket_key) DO UPDATE SET
			count      = observation_buckets.count + EXCLUDED.count,
			updated_at = EXCLUDED.updated_at
		RETURNING count
	`

	queryBucketCount = `SELECT count FROM observation_buckets WHERE bucket_key = $1`

	queryPurgeBuckets = `DELETE FROM observation_buckets WHERE bucket_start < $1`

	querySelectRecommendation = `
		SELECT
			id, fingerprint, model, device_id, first_seen, last_seen,
			bucket_start, bucket_count, properties_sample, promoted, promoted_at
		FROM recommendations
		WHERE fingerprint = $1
	`

	// queryUpsertRecommendation never touches first_seen or promoted rows.
	// bucket_count only moves forward: replaced by a newer bucket, raised
	// within the same one. A promoted conflict returns no rows.
	queryUpsertRecommendation = `
		INSERT INTO recommendations (
			id, fingerprint, model, device_id, first_seen, last_seen,
			bucket_start, bucket_count, properties_sample, promoted
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE)
		ON CONFLICT (fingerprint) DO UPDATE SET
			last_seen         = GREATEST(recommendations.last_seen, EXCLUDED.last_seen),
			bucket_start      = GREATEST(recommendations.bucket_start, EXCLUDED.bucket_start),
			bucket_count      = CASE
				WHEN EXCLUDED.bucket_start > recommendations.bucket_start
					THEN EXCLUDED.bucket_count
				WHEN EXCLUDED.bucket_start = recommendations.bucket_start
					THEN GREATEST(recommendations.bucket_count, EXCLUDED.bucket_count)
				ELSE recommendations.bucket_count
			END,
			properties_sample = EXCLUDED.properties_sample
		WHERE recommendations.promoted = FALSE
		RETURNING
			id, fingerprint, model, device_id, first_seen, last_seen,
			bucket_start, bucket_count, properties_sample, promoted, promoted_at
	`

	queryMarkPromoted = `
		UPDATE recommendations
		SET promoted = TRUE, promoted_at = $2
		WHERE fingerprint = $1 AND promoted = FALSE
	`

	queryListCandidates = `
		SELECT
			id, fingerprint, model, device_id, first_seen, last_seen,
			bucket_start, bucket_count, properties_sample, promoted, promoted_at
		FROM recommendations
		WHERE promoted = FALSE
		ORDER BY last_seen DESC, fingerprint ASC
	`

	// queryInsertKnownDevice returns no rows (sql.ErrNoRows) for a duplicate fingerprint.
	queryInsertKnownDevice = `
		INSERT INTO known_devices (
			id, device_id, model, fingerprint, name, type, area,
			created_at, modified_at, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (fingerprint) DO NOTHING
		RETURNING id
	`

	querySelectKnownDevice = `
		SELECT
			id, device_id, model, fingerprint, name, type, area,
			created_at, modified_at, version
		FROM known_devices
		WHERE fingerprint = $1
	`

	queryListKnownDevices = `
		SELECT
			id, device_id, model, fingerprint, name, type, area,
			created_at, modified_at, version
		FROM known_devices
		ORDER BY created_at ASC, fingerprint ASC
	`

	querySelectModel = `
		SELECT
			id, source, model, fingerprint, structure, category, sensors,
			created_at, modified_at, version
		FROM model_records
		WHERE model = $1 AND fingerprint = $2
	`

	// queryInsertModel returns no rows (sql.ErrNoRows) when (model, fingerprint) exists.
	queryInsertModel = `
		INSERT INTO model_records (
			id, source, model, fingerprint, structure, category, sensors,
			created_at, modified_at, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (model, fingerprint) DO NOTHING
		RETURNING id
	`

	// queryUpdateModel is an optimistic update keyed on the expected version.
	queryUpdateModel = `
		UPDATE model_records
		SET category = $3, sensors = $4, modified_at = $5, version = version + 1
		WHERE model = $1 AND fingerprint = $2 AND version = $6
		RETURNING version
	`

	// querySearchModels treats an empty filter as "match all".
	querySearchModels = `
		SELECT
			id, source, model, fingerprint, structure, category, sensors,
			created_at, modified_at, version
		FROM model_records
		WHERE ($1 = '' OR model ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR source ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR category ILIKE '%' || $3 || '%')
		ORDER BY model ASC, fingerprint ASC
	`

	queryCacheGet = `
		SELECT value FROM cache_entries
		WHERE namespace = $1 AND cache_key = $2 AND expires_at > $3
	`

	queryCachePut = `
		INSERT INTO cache_entries (namespace, cache_key, value, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, cache_key) DO UPDATE SET
			value      = EXCLUDED.value,
			expires_at = EXCLUDED.expires_at
	`

	queryCacheDelete = `DELETE FROM cache_entries WHERE namespace = $1 AND cache_key = $2`

	queryCachePurge = `DELETE FROM cache_entries WHERE expires_at <= $1`
)
