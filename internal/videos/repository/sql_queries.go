package repository

const (
	createVideoQuery = `INSERT INTO video_assets (creator_id, title, description, storage_key, visibility, campaign_id, transcoding_status, renditions)
					VALUES ($1, $2, $3, $4, $5, $6, 'pending', '{}'::jsonb) RETURNING *`

	getVideoByIDQuery = `SELECT video_id, creator_id, title, description, storage_key, playback_url, duration,
					views, likes, comments, shares, visibility, campaign_id,
					transcoding_status, is_transcoded, original_width, original_height, renditions,
					uploaded_at, updated_at
					FROM video_assets WHERE video_id = $1`

	getVideosQuery = `SELECT video_id, creator_id, title, description, storage_key, playback_url, duration,
					views, likes, comments, shares, visibility, campaign_id,
					transcoding_status, is_transcoded, original_width, original_height, renditions,
					uploaded_at, updated_at
					FROM video_assets ORDER BY uploaded_at DESC OFFSET $1 LIMIT $2`

	getTotalVideosQuery = `SELECT COUNT(video_id) FROM video_assets`

	markProcessingQuery = `UPDATE video_assets
					SET transcoding_status = 'processing', is_transcoded = false, updated_at = now()
					WHERE video_id = $1 AND transcoding_status IN ('pending', 'failed')`

	markFailedQuery = `UPDATE video_assets
					SET transcoding_status = 'failed', is_transcoded = false, updated_at = now()
					WHERE video_id = $1 AND transcoding_status <> 'completed'`

	completeTranscodeQuery = `UPDATE video_assets
					SET transcoding_status = 'completed',
					    is_transcoded = true,
					    renditions = $2,
					    original_width = $3,
					    original_height = $4,
					    updated_at = now()
					WHERE video_id = $1 AND transcoding_status IN ('processing', 'completed')
					RETURNING *`

	failStuckProcessingQuery = `UPDATE video_assets
					SET transcoding_status = 'failed', is_transcoded = false, updated_at = now()
					WHERE transcoding_status = 'processing' AND updated_at < $1`
)
