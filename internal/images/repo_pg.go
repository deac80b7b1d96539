package images

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo is the Postgres implementation of Repo.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, img UpscaledImage) (UpscaledImage, error) {
	const query = `
INSERT INTO upscaled_images (id, user_id, original_url, upscaled_url, method, strategy, fallback)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`
	err := r.DB.QueryRowContext(ctx, query,
		img.ID,
		img.UserID,
		img.OriginalURL,
		img.UpscaledURL,
		img.Method,
		img.Strategy,
		img.Fallback,
	).Scan(&img.CreatedAt)
	if err != nil {
		return UpscaledImage{}, err
	}
	return img, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]UpscaledImage, error) {
	const query = `
SELECT id, user_id, original_url, upscaled_url, method, strategy, fallback, created_at
FROM upscaled_images
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UpscaledImage, 0)
	for rows.Next() {
		var img UpscaledImage
		if err := rows.Scan(
			&img.ID,
			&img.UserID,
			&img.OriginalURL,
			&img.UpscaledURL,
			&img.Method,
			&img.Strategy,
			&img.Fallback,
			&img.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, imageID string) (UpscaledImage, error) {
	const query = `
DELETE FROM upscaled_images
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, original_url, upscaled_url, method, strategy, fallback, created_at`
	var img UpscaledImage
	err := r.DB.QueryRowContext(ctx, query, imageID, userID).Scan(
		&img.ID,
		&img.UserID,
		&img.OriginalURL,
		&img.UpscaledURL,
		&img.Method,
		&img.Strategy,
		&img.Fallback,
		&img.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UpscaledImage{}, ErrNotFound
		}
		return UpscaledImage{}, err
	}
	return img, nil
}
