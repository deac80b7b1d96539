package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"pixelup-backend/internal/enhance"
	"pixelup-backend/internal/shared/metrics"
	"pixelup-backend/internal/shared/storage/object"
	"pixelup-backend/internal/shared/telemetry"
	"pixelup-backend/internal/shared/util"
)

const methodLocal = "local"

// Enhancer abstracts the enhancement backend client.
type Enhancer interface {
	Healthy(ctx context.Context, timeout time.Duration) bool
	Process(ctx context.Context, fileName string, r io.Reader) (enhance.Result, error)
}

// Outcome is the result of a completed enhancement run.
type Outcome struct {
	ImageID     string
	OriginalURL string
	EnhancedURL string
	MimeType    string
	Fallback    bool
	Reason      string
	Strategy    string
}

// Service runs the enhancement pipeline and manages the gallery.
type Service struct {
	Store         object.ObjectStore
	Repo          Repo
	Enhancer      Enhancer
	States        *StateTracker
	PublicBaseURL string
	HealthTimeout time.Duration
}

// Enhance runs the full pipeline for one staged upload: health probe, put
// original, enhance, put enhanced, record metadata. Steps are strictly
// sequential with no retries. The metadata insert is best-effort: its failure
// is logged and the run still completes.
func (s *Service) Enhance(ctx context.Context, userID string, pending *PendingUpload) (Outcome, error) {
	if pending == nil || len(pending.Bytes) == 0 {
		return Outcome{}, ErrInvalidInput
	}

	s.States.MarkReady(userID)
	if err := s.States.StartProcessing(userID); err != nil {
		return Outcome{}, err
	}

	started := time.Now()
	metrics.IncEnhancementStarted()

	outcome, err := s.run(ctx, userID, pending)
	if err != nil {
		metrics.IncEnhancementFailed()
		s.States.Fail(userID, failureMessage(err))
		return Outcome{}, err
	}

	metrics.IncEnhancementCompleted()
	metrics.ObserveEnhancementDurationMs(float64(time.Since(started).Milliseconds()))
	s.States.Complete(userID, RunStatus{
		ImageID:     outcome.ImageID,
		EnhancedURL: outcome.EnhancedURL,
		Fallback:    outcome.Fallback,
		Reason:      outcome.Reason,
		Strategy:    outcome.Strategy,
	})
	return outcome, nil
}

func (s *Service) run(ctx context.Context, userID string, pending *PendingUpload) (Outcome, error) {
	// Probe first. Nothing is written when the backend is down.
	if !s.Enhancer.Healthy(ctx, s.HealthTimeout) {
		return Outcome{}, ErrBackendUnavailable
	}

	userHash := util.HashUserKey(userID)
	ts := time.Now().UnixMilli()

	originalKey := fmt.Sprintf("original-uploads/%s/%d_original.%s", userHash, ts, util.FileExt(pending.FileName))
	if _, err := s.Store.Put(ctx, originalKey, pending.MimeType, bytes.NewReader(pending.Bytes)); err != nil {
		return Outcome{}, fmt.Errorf("store original: %w", err)
	}
	originalURL := object.PublicURL(s.PublicBaseURL, originalKey)

	result, err := s.Enhancer.Process(ctx, pending.FileName, bytes.NewReader(pending.Bytes))
	if err != nil {
		// The original blob stays behind. There is no compensating delete.
		return Outcome{}, err
	}

	enhancedKey := fmt.Sprintf("enhanced-uploads/%s/%d_enhanced.png", userHash, ts)
	if _, err := s.Store.Put(ctx, enhancedKey, result.MimeType, bytes.NewReader(result.Bytes)); err != nil {
		return Outcome{}, fmt.Errorf("store enhanced: %w", err)
	}
	enhancedURL := object.PublicURL(s.PublicBaseURL, enhancedKey)

	record := UpscaledImage{
		ID:          uuid.NewString(),
		UserID:      userID,
		OriginalURL: originalURL,
		UpscaledURL: enhancedURL,
		Method:      methodLocal,
		Strategy:    result.Strategy,
		Fallback:    result.Fallback,
	}
	imageID := record.ID
	if _, err := s.Repo.Create(ctx, record); err != nil {
		// The enhanced image exists and is returned to the user either way.
		telemetry.Error("images.metadata_write_failed", map[string]any{
			"user_id": userID,
			"imageId": record.ID,
			"err":     err.Error(),
		})
		imageID = ""
	}

	return Outcome{
		ImageID:     imageID,
		OriginalURL: originalURL,
		EnhancedURL: enhancedURL,
		MimeType:    result.MimeType,
		Fallback:    result.Fallback,
		Reason:      result.Reason,
		Strategy:    result.Strategy,
	}, nil
}

// List returns the user's gallery newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]UpscaledImage, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a gallery record and then its blobs. The metadata delete
// gates everything: if it fails no blob is touched. Blob deletions run
// independently and their failures are logged and swallowed, so the response
// reflects the metadata delete alone.
func (s *Service) Delete(ctx context.Context, userID, imageID string) error {
	deleted, err := s.Repo.Delete(ctx, userID, imageID)
	if err != nil {
		return err
	}

	for _, rawURL := range []string{deleted.OriginalURL, deleted.UpscaledURL} {
		key := object.KeyFromURL(rawURL)
		if key == "" {
			telemetry.Warn("images.blob_key_unresolved", map[string]any{
				"user_id": userID,
				"imageId": imageID,
				"url":     rawURL,
			})
			continue
		}
		if err := s.Store.Delete(ctx, key); err != nil {
			metrics.IncBlobDeleteFailed()
			telemetry.Warn("images.blob_delete_failed", map[string]any{
				"user_id": userID,
				"imageId": imageID,
				"key":     key,
				"err":     err.Error(),
			})
		}
	}
	return nil
}

func failureMessage(err error) string {
	switch {
	case err == ErrBackendUnavailable:
		return "Enhancement server is not running. Start it and try again."
	default:
		return err.Error()
	}
}
