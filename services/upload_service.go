package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/storage"
	"github.com/diamondgarment/backend/utils"
)

// FileStore saves bytes under a name and returns where the file can be fetched.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// UploadService stores images, preferring external storage when it is configured.
type UploadService struct {
	local    FileStore
	external FileStore
	maxSize  int64
	now      func() time.Time
}

// NewUploadService takes a nil external store when only local disk is available.
func NewUploadService(local, external FileStore) *UploadService {
	return &UploadService{
		local:    local,
		external: external,
		maxSize:  utils.MaxUploadSize,
		now:      time.Now,
	}
}

// CheckSize rejects a declared size before the body is read.
func (s *UploadService) CheckSize(size int64) error {
	if size > s.maxSize {
		return apperror.PayloadTooLarge(utils.FileTooLargeMessage)
	}
	return nil
}

// Upload validates and stores data. Nothing is written when validation fails.
func (s *UploadService) Upload(ctx context.Context, data []byte, originalName string) (*models.UploadResult, error) {
	if err := s.CheckSize(int64(len(data))); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperror.Validation("Please upload a file")
	}
	if err := utils.ValidateImageFile(originalName, data); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	ctx = context.WithoutCancel(ctx)
	logger := zerolog.Ctx(ctx)
	name := utils.UniqueFilename(originalName, s.now())

	if s.external != nil {
		url, err := s.external.Save(ctx, name, data)
		if err == nil {
			return &models.UploadResult{
				FileName: name,
				FilePath: url,
				Storage:  models.StorageExternal,
				Image:    models.AbsoluteImage(url),
			}, nil
		}
		logger.Error().Err(err).Str("file", name).Msg("external storage upload failed, falling back to local storage")
	}

	p, err := s.local.Save(ctx, name, data)
	if errors.Is(err, storage.ErrExists) {
		name = fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), uuid.NewString()[:8], utils.CleanFilename(originalName))
		p, err = s.local.Save(ctx, name, data)
	}
	if err != nil {
		return nil, apperror.Internal("Error uploading file", err)
	}

	return &models.UploadResult{
		FileName: name,
		FilePath: p,
		Storage:  models.StorageLocal,
		Image:    models.LocalImage(p),
	}, nil
}
