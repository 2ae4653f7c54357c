package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/storage"
	"github.com/diamondgarment/backend/utils"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newLocalStore(t *testing.T) *storage.Local {
	t.Helper()
	local, err := storage.NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)
	return local
}

func TestUploadService_Upload(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)

	t.Run("stores locally without external storage", func(t *testing.T) {
		local := newLocalStore(t)
		svc := NewUploadService(local, nil)
		svc.now = func() time.Time { return fixed }

		result, err := svc.Upload(context.Background(), pngBytes(t), "My Shirt.png")
		require.NoError(t, err)
		assert.Equal(t, "1700000000000-My-Shirt.png", result.FileName)
		assert.Equal(t, "/uploads/1700000000000-My-Shirt.png", result.FilePath)
		assert.Equal(t, models.StorageLocal, result.Storage)
		assert.Equal(t, models.ImageLocal, result.Image.Kind)
		assert.FileExists(t, filepath.Join(local.Dir(), result.FileName))
	})

	t.Run("prefers external storage", func(t *testing.T) {
		local := new(MockFileStore)
		external := new(MockFileStore)
		svc := NewUploadService(local, external)
		external.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
			Return("https://cdn.example.com/uploads/x.png", nil)

		result, err := svc.Upload(context.Background(), pngBytes(t), "x.png")
		require.NoError(t, err)
		assert.Equal(t, models.StorageExternal, result.Storage)
		assert.Equal(t, models.AbsoluteImage("https://cdn.example.com/uploads/x.png"), result.Image)
		local.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls back to local when external fails", func(t *testing.T) {
		local := newLocalStore(t)
		external := new(MockFileStore)
		svc := NewUploadService(local, external)
		external.On("Save", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket unavailable"))

		result, err := svc.Upload(context.Background(), pngBytes(t), "x.png")
		require.NoError(t, err)
		assert.Equal(t, models.StorageLocal, result.Storage)
		assert.FileExists(t, filepath.Join(local.Dir(), result.FileName))
		external.AssertExpectations(t)
	})

	t.Run("same name in the same millisecond gets a new name", func(t *testing.T) {
		local := newLocalStore(t)
		svc := NewUploadService(local, nil)
		svc.now = func() time.Time { return fixed }

		first, err := svc.Upload(context.Background(), pngBytes(t), "x.png")
		require.NoError(t, err)
		second, err := svc.Upload(context.Background(), pngBytes(t), "x.png")
		require.NoError(t, err)

		assert.NotEqual(t, first.FileName, second.FileName)
		entries, err := os.ReadDir(local.Dir())
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("rejected uploads write nothing", func(t *testing.T) {
		tests := []struct {
			name     string
			data     []byte
			filename string
			kind     apperror.Kind
		}{
			{name: "too large", data: make([]byte, utils.MaxUploadSize+1), filename: "big.png", kind: apperror.KindPayloadTooLarge},
			{name: "empty", data: nil, filename: "x.png", kind: apperror.KindValidation},
			{name: "bad extension", data: []byte("MZ"), filename: "x.exe", kind: apperror.KindValidation},
			{name: "not an image", data: []byte("plain text"), filename: "x.jpg", kind: apperror.KindValidation},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				local := new(MockFileStore)
				external := new(MockFileStore)
				svc := NewUploadService(local, external)

				result, err := svc.Upload(context.Background(), tt.data, tt.filename)
				assert.Nil(t, result)
				assert.True(t, apperror.Is(err, tt.kind), "got %v", err)
				local.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
				external.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("too large message", func(t *testing.T) {
		svc := NewUploadService(new(MockFileStore), nil)
		err := svc.CheckSize(utils.MaxUploadSize + 1)
		require.Error(t, err)
		assert.Equal(t, "File too large. Max size is 5MB.", apperror.From(err).Message)
		assert.NoError(t, svc.CheckSize(utils.MaxUploadSize))
	})
}
