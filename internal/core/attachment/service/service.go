package attachmentapp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"socialfeed/internal/core/errs"
	storagePort "socialfeed/internal/ports/storage"

	"go.uber.org/zap"
)

const (
	// MaxPayloadSize حداکثر حجم تصویر پس از decode (۵ مگابایت)
	MaxPayloadSize  = 5 << 20
	uploadChunkSize = 6000000
)

type AttachmentService struct {
	Storage storagePort.ObjectStorage
	Logger  *zap.Logger
}

func NewAttachmentService(storage storagePort.ObjectStorage, logger *zap.Logger) *AttachmentService {
	return &AttachmentService{
		Storage: storage,
		Logger:  logger,
	}
}

// Store validates the encoded image and uploads it. Either a durable URL is
// returned or nothing was persisted.
func (s *AttachmentService) Store(ctx context.Context, rawImage string) (string, error) {
	payload, err := decodePayload(rawImage)
	if err != nil {
		return "", fmt.Errorf("%w: image must be base64 encoded", errs.ErrInvalidInput)
	}
	if len(payload) > MaxPayloadSize {
		return "", fmt.Errorf("%w: image size exceeds 5MB limit", errs.ErrPayloadTooLarge)
	}

	imageURL, err := s.Storage.Upload(ctx, payload, storagePort.UploadOptions{
		ResourceType: "auto",
		ChunkSize:    uploadChunkSize,
		Invalidate:   true,
	})
	if err == nil && imageURL == "" {
		err = errors.New("storage returned an empty url")
	}
	if err != nil {
		s.Logger.Error("❌ Image upload failed", zap.Int("size", len(payload)), zap.Error(err))
		return "", fmt.Errorf("%w: %s", errs.ErrAttachmentFailure, err.Error())
	}

	s.Logger.Info("✅ Image uploaded", zap.String("url", imageURL), zap.Int("size", len(payload)))
	return imageURL, nil
}

// Destroy آزادسازی فایل؛ خطا فقط لاگ می‌شود و به فراخواننده برنمی‌گردد
func (s *AttachmentService) Destroy(ctx context.Context, imageURL string) {
	key := KeyFromURL(imageURL)
	if key == "" {
		s.Logger.Warn("⚠️ Cannot derive storage key from image url", zap.String("url", imageURL))
		return
	}
	if err := s.Storage.Destroy(ctx, key); err != nil {
		s.Logger.Warn("⚠️ Image destroy failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.Logger.Info("🗑 Image destroyed", zap.String("key", key))
}

// KeyFromURL derives the storage key: the last path segment of the URL with
// everything from its first dot removed.
func KeyFromURL(imageURL string) string {
	p := imageURL
	if u, err := url.Parse(imageURL); err == nil {
		p = u.Path
	}
	seg := path.Base(p)
	if seg == "." || seg == "/" {
		return ""
	}
	if i := strings.Index(seg, "."); i >= 0 {
		seg = seg[:i]
	}
	return seg
}

// decodePayload accepts plain base64 or a data URI ("data:image/png;base64,...").
func decodePayload(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "data:") {
		i := strings.Index(raw, ",")
		if i < 0 || !strings.HasSuffix(raw[:i], ";base64") {
			return nil, errors.New("unsupported data uri")
		}
		raw = raw[i+1:]
	}
	payload, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		payload, err = base64.RawStdEncoding.DecodeString(raw)
		if err != nil {
			return nil, err
		}
	}
	if len(payload) == 0 {
		return nil, errors.New("empty payload")
	}
	return payload, nil
}
