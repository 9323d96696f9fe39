package storage

import "context"

type UploadOptions struct {
	ResourceType string // "auto" lets the store detect the media type
	ChunkSize    int
	Invalidate   bool
}

// ObjectStorage پورت سرویس ذخیره‌سازی فایل؛ آدرس پایدار برمی‌گرداند
type ObjectStorage interface {
	Upload(ctx context.Context, payload []byte, opts UploadOptions) (string, error)
	Destroy(ctx context.Context, key string) error
}
