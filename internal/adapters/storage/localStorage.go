package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	storagePort "socialfeed/internal/ports/storage"

	"github.com/gofrs/uuid"
)

const (
	defaultChunkSize = 1 << 20
	// fallbackExtension is used for "auto" uploads whose content type is not a known media type.
	fallbackExtension = ".bin"
)

// extensions maps sniffed content types to file extensions.
var extensions = map[string]string{
	"image/jpeg": ".jpeg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
}

var _ storagePort.ObjectStorage = &LocalStorage{}

// LocalStorage stores objects as files under Dir and serves them from
// BaseURL. The object key is the file name without its extension.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStorage{
		Dir:     dir,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload فایل را تکه‌تکه در یک فایل موقت می‌نویسد و در پایان rename می‌کند
func (s *LocalStorage) Upload(ctx context.Context, payload []byte, opts storagePort.UploadOptions) (string, error) {
	ext, err := detectExtension(payload, opts.ResourceType)
	if err != nil {
		return "", err
	}

	key := strings.ReplaceAll(uuid.Must(uuid.NewV4()).String(), "-", "")
	name := key + ext
	dst := filepath.Join(s.Dir, name)

	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return "", pathFree("create", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // بعد از rename اثری ندارد

	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}
	for off := 0; off < len(payload); off += chunk {
		end := min(off+chunk, len(payload))
		if _, err := tmp.Write(payload[off:end]); err != nil {
			tmp.Close()
			return "", pathFree(fmt.Sprintf("write chunk at %d", off), err)
		}
	}
	if err := tmp.Close(); err != nil {
		return "", pathFree("close", err)
	}

	if !opts.Invalidate {
		if _, err := os.Stat(dst); err == nil {
			return "", fmt.Errorf("object %s already exists", name)
		}
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return "", pathFree("rename", err)
	}

	return s.BaseURL + "/" + name, nil
}

// Destroy removes every stored file whose name is key plus an extension.
func (s *LocalStorage) Destroy(ctx context.Context, key string) error {
	if key == "" || strings.ContainsAny(key, `/\.*?[`) {
		return fmt.Errorf("invalid object key %q", key)
	}
	matches, err := filepath.Glob(filepath.Join(s.Dir, key+".*"))
	if err != nil {
		return pathFree("lookup", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("object %q not found", key)
	}
	var errList []error
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			errList = append(errList, pathFree("remove", err))
		}
	}
	return errors.Join(errList...)
}

// detectExtension sniffs the payload. A concrete resource type ("image",
// "video") requires a matching known media type; "auto" stores anything.
func detectExtension(payload []byte, resourceType string) (string, error) {
	contentType := http.DetectContentType(payload)
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := extensions[contentType]
	if resourceType == "" || resourceType == "auto" {
		if !ok {
			return fallbackExtension, nil
		}
		return ext, nil
	}
	if !ok {
		return "", fmt.Errorf("unsupported content-type %s", contentType)
	}
	if !strings.HasPrefix(contentType, resourceType+"/") {
		return "", fmt.Errorf("content-type %s does not match resource type %s", contentType, resourceType)
	}
	return ext, nil
}

// pathFree drops file system paths from err so callers can surface it.
func pathFree(op string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return fmt.Errorf("%s object: %w", op, pe.Err)
	}
	var le *os.LinkError
	if errors.As(err, &le) {
		return fmt.Errorf("%s object: %w", op, le.Err)
	}
	return fmt.Errorf("%s object: %w", op, err)
}
