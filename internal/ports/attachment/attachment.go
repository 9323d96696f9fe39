package attachment

import "context"

// Lifecycle stores and releases the media referenced by a post.
type Lifecycle interface {
	Store(ctx context.Context, rawImage string) (string, error)
	// Destroy is best-effort; failures are logged by the implementation.
	Destroy(ctx context.Context, imageURL string)
}
