package cache

import (
	"context"
	"time"
)

// TagAlternatives covers every cached alternative set; invalidating it
// flushes the whole alternatives cache at once.
const TagAlternatives = "alternatives"

// OfferingTag names the tag carried by every cached entry that references
// the given offering. Offering writes invalidate this tag.
func OfferingTag(offeringID string) string {
	return "offering:" + offeringID
}

// Store is a string cache with tag-based invalidation. Every entry may carry
// a set of tags; invalidating a tag removes every entry that carried it.
// Implementations keep a reverse index from tag to the keys it covers.
type Store interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// SetWithTags stores value under key with the given TTL and registers
	// it under each tag.
	SetWithTags(ctx context.Context, key, value string, ttl time.Duration, tags []string) error
	// InvalidateTag removes every entry registered under the tag.
	InvalidateTag(ctx context.Context, tag string) error
}
