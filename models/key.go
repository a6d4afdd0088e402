package models

import (
	"crypto/sha256"
	"fmt"
)

// adHocPrefixLen is how much of an ad-hoc text selection participates in the
// cache key. Two selections sharing a locator and a 100-character prefix are
// treated as the same content.
const adHocPrefixLen = 100

// CacheKey identifies cached content. AdHoc keys come from one-off text
// selections and are held transiently in memory, never persisted.
type CacheKey struct {
	Key   string
	AdHoc bool
}

// PageKey derives the cache key for a page or video URL. The URL itself is
// the key so entries stay inspectable in storage.
func PageKey(url string) CacheKey {
	return CacheKey{Key: url}
}

// TextKey derives a transient cache key for an ad-hoc text selection from
// its locator plus a truncated prefix of the text.
func TextKey(locator, text string) CacheKey {
	prefix := text
	if len(prefix) > adHocPrefixLen {
		prefix = prefix[:adHocPrefixLen]
	}
	hash := sha256.Sum256([]byte(locator + "\n" + prefix))
	return CacheKey{
		Key:   fmt.Sprintf("text:%x", hash[:12]),
		AdHoc: true,
	}
}
