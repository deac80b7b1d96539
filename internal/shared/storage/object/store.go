package object

import (
	"context"
	"io"
	"net/url"
	"regexp"
	"strings"
)

// ObjectStore defines the contract for saving, retrieving and deleting binary
// objects by storage key.
type ObjectStore interface {
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// Delete removes an object. A missing object is not an error.
	Delete(ctx context.Context, storageKey string) error
}

// urlKeyPattern matches the storage key between the /o/ marker and the query
// string of a public object URL.
var urlKeyPattern = regexp.MustCompile(`/o/(.+?)\?`)

// PublicURL builds the publicly resolvable URL for a storage key.
func PublicURL(baseURL, storageKey string) string {
	return strings.TrimRight(baseURL, "/") + "/o/" + url.PathEscape(storageKey) + "?alt=media"
}

// KeyFromURL derives the storage key from a public object URL. It is a
// best-effort reversal of PublicURL: the key is whatever sits between the /o/
// marker and the query delimiter. An empty string means the key could not be
// resolved and the caller should skip the object.
func KeyFromURL(rawURL string) string {
	decoded, err := url.QueryUnescape(rawURL)
	if err != nil {
		decoded = rawURL
	}
	match := urlKeyPattern.FindStringSubmatch(decoded)
	if match == nil {
		return ""
	}
	return match[1]
}
