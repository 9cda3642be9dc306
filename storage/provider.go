package storage

import "io"

// Provider persists downloaded artifact archives.
type Provider interface {
	MetadataOf(locator ObjectDescriptor) (*Item, error)
	// Store consumes and closes stream. objectSize may be -1 when unknown.
	Store(locator ObjectDescriptor, mime string, objectSize int64, stream io.ReadCloser) (*Item, error)
}
