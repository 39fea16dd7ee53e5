// Package blob implements the client's file store for binary image
// artifacts, addressed by path.
package blob

import "context"

// Store is the blob-store contract consumed by the image resolution
// policy. Paths are absolute; implementations decide how they map to
// actual storage.
type Store interface {
	// Exists reports whether an artifact is present at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Copy copies a local artifact from one path to another.
	Copy(ctx context.Context, from, to string) error

	// Download fetches a remote URI into a local path.
	Download(ctx context.Context, uri, to string) error

	// Remove deletes the artifact at path. Removing an absent artifact
	// is not an error.
	Remove(ctx context.Context, path string) error
}
