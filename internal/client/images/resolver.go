// Package images implements the image resolution policy: deterministic
// local paths for record artifacts, idempotent acquisition, and
// self-healing revalidation of cached images.
package images

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/pokedex/internal/client/blob"
	"github.com/dmitrijs2005/pokedex/internal/client/models"
	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/logging"
)

// DefaultPlaceholder is surfaced when both the cached local artifact and
// the remote source are unavailable.
const DefaultPlaceholder = "asset://images/placeholder.png"

// Resolver decides, for any record, whether its known local image path is
// still valid, and re-acquires the artifact when it is not.
type Resolver struct {
	store       blob.Store
	root        string
	placeholder string
	logger      logging.Logger
}

// NewResolver returns a Resolver storing artifacts under root.
func NewResolver(store blob.Store, root string, logger logging.Logger) *Resolver {
	return &Resolver{
		store:       store,
		root:        root,
		placeholder: DefaultPlaceholder,
		logger:      logger.With("component", "images"),
	}
}

// EnsureLocalCopy acquires srcURI into <root>/<destName> and returns the
// local path. If an artifact already exists at that path it is returned
// unchanged without touching the source. Local sources are copied, remote
// ones downloaded. Invalid arguments and failed transfers are reported as
// ErrorAcquisition.
func (r *Resolver) EnsureLocalCopy(ctx context.Context, srcURI, destName string) (string, error) {
	if srcURI == "" || destName == "" {
		return "", fmt.Errorf("invalid source uri %q or file name %q: %w", srcURI, destName, common.ErrorAcquisition)
	}

	path := filepath.Join(r.root, destName)

	exists, err := r.store.Exists(ctx, path)
	if err != nil {
		return "", fmt.Errorf("checking %s: %v: %w", path, err, common.ErrorAcquisition)
	}
	if exists {
		return path, nil
	}

	if blob.IsLocalURI(srcURI) {
		err = r.store.Copy(ctx, srcURI, path)
	} else {
		err = r.store.Download(ctx, srcURI, path)
	}
	if err != nil {
		return "", fmt.Errorf("acquiring %s: %v: %w", srcURI, err, common.ErrorAcquisition)
	}

	return path, nil
}

// ResolveImage returns a displayable image URI for the record, repairing a
// missing local artifact from the remote source on the way. The record's
// Local field is updated in place when a repair succeeds; the caller owns
// persisting the change. Failures degrade to the remote URI and finally to
// the placeholder, never to an error.
func (r *Resolver) ResolveImage(ctx context.Context, rec *models.Record) string {
	if rec.Image.Local != "" {
		exists, err := r.store.Exists(ctx, rec.Image.Local)
		if err != nil {
			r.logger.Warn(ctx, "image existence check failed", "record_id", rec.ID, "path", rec.Image.Local, "error", err)
		}
		if exists {
			return rec.Image.Local
		}
	}

	path, err := r.EnsureLocalCopy(ctx, rec.Image.Remote, rec.ImageFileName())
	if err == nil {
		rec.Image.Local = path
		return path
	}
	r.logger.Warn(ctx, "image re-acquisition failed", "record_id", rec.ID, "error", err)

	if rec.Image.Remote != "" {
		return rec.Image.Remote
	}
	return r.placeholder
}

// RemoveArtifact deletes the record's canonical blob, if any.
func (r *Resolver) RemoveArtifact(ctx context.Context, rec *models.Record) error {
	return r.store.Remove(ctx, filepath.Join(r.root, rec.ImageFileName()))
}
