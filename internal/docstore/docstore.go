// Package docstore adapts the external blob storage capability. The core
// hands it raw bytes and keeps only the returned URL; file contents are
// never inspected here or anywhere else in this module.
package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"leasehold/internal/household/models"
)

// Local writes blobs under a base directory and returns stable
// path-shaped URLs. Production deployments swap in an object-store-backed
// implementation of service.BlobStore.
type Local struct {
	baseDir string
	baseURL string
}

func NewLocal(baseDir, baseURL string) *Local {
	return &Local{baseDir: baseDir, baseURL: baseURL}
}

func (s *Local) Put(ctx context.Context, owner models.DocumentOwner, category models.DocumentCategory, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Blob keys embed owner and category so operators can locate files
	// without the metadata table.
	key := fmt.Sprintf("%s/%s/%s/%s_%s", owner.Kind, owner.ID, category, uuid.NewString(), filepath.Base(name))

	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return s.baseURL + "/" + key, nil
}
