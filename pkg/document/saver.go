package document

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// ErrNilArtifact is returned when saving a nil artifact.
var ErrNilArtifact = errors.New("document: artifact is required")

// Saver persists or delivers an artifact.
type Saver interface {
	Save(ctx context.Context, artifact *Artifact) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, artifact *Artifact) error

// Save implements Saver.
func (fn SaverFunc) Save(ctx context.Context, artifact *Artifact) error {
	return fn(ctx, artifact)
}

// FileSaver writes artifacts into a directory.
type FileSaver struct {
	Dir  string
	Perm os.FileMode
}

// Path returns the destination for artifact.
func (s FileSaver) Path(artifact *Artifact) string {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, filepath.Base(artifact.Filename))
}

// Save implements Saver. Existing files with the same name are replaced.
func (s FileSaver) Save(ctx context.Context, artifact *Artifact) error {
	if artifact == nil {
		return ErrNilArtifact
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return fmt.Errorf("document: create dir: %w", err)
		}
	}
	path := s.Path(artifact)
	if err := os.WriteFile(path, artifact.Body, perm); err != nil {
		return fmt.Errorf("document: write %s: %w", path, err)
	}
	return nil
}

// HTTPSaver streams artifacts as attachments.
type HTTPSaver struct {
	Writer http.ResponseWriter
}

// Save implements Saver.
func (s HTTPSaver) Save(_ context.Context, artifact *Artifact) error {
	return WriteAttachment(s.Writer, artifact)
}

// WriteAttachment writes artifact with download headers.
func WriteAttachment(w http.ResponseWriter, artifact *Artifact) error {
	if artifact == nil {
		return ErrNilArtifact
	}
	header := w.Header()
	header.Set("Content-Type", artifact.ContentType)
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(artifact.Filename)))
	header.Set("Content-Length", strconv.Itoa(len(artifact.Body)))
	header.Set("Cache-Control", "no-store")
	if artifact.ID != "" {
		header.Set("X-Document-Id", artifact.ID)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Body); err != nil {
		return fmt.Errorf("document: write response: %w", err)
	}
	return nil
}
