package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-composer/internal/rendering"
)

// writeChunk bounds how much is written between context checks.
const writeChunk = 64 << 10

// Save writes doc into dir under doc.FileName and returns the final path.
// The bytes go to a temporary file that is renamed into place only after a
// complete write, so a failed or canceled save leaves no file behind.
func Save(ctx context.Context, doc *rendering.Document, dir string) (string, error) {
	if doc == nil || len(doc.Data) == 0 {
		return "", &SaveError{Path: dir, Message: "empty document"}
	}
	if err := ctx.Err(); err != nil {
		return "", &SaveError{Path: dir, Message: "canceled", Cause: err}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &SaveError{Path: dir, Message: "failed to create output directory", Cause: err}
	}

	target := filepath.Join(dir, filepath.Base(doc.FileName))
	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return "", &SaveError{Path: target, Message: "failed to create temporary file", Cause: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	for off := 0; off < len(doc.Data); off += writeChunk {
		if err := ctx.Err(); err != nil {
			return "", &SaveError{Path: target, Message: "canceled", Cause: err}
		}
		end := min(off+writeChunk, len(doc.Data))
		if _, err := tmp.Write(doc.Data[off:end]); err != nil {
			return "", &SaveError{Path: target, Message: "failed to write document", Cause: err}
		}
	}
	if err := tmp.Sync(); err != nil {
		return "", &SaveError{Path: target, Message: "failed to flush document", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &SaveError{Path: target, Message: "failed to close document", Cause: err}
	}
	if err := ctx.Err(); err != nil {
		return "", &SaveError{Path: target, Message: "canceled", Cause: err}
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", &SaveError{Path: target, Message: "failed to move document into place", Cause: err}
	}
	committed = true
	return target, nil
}
