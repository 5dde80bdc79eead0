package objectstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
)

// DirReader reads objects from a directory tree laid out like the bucket:
// "<root>/<tenant uuid>/<key>", or "<root>/<key>" for the nil tenant. It
// serves exported bucket snapshots and tests.
type DirReader struct {
	fs     afero.Fs
	root   string
	logger hclog.Logger
}

// NewDirReader returns a reader rooted at root on fs.
func NewDirReader(fs afero.Fs, root string, logger hclog.Logger) *DirReader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &DirReader{
		fs:     fs,
		root:   root,
		logger: logger.Named("local-objects"),
	}
}

// Get reads one object.
func (r *DirReader) Get(ctx context.Context, tenant uuid.UUID, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := filepath.Clean("/" + filepath.FromSlash(key))
	parts := []string{r.root}
	if tenant != uuid.Nil {
		parts = append(parts, tenant.String())
	}
	p := filepath.Join(append(parts, strings.TrimPrefix(clean, string(filepath.Separator)))...)

	data, err := afero.ReadFile(r.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, p)
		}
		return nil, fmt.Errorf("error reading object %s: %w", p, err)
	}

	r.logger.Trace("read object", "path", p, "bytes", len(data))
	return data, nil
}
