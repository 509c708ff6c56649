package blob

import (
	"coachtrack/internal/infra/blob/fs"
)

// NewFilesystem constructs a filesystem-backed blob.Store rooted at the
// provided path. Returns blob.Store so call sites depend on the interface
// rather than the concrete implementation.
func NewFilesystem(root string) (Store, error) {
	return fs.New(root)
}
