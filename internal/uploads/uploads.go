// Package uploads stores photo files submitted with journal entries and
// hands back the stable relative paths recorded on the entry. The rest of
// the system treats those paths as opaque strings.
package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// MaxFiles caps how many photos one entry may carry.
const MaxFiles = 5

// URLPrefix is where the server exposes stored files.
const URLPrefix = "/uploads"

// Storage writes uploaded files into a single directory. File names are the
// upload timestamp in nanoseconds plus the original extension, so paths stay
// stable and collisions across concurrent uploads are practically ruled out.
type Storage struct {
	Dir string // Destination directory, created on demand
}

// NewStorage ensures the destination directory exists.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{Dir: dir}, nil
}

// Save persists every uploaded file and returns their public paths in upload
// order. At most MaxFiles files are accepted.
func (s *Storage) Save(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > MaxFiles {
		return nil, fmt.Errorf("at most %d images per entry", MaxFiles)
	}
	paths := make([]string, 0, len(files))
	for _, file := range files {
		name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(s.Dir, name)); err != nil {
			return nil, fmt.Errorf("save upload %q: %w", file.Filename, err)
		}
		paths = append(paths, URLPrefix+"/"+name)
	}
	return paths, nil
}
