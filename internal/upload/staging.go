package upload

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Staging writes request-scoped files into a directory. Every staged
// file belongs to exactly one request and is removed when that request
// is done.
type Staging struct {
	dir string
}

func NewStaging(dir string) *Staging {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Staging{dir: dir}
}

type StagedFile struct {
	path string
}

// Stage copies the uploaded bytes to a uniquely named file. The name
// carries a nanosecond timestamp, a random component and the original
// filename, so concurrent requests cannot collide.
func (s *Staging) Stage(src io.Reader, filename string) (*StagedFile, error) {
	name := fmt.Sprintf(
		"%d-%s-%s",
		time.Now().UnixNano(),
		uuid.New().String(),
		filepath.Base(filename),
	)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	return &StagedFile{path: path}, nil
}

func (f *StagedFile) Path() string {
	return f.path
}

// Remove deletes the staged file. The engine may already have consumed
// it, so a missing file is fine. Any other failure is logged and never
// returned: cleanup must not displace the request's real outcome.
func (f *StagedFile) Remove() {
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		return
	}
	if err := os.Remove(f.path); err != nil {
		log.Printf("UPLOAD_CLEANUP_FAILED path=%s err=%v", f.path, err)
	}
}
