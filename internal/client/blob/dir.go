package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DirStore implements Store on top of a local directory, downloading
// remote URIs over HTTP. Writes go through a temporary file and a rename
// so a failed download never leaves a partial artifact behind.
type DirStore struct {
	root   string
	client *http.Client
}

// NewDirStore returns a DirStore rooted at dir. The directory must exist.
func NewDirStore(dir string) *DirStore {
	return &DirStore{
		root:   dir,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Root returns the directory artifacts are stored under.
func (s *DirStore) Root() string {
	return s.root
}

func (s *DirStore) Exists(_ context.Context, path string) (bool, error) {
	fi, err := os.Stat(stripFileScheme(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return !fi.IsDir(), nil
}

func (s *DirStore) Copy(_ context.Context, from, to string) error {
	src, err := os.Open(stripFileScheme(from))
	if err != nil {
		return fmt.Errorf("open %s: %w", from, err)
	}
	defer src.Close()

	return s.write(to, src)
}

func (s *DirStore) Download(ctx context.Context, uri, to string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %d", uri, resp.StatusCode)
	}

	return s.write(to, resp.Body)
}

func (s *DirStore) Remove(_ context.Context, path string) error {
	if err := os.Remove(stripFileScheme(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// write streams r into path via a uniquely named temp file in the same
// directory, then renames it into place.
func (s *DirStore) write(path string, r io.Reader) error {
	path = stripFileScheme(path)

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// IsLocalURI reports whether uri points at the local filesystem rather
// than a remote endpoint.
func IsLocalURI(uri string) bool {
	if strings.HasPrefix(uri, "file://") {
		return true
	}
	return !strings.Contains(uri, "://")
}

func stripFileScheme(path string) string {
	return strings.TrimPrefix(path, "file://")
}
