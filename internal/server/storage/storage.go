// Package storage persists uploaded attachments and resolves their public URLs.
package storage

import (
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

type (
	// A FileStore writes uploaded blobs and returns publicly resolvable URLs.
	FileStore interface {
		// Store writes the blob under a unique name derived from field and
		// filename, and returns its absolute public URL.
		Store(field, filename string, r io.Reader) (string, error)
		// Root returns the directory served as static files.
		Root() string
	}

	disk struct {
		root    string
		baseURL string
	}
)

// NewDiskStore returns a FileStore writing under root.
// baseURL is the scheme+host prefix of the returned URLs.
func NewDiskStore(root, baseURL string) (FileStore, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.Wrap(err, "could not parse base URL")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create uploads directory")
	}

	return &disk{root: root, baseURL: baseURL}, nil
}

func (s *disk) Store(field, filename string, r io.Reader) (string, error) {
	name := field + "-" + strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + SecureToken(8) + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", errors.Wrap(err, "could not create upload file")
	}
	defer f.Close()

	if _, err = io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "could not write upload file")
	}
	if err = f.Sync(); err != nil {
		return "", errors.Wrap(err, "could not flush upload file")
	}

	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", errors.Wrap(err, "could not parse base URL")
	}
	u.Path = path.Join(u.Path, "uploads", name)

	return u.String(), nil
}

func (s *disk) Root() string {
	return s.root
}
