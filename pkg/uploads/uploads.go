// Package uploads stores multipart file uploads on local disk and validates
// them by sniffing content, not by trusting the client's Content-Type header.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const URLPrefix = "/uploads"

var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("file type is not allowed")
)

// PhotoTypes is the allow-list for player photos.
var PhotoTypes = []string{"image/jpeg", "image/png", "image/webp"}

// DocumentTypes additionally allows PDFs, for identity documents.
var DocumentTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) *Store {
	return &Store{dir: dir, maxBytes: maxBytes}
}

// Save validates the upload against the size cap and the given MIME
// allow-list, writes it under a collision-resistant name and returns the
// relative URL it will be served from.
func (s *Store) Save(file *multipart.FileHeader, field string, allowedTypes []string) (string, error) {
	if file.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, field, file.Size, s.maxBytes)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("could not open uploaded file %s: %w", field, err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("could not detect type of %s: %w", field, err)
	}

	allowed := false
	for _, t := range allowedTypes {
		if mtype.Is(t) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("%w: %s detected as %s", ErrUnsupportedType, field, mtype.String())
	}

	// DetectReader consumed the head of the stream.
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("could not rewind uploaded file %s: %w", field, err)
	}

	if err := EnsureDir(s.dir); err != nil {
		return "", fmt.Errorf("could not create upload directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixNano(), uuid.NewString()[:8], mtype.Extension())
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("could not create file for %s: %w", field, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("could not write uploaded file %s: %w", field, err)
	}

	return URLPrefix + "/" + filename, nil
}

// Remove deletes a previously saved file given its relative URL. Cleanup is
// best-effort: failures are logged, never propagated.
func (s *Store) Remove(url string) {
	name := strings.TrimPrefix(url, URLPrefix+"/")
	if name == "" || name == url {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove uploaded file %s: %v", name, err)
	}
}

// Path resolves a saved file's relative URL to its on-disk path.
func (s *Store) Path(url string) string {
	return filepath.Join(s.dir, strings.TrimPrefix(url, URLPrefix+"/"))
}

// EnsureDir creates the directory if it does not exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
