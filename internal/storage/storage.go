package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/lshigami/classquiz/config"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Folders used for uploads, relative to the storage root.
const (
	FolderAvatar     = "images/avatar"
	FolderQuizBanner = "images/quiz"
	FolderQuizFile   = "files/quiz"
	FolderFeed       = "images/feed"
	FolderMateri     = "images/materi"
)

// MaxImageDimension is the longest side kept for uploaded images.
const MaxImageDimension = 1600

// Rule restricts what a single upload field accepts.
type Rule struct {
	Field      string
	Extensions []string
	MaxBytes   int64
}

// Images are re-encoded and downscaled; other files are stored as uploaded.
var imageExtensions = map[string]bool{"jpg": true, "jpeg": true, "png": true}

func ImageRule(field string) Rule {
	return Rule{Field: field, Extensions: []string{"jpeg", "png", "jpg"}, MaxBytes: 2 << 20}
}

func DocumentRule(field string) Rule {
	return Rule{Field: field, Extensions: []string{"jpeg", "png", "jpg", "doc", "docx", "pdf"}, MaxBytes: 10 << 20}
}

type FileStore interface {
	// Save stores the upload as folder/<uuid>.<ext> and returns that relative path.
	Save(folder string, fh *multipart.FileHeader, rule Rule) (string, error)
	// Delete removes a stored file. Missing files are not an error.
	Delete(relPath string) error
	URL(relPath string) string
}

type localFileStore struct {
	root    string
	baseURL string
}

func NewFileStore(cfg *config.Config) (FileStore, error) {
	return NewLocalFileStore(cfg.Storage.Root, cfg.Storage.URL)
}

func NewLocalFileStore(root, baseURL string) (FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create storage root %s", root)
	}
	return &localFileStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *localFileStore) Save(folder string, fh *multipart.FileHeader, rule Rule) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !allowed(ext, rule.Extensions) {
		return "", apperror.Field(rule.Field, fmt.Sprintf("must be a file of type: %s", strings.Join(rule.Extensions, ", ")))
	}
	if rule.MaxBytes > 0 && fh.Size > rule.MaxBytes {
		return "", apperror.Field(rule.Field, fmt.Sprintf("may not be greater than %d kilobytes", rule.MaxBytes>>10))
	}

	relPath := path.Join(folder, uuid.NewString()+"."+ext)
	absPath := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", errors.Wrap(err, "create upload folder")
	}

	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	if imageExtensions[ext] {
		err = saveImage(src, absPath, rule.Field)
	} else {
		err = saveRaw(src, absPath)
	}
	if err != nil {
		_ = os.Remove(absPath)
		return "", err
	}

	log.Debug().Str("path", relPath).Int64("size", fh.Size).Msg("FileStore: upload saved")
	return relPath, nil
}

func (s *localFileStore) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+relPath))))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete %s", relPath)
	}
	return nil
}

func (s *localFileStore) URL(relPath string) string {
	return s.baseURL + "/" + relPath
}

func saveRaw(src io.Reader, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "create file")
	}
	return copyAndClose(out, src)
}

// copyAndClose writes src to out and reports a failed Close as a failed write.
func copyAndClose(out io.WriteCloser, src io.Reader) error {
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return errors.Wrap(err, "write file")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "close file")
	}
	return nil
}

func saveImage(src io.Reader, dst, field string) error {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return apperror.Field(field, "must be an image")
	}
	b := img.Bounds()
	if b.Dx() > MaxImageDimension || b.Dy() > MaxImageDimension {
		img = imaging.Fit(img, MaxImageDimension, MaxImageDimension, imaging.Lanczos)
	}
	if err := imaging.Save(img, dst); err != nil {
		return errors.Wrap(err, "encode image")
	}
	return nil
}

func allowed(ext string, exts []string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
