package storage

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a multipart.FileHeader the way gin receives one.
func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[field][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestSaveUsesUUIDNames(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "/storage")
	require.NoError(t, err)

	fh := fileHeader(t, "file", "Tugas Akhir.PDF", []byte("%PDF-1.4"))
	first, err := store.Save(FolderQuizFile, fh, DocumentRule("file"))
	require.NoError(t, err)
	second, err := store.Save(FolderQuizFile, fh, DocumentRule("file"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, FolderQuizFile+"/"))
	assert.True(t, strings.HasSuffix(first, ".pdf"))
	assert.Len(t, strings.TrimSuffix(filepath.Base(first), ".pdf"), 36)
	assert.Equal(t, "/storage/"+first, store.URL(first))
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "/storage")
	require.NoError(t, err)

	_, err = store.Save(FolderFeed, fileHeader(t, "image", "run.exe", []byte("MZ")), ImageRule("image"))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "/storage")
	require.NoError(t, err)

	rule := DocumentRule("file")
	rule.MaxBytes = 4
	_, err = store.Save(FolderQuizFile, fileHeader(t, "file", "a.pdf", []byte("0123456789")), rule)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestSaveDownscalesLargeImages(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalFileStore(root, "/storage")
	require.NoError(t, err)

	rel, err := store.Save(FolderAvatar, fileHeader(t, "avatar", "me.png", pngBytes(t, 2000, 100)), ImageRule("avatar"))
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(root, rel))
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, MaxImageDimension, cfg.Width)
}

func TestDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalFileStore(root, "/storage")
	require.NoError(t, err)

	rel, err := store.Save(FolderMateri, fileHeader(t, "image_banner", "b.png", pngBytes(t, 10, 10)), ImageRule("image_banner"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(rel))
	_, err = os.Stat(filepath.Join(root, rel))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(rel), "deleting twice is not an error")
	assert.NoError(t, store.Delete(""))
}

// failingCloser accepts writes and then fails to flush them on Close.
type failingCloser struct {
	bytes.Buffer
	closed bool
}

func (w *failingCloser) Close() error {
	w.closed = true
	return errors.New("disk quota exceeded")
}

func TestCopyAndCloseReportsCloseError(t *testing.T) {
	out := &failingCloser{}
	err := copyAndClose(out, strings.NewReader("%PDF-1.4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk quota exceeded")
	assert.True(t, out.closed)
}

func TestCopyAndCloseWritesContent(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "doc.pdf")
	out, err := os.Create(dst)
	require.NoError(t, err)
	require.NoError(t, copyAndClose(out, strings.NewReader("%PDF-1.4")))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(got))
}
