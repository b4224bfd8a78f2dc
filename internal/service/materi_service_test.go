package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/repository"
	"github.com/lshigami/classquiz/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func materiRequest(subject string) dto.MateriRequest {
	return dto.MateriRequest{
		Subject:     subject,
		Competence:  "Memahami sistem tata surya",
		Class:       "VII",
		Semester:    "2",
		Meet:        "3",
		Description: "Planet dan satelit",
	}
}

func TestMateriLifecycle(t *testing.T) {
	root := t.TempDir()
	files, err := storage.NewLocalFileStore(root, "/storage")
	require.NoError(t, err)
	f := newFixture(t)
	svc := NewMateriService(repository.NewMateriRepository(f.db), files)

	created, err := svc.Create(f.teacherP, materiRequest("IPA"), pngFile(t, "image_banner"))
	require.NoError(t, err)
	require.NotNil(t, created.ImageBanner)
	first := *created.ImageBanner
	assert.FileExists(t, filepath.Join(root, first))

	updated, err := svc.Update(created.ID, materiRequest("IPA Terpadu"), pngFile(t, "image_banner"))
	require.NoError(t, err)
	assert.Equal(t, "IPA Terpadu", updated.Subject)
	require.NotNil(t, updated.ImageBanner)
	assert.NotEqual(t, first, *updated.ImageBanner)
	_, statErr := os.Stat(filepath.Join(root, first))
	assert.True(t, os.IsNotExist(statErr), "replaced banner is removed")

	require.NoError(t, svc.DeleteImage(created.ID))
	err = svc.DeleteImage(created.ID)
	appErr := assertKind(t, err, apperror.KindBusinessRule)
	assert.Equal(t, apperror.MsgImageMissing, appErr.Message)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.Show(created.ID)
	assertKind(t, err, apperror.KindNotFound)
}
