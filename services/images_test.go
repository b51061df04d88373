package services

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/media"
	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
)

// fakeImageRepo records calls against the image row store
type fakeImageRepo struct {
	byFilename map[string]*models.Image
	deleted    []uint
	owned      map[uint]string
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{
		byFilename: map[string]*models.Image{},
		owned:      map[uint]string{},
	}
}

func (r *fakeImageRepo) Create(image *models.Image) error {
	image.ID = uint(len(r.byFilename) + 1)
	r.byFilename[image.Filename] = image
	return nil
}

func (r *fakeImageRepo) GetByFilename(filename string) (*models.Image, error) {
	image, ok := r.byFilename[filename]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return image, nil
}

func (r *fakeImageRepo) GetByOwner(ownerType string, ownerID uint) ([]models.Image, error) {
	return nil, nil
}

func (r *fakeImageRepo) SetOwner(id uint, ownerType string, ownerID uint) error {
	for _, image := range r.byFilename {
		if image.ID != id {
			continue
		}
		if image.OwnerType != "" && (image.OwnerType != ownerType || image.OwnerID != ownerID) {
			return repository.ErrImageOwned
		}
		image.OwnerType = ownerType
		image.OwnerID = ownerID
		r.owned[id] = ownerType
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeImageRepo) Delete(id uint) error {
	r.deleted = append(r.deleted, id)
	return nil
}

// fakeStore records asset deletions; dirs overrides the subdirectory per
// asset type the way a configured LocalStorage would
type fakeStore struct {
	dirs    map[media.AssetType]string
	deleted []string
}

func (s *fakeStore) Save(assetType media.AssetType, filename string, data io.Reader) (string, error) {
	dir := string(assetType) + "s"
	if d, ok := s.dirs[assetType]; ok {
		dir = d
	}
	return dir + "/" + filename, nil
}

func (s *fakeStore) Get(relativePath string) (io.ReadCloser, os.FileInfo, error) {
	return nil, nil, os.ErrNotExist
}

func (s *fakeStore) Delete(relativePath string) error {
	s.deleted = append(s.deleted, relativePath)
	return nil
}

func (s *fakeStore) GetFullPath(relativePath string) (string, error) {
	return relativePath, nil
}

func TestCleanUpUnusedImagesFullRemoval(t *testing.T) {
	repo := newFakeImageRepo()
	store := &fakeStore{}
	svc := NewImageService(repo, store, "http://localhost:8080", 0)

	oldImages := []models.Image{{ID: 1, Filename: "a", StoredPath: "uploads/a"}}

	require.NoError(t, svc.CleanUpUnusedImages(oldImages, nil))

	assert.Equal(t, []string{"uploads/a"}, store.deleted)
	assert.Equal(t, []uint{1}, repo.deleted)
}

func TestCleanUpUnusedImagesPartialRemoval(t *testing.T) {
	repo := newFakeImageRepo()
	store := &fakeStore{}
	svc := NewImageService(repo, store, "http://localhost:8080", 0)

	oldImages := []models.Image{
		{ID: 1, Filename: "a", StoredPath: "uploads/a"},
		{ID: 2, Filename: "b", StoredPath: "uploads/b"},
	}
	newImages := []models.Image{{ID: 1, Filename: "a", StoredPath: "uploads/a"}}

	require.NoError(t, svc.CleanUpUnusedImages(oldImages, newImages))

	assert.Equal(t, []string{"uploads/b"}, store.deleted)
	assert.Equal(t, []uint{2}, repo.deleted)
}

func TestCleanUpUnusedImagesNoChanges(t *testing.T) {
	repo := newFakeImageRepo()
	store := &fakeStore{}
	svc := NewImageService(repo, store, "http://localhost:8080", 0)

	images := []models.Image{{ID: 1, Filename: "a", StoredPath: "uploads/a"}}

	require.NoError(t, svc.CleanUpUnusedImages(images, images))
	assert.Empty(t, store.deleted)
	assert.Empty(t, repo.deleted)
}

func TestCleanUpUnusedImagesRemovesThumbnail(t *testing.T) {
	repo := newFakeImageRepo()
	store := &fakeStore{}
	svc := NewImageService(repo, store, "http://localhost:8080", 0)

	thumb := "thumbnails/a_thumb.jpg"
	oldImages := []models.Image{{ID: 1, Filename: "a", StoredPath: "uploads/a", ThumbnailPath: &thumb}}

	require.NoError(t, svc.CleanUpUnusedImages(oldImages, nil))
	assert.Equal(t, []string{"uploads/a", thumb}, store.deleted)
}

func TestGetImagesDropsUnknownFilenames(t *testing.T) {
	repo := newFakeImageRepo()
	repo.byFilename["known.jpg"] = &models.Image{ID: 7, Filename: "known.jpg"}
	svc := NewImageService(repo, &fakeStore{}, "http://localhost:8080", 0)

	images, err := svc.GetImages([]string{"known.jpg", "missing.jpg"})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, uint(7), images[0].ID)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	repo := newFakeImageRepo()
	svc := NewImageService(repo, &fakeStore{}, "http://localhost:8080", 0)

	results := svc.Upload("", 0, []UploadFile{{
		OriginalName: "big.jpg",
		Data:         make([]byte, MaxUploadBytes+1),
	}})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.NotEmpty(t, results[0].Error)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestAttachImagesRefusesOwnedImage(t *testing.T) {
	repo := newFakeImageRepo()
	repo.byFilename["a.jpg"] = &models.Image{ID: 1, Filename: "a.jpg", OwnerType: "people", OwnerID: 1}
	svc := NewImageService(repo, &fakeStore{}, "http://localhost:8080", 0)

	err := svc.AttachImages("people", 2, []models.Image{*repo.byFilename["a.jpg"]})
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "images")

	assert.Equal(t, uint(1), repo.byFilename["a.jpg"].OwnerID)
}

func TestAttachImagesReassertsCurrentOwner(t *testing.T) {
	repo := newFakeImageRepo()
	repo.byFilename["a.jpg"] = &models.Image{ID: 1, Filename: "a.jpg", OwnerType: "people", OwnerID: 1}
	svc := NewImageService(repo, &fakeStore{}, "http://localhost:8080", 0)

	require.NoError(t, svc.AttachImages("people", 1, []models.Image{*repo.byFilename["a.jpg"]}))
}

func TestRemoveDeletesFileFromConfiguredSubdir(t *testing.T) {
	repo := newFakeImageRepo()
	store := &fakeStore{dirs: map[media.AssetType]string{
		media.AssetTypeUpload:    "originals",
		media.AssetTypeThumbnail: "thumbs",
	}}
	svc := NewImageService(repo, store, "http://localhost:8080", 0)

	results := svc.Upload("", 0, []UploadFile{{OriginalName: "portrait.png", Data: pngBytes(t)}})
	require.Len(t, results, 1)
	require.True(t, results[0].Success, results[0].Error)

	stored := repo.byFilename[results[0].Filename]
	require.NotNil(t, stored)
	assert.Equal(t, "originals/"+stored.Filename, stored.StoredPath)
	assert.Equal(t, "http://localhost:8080/api/v1/originals/"+stored.Filename, stored.URL)

	require.NoError(t, svc.RemoveByFilename(stored.Filename))
	assert.Contains(t, store.deleted, "originals/"+stored.Filename)
}

func TestUploadRejectsNonImageData(t *testing.T) {
	repo := newFakeImageRepo()
	svc := NewImageService(repo, &fakeStore{}, "http://localhost:8080", 0)

	results := svc.Upload("", 0, []UploadFile{{
		OriginalName: "notes.txt",
		Data:         []byte("definitely not an image"),
	}})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
}
