package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stellarchive/catalogbackend/models"
)

func newImageTestRepo(t *testing.T) (ImageRepositoryInterface, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Image{}))

	return NewGormImageRepository(db), db
}

func TestSetOwnerClaimsUnownedImage(t *testing.T) {
	repo, db := newImageTestRepo(t)

	image := &models.Image{Filename: "a.png", StoredPath: "uploads/a.png", URL: "u"}
	require.NoError(t, repo.Create(image))

	require.NoError(t, repo.SetOwner(image.ID, "people", 1))

	var stored models.Image
	require.NoError(t, db.First(&stored, image.ID).Error)
	assert.Equal(t, "people", stored.OwnerType)
	assert.Equal(t, uint(1), stored.OwnerID)
}

func TestSetOwnerReassertsCurrentOwner(t *testing.T) {
	repo, _ := newImageTestRepo(t)

	image := &models.Image{Filename: "a.png", StoredPath: "uploads/a.png", URL: "u"}
	require.NoError(t, repo.Create(image))
	require.NoError(t, repo.SetOwner(image.ID, "people", 1))

	require.NoError(t, repo.SetOwner(image.ID, "people", 1))
}

func TestSetOwnerRefusesOwnedImage(t *testing.T) {
	repo, db := newImageTestRepo(t)

	image := &models.Image{Filename: "a.png", StoredPath: "uploads/a.png", URL: "u"}
	require.NoError(t, repo.Create(image))
	require.NoError(t, repo.SetOwner(image.ID, "people", 1))

	err := repo.SetOwner(image.ID, "people", 2)
	require.ErrorIs(t, err, ErrImageOwned)

	err = repo.SetOwner(image.ID, "planets", 1)
	require.ErrorIs(t, err, ErrImageOwned)

	var stored models.Image
	require.NoError(t, db.First(&stored, image.ID).Error)
	assert.Equal(t, "people", stored.OwnerType)
	assert.Equal(t, uint(1), stored.OwnerID)
}

func TestSetOwnerMissingImage(t *testing.T) {
	repo, _ := newImageTestRepo(t)

	err := repo.SetOwner(42, "people", 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
