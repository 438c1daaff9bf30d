package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenbird/cookbook-backend/internal/models"
)

func TestSetupSQLiteDatabase(t *testing.T) {
	db := SetupSQLiteDatabase(t)

	require.NoError(t, db.Create(&models.Cuisine{Name: "Italian"}).Error)

	var count int64
	require.NoError(t, db.Model(&models.Cuisine{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetupTestDatabase(t *testing.T) {
	db := SetupTestDatabase(t)

	cuisine := models.Cuisine{Name: "Japanese"}
	require.NoError(t, db.Create(&cuisine).Error)

	var loaded models.Cuisine
	require.NoError(t, db.First(&loaded, cuisine.ID).Error)
	assert.Equal(t, "Japanese", loaded.Name)
}
