package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/ieeespac/spac_site/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&domain.Registration{}))
	return db
}

func TestRegistrationRepositoryCreateAndFind(t *testing.T) {
	repo := NewRegistrationRepository(openTestDB(t))
	ctx := context.Background()

	url := "https://files.example.com/resumes/ada.pdf"
	reg := &domain.Registration{
		PublicID:   "5f0c7c9e-0000-4000-8000-000000000001",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		University: "X",
		Program:    "CS",
		ResumeURL:  &url,
	}
	require.NoError(t, repo.Create(ctx, reg))
	assert.NotZero(t, reg.ID)

	found, err := repo.FindByPublicID(ctx, reg.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.FirstName)
	require.NotNil(t, found.ResumeURL)
	assert.Equal(t, url, *found.ResumeURL)

	_, err = repo.FindByPublicID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRegistrationRepositoryDuplicatePublicID(t *testing.T) {
	repo := NewRegistrationRepository(openTestDB(t))
	ctx := context.Background()

	first := &domain.Registration{PublicID: "dup", FirstName: "A", LastName: "B", Email: "a@b.c", University: "U", Program: "P"}
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.Registration{PublicID: "dup", FirstName: "C", LastName: "D", Email: "c@d.e", University: "U", Program: "P"}
	assert.Error(t, repo.Create(ctx, second))
}

func TestRegistrationRepositoryListAndCount(t *testing.T) {
	repo := NewRegistrationRepository(openTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Registration{
			PublicID:   fmt.Sprintf("id-%d", i),
			FirstName:  fmt.Sprintf("First%d", i),
			LastName:   "Last",
			Email:      fmt.Sprintf("user%d@example.com", i),
			University: "U",
			Program:    "P",
		}))
	}

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	page, err := repo.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "id-1", page[0].PublicID)
	assert.Equal(t, "id-2", page[1].PublicID)
}
