package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"advisor_backend/internal/feature/transform/domain/entity"
	"advisor_backend/internal/feature/transform/usecase"
	usecasegenentity "advisor_backend/internal/feature/usecasegen/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(&SessionModel{}), "failed to migrate test database")
	return db
}

func newSession(id, company string, createdAt time.Time) *entity.Session {
	return &entity.Session{
		SessionID:   id,
		CompanyName: company,
		CompanyURL:  "https://" + id + ".example",
		UseCases:    []usecasegenentity.UseCase{{ID: "uc-1", Title: "Smart Support"}},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestSessionGorm_SaveAndFind(t *testing.T) {
	t.Parallel()

	repo := NewSessionGorm(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Save(ctx, newSession("s1", "Acme", now)))

	got, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, []string{"uc-1"}, got.UseCaseIDs())
	assert.True(t, now.Equal(got.CreatedAt))
}

func TestSessionGorm_FindNotFound(t *testing.T) {
	t.Parallel()

	repo := NewSessionGorm(setupTestDB(t))

	got, err := repo.Find(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_SaveUpdatesExisting(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSessionGorm(db)
	ctx := context.Background()
	created := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)

	s := newSession("s1", "Acme", created)
	require.NoError(t, repo.Save(ctx, s))

	s.SelectedUseCaseIDs = []string{"uc-1"}
	s.ReportURL = "https://reports.example/s1.pdf"
	s.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, s))

	var count int64
	require.NoError(t, db.Model(&SessionModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"uc-1"}, got.SelectedUseCaseIDs)
	assert.Equal(t, "https://reports.example/s1.pdf", got.ReportURL)

	var model SessionModel
	require.NoError(t, db.First(&model, "session_id = ?", "s1").Error)
	assert.Equal(t, "https://reports.example/s1.pdf", model.ReportURL)
	assert.True(t, created.Equal(model.CreatedAt.UTC()))
}

func TestSessionGorm_FindByCompany(t *testing.T) {
	t.Parallel()

	repo := NewSessionGorm(setupTestDB(t))
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Save(ctx, newSession("old", "Acme", base.Add(-2*time.Hour))))
	require.NoError(t, repo.Save(ctx, newSession("new", "ACME ", base)))
	require.NoError(t, repo.Save(ctx, newSession("mid", "acme", base.Add(-time.Hour))))
	require.NoError(t, repo.Save(ctx, newSession("other", "Globex", base)))

	testCases := []struct {
		name        string
		company     string
		expectedIDs []string
	}{
		{name: "case-insensitive, newest first", company: "Acme", expectedIDs: []string{"new", "mid", "old"}},
		{name: "surrounding spaces ignored", company: "  globex ", expectedIDs: []string{"other"}},
		{name: "no sessions", company: "Initech", expectedIDs: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.FindByCompany(ctx, tc.company)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.SessionID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}
