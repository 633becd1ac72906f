package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/models"
	"github.com/quraniq/quraniq-api/internal/repository"
)

func setupInquiryService(t *testing.T) (InquiryService, *miniredis.Miniredis) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Inquiry{}))

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	svc := NewInquiryService(
		repository.NewInquiryRepository(db),
		cache,
		time.Minute,
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
	return svc, mr
}

func TestInquiryServiceCreateAndList(t *testing.T) {
	svc, _ := setupInquiryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, dto.InquiryCreateRequest{
		Title:   "  <b>on patience</b>  ",
		Content: "a saved reflection",
	})
	require.NoError(t, err)
	require.Equal(t, "on patience", created.Title)
	require.NotEmpty(t, created.ID)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, created.ID, list[0].ID)
}

func TestInquiryServiceListUsesCache(t *testing.T) {
	svc, mr := setupInquiryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, dto.InquiryCreateRequest{Title: "first", Content: "c"})
	require.NoError(t, err)

	_, err = svc.List(ctx, 1)
	require.NoError(t, err)
	require.True(t, mr.Exists("inquiries:user:1"))

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestInquiryServiceCreateInvalidatesCache(t *testing.T) {
	svc, mr := setupInquiryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, dto.InquiryCreateRequest{Title: "first", Content: "c"})
	require.NoError(t, err)
	_, err = svc.List(ctx, 1)
	require.NoError(t, err)
	require.True(t, mr.Exists("inquiries:user:1"))

	_, err = svc.Create(ctx, 1, dto.InquiryCreateRequest{Title: "second", Content: "c"})
	require.NoError(t, err)
	require.False(t, mr.Exists("inquiries:user:1"))

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestInquiryServiceDeleteScopedToOwner(t *testing.T) {
	svc, _ := setupInquiryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, dto.InquiryCreateRequest{Title: "mine", Content: "c"})
	require.NoError(t, err)

	err = svc.Delete(ctx, 2, created.ID)
	require.ErrorIs(t, err, ErrInquiryNotFound)

	err = svc.Delete(ctx, 1, created.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, 1, created.ID)
	require.ErrorIs(t, err, ErrInquiryNotFound)
}

func TestInquiryServiceCreateValidation(t *testing.T) {
	svc, _ := setupInquiryService(t)

	_, err := svc.Create(context.Background(), 1, dto.InquiryCreateRequest{Title: "x", Content: ""})
	require.Error(t, err)
	_, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
}
