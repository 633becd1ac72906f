package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quraniq/quraniq-api/internal/dto"
	"github.com/quraniq/quraniq-api/internal/models"
	"github.com/quraniq/quraniq-api/internal/repository"
)

func setupAuthService(t *testing.T) AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return NewAuthService(
		repository.NewUserRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
		AuthConfig{JWTSecret: "test-secret", JWTExpiry: time.Hour},
	)
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{
		Name:     "Aisha",
		Email:    "Aisha@Example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	require.Equal(t, "aisha@example.com", registered.User.Email)
	require.NotNil(t, registered.User.JourneyProgress)

	loggedIn, err := svc.Login(ctx, dto.LoginRequest{
		Email:    "aisha@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, loggedIn.Token)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	req := dto.RegisterRequest{Name: "Aisha", Email: "aisha@example.com", Password: "strong-password"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.ErrorIs(t, err, ErrEmailTaken)
}

// blindLookupUserRepo simulates a registration race: the duplicate
// pre-check sees nothing, so the insert itself hits the unique index.
type blindLookupUserRepo struct {
	repository.UserRepository
}

func (r *blindLookupUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return models.User{}, gorm.ErrRecordNotFound
}

func TestAuthServiceRegisterRaceMapsToConflict(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	svc := NewAuthService(
		&blindLookupUserRepo{UserRepository: repository.NewUserRepository(db)},
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
		AuthConfig{JWTSecret: "test-secret", JWTExpiry: time.Hour},
	)

	req := dto.RegisterRequest{Name: "Aisha", Email: "aisha@example.com", Password: "strong-password"}
	_, err = svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "Aisha", Email: "aisha@example.com", Password: "strong-password"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "aisha@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "strong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceVerifyRoundTrip(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{Name: "Aisha", Email: "aisha@example.com", Password: "strong-password"})
	require.NoError(t, err)

	user, err := svc.Verify(ctx, registered.Token)
	require.NoError(t, err)
	require.Equal(t, "aisha@example.com", user.Email)
	require.Equal(t, "Aisha", user.Name)
}

func TestAuthServiceVerifyRejectsGarbage(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Verify(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceVerifyRejectsWrongSecret(t *testing.T) {
	issuer := setupAuthService(t)

	registered, err := issuer.Register(context.Background(), dto.RegisterRequest{
		Name: "Aisha", Email: "aisha@example.com", Password: "strong-password",
	})
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	other := NewAuthService(
		repository.NewUserRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
		AuthConfig{JWTSecret: "different-secret", JWTExpiry: time.Hour},
	)

	_, err = other.Verify(context.Background(), registered.Token)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
