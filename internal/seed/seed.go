package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/deniz/coursehub/internal/app/models"
	appRepos "github.com/deniz/coursehub/internal/app/repositories"
	"github.com/deniz/coursehub/internal/pkg/apperrors"
	"github.com/deniz/coursehub/internal/pkg/auth"
)

const (
	defaultAdminEmail = "admin@coursehub.app"
	defaultAdminName  = "Administrator"
)

// CreateDefaultAdmin ensures at least one admin account exists so the API is
// usable on a fresh database. The password comes from ADMIN_PASSWORD; no
// account is created when it is unset.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		lgr.Warn().Msg("ADMIN_PASSWORD not set, skipping default admin creation")
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	existing, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		lgr.Debug().Str("email", email).Msg("Default admin already present")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Name:     defaultAdminName,
		Email:    email,
		Password: hashed,
		Role:     appModels.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		// A concurrent boot may have won the race; that is fine.
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("email", email).Int64("userId", admin.ID).Msg("Default admin created")
	return nil
}
