package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
)

// SeedSuperAdmin makes sure the bootstrap super-admin account exists.
// Nothing happens when email or password is empty or the account is present.
func SeedSuperAdmin(ctx context.Context, svc Service, repo Repository, email, password string, logger *zap.Logger) error {
	if email == "" || password == "" {
		logger.Warn("SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD not set, skipping super-admin seed")
		return nil
	}

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFoundOrForbidden) {
		return err
	}

	p, err := svc.CreateProfile(ctx, CreateProfileInput{
		DisplayName:     "Super Admin",
		Email:           email,
		Password:        password,
		Role:            RoleSuperAdmin,
		PasswordChanged: true,
	})
	if err != nil {
		return err
	}
	logger.Info("super-admin seeded", zap.String("profile_id", p.ID))
	return nil
}
