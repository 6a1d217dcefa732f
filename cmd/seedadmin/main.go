package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"

	"github.com/caresync/hms-api/internal/config"
	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	"github.com/caresync/hms-api/internal/repository/postgres"
	"github.com/caresync/hms-api/pkg/logger"
	"github.com/caresync/hms-api/pkg/security"
)

// seedadmin bootstraps the first administrator account. Idempotent: if
// any administrator already exists it exits cleanly, regardless of the
// configured email, so it is safe to run on every deploy.
type seedConfig struct {
	Email    string `envconfig:"ADMIN_EMAIL" required:"true"`
	Password string `envconfig:"ADMIN_PASSWORD" required:"true"`
	FullName string `envconfig:"ADMIN_NAME" default:"Administrator"`
}

func main() {
	var seed seedConfig
	if err := envconfig.Process("", &seed); err != nil {
		fmt.Fprintf(os.Stderr, "invalid seed environment: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	profileRepo := postgres.NewProfileRepository(db)

	needed, err := seedNeeded(ctx, profileRepo)
	if err != nil {
		log.Fatal(err, "failed to check for existing admin")
	}
	if !needed {
		log.Info("an admin already exists, nothing to do")
		return
	}

	hasher := security.NewBcryptHasher(0)
	hash, err := hasher.Hash(seed.Password)
	if err != nil {
		log.Fatal(err, "failed to hash admin password")
	}

	admin := &model.Profile{
		Base:         model.Base{ID: uuid.New()},
		Email:        seed.Email,
		PasswordHash: hash,
		FullName:     seed.FullName,
		Role:         model.RoleAdmin,
	}
	if err := profileRepo.Create(ctx, admin); err != nil {
		log.Fatal(err, "failed to create admin")
	}

	log.Info("admin created", "profile_id", admin.ID.String(), "email", admin.Email)
}

// seedNeeded reports whether an administrator account must be created.
// The count covers every admin, not just the configured email, so a
// changed ADMIN_EMAIL never mints a second one.
func seedNeeded(ctx context.Context, profiles repository.ProfileRepository) (bool, error) {
	count, err := profiles.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
