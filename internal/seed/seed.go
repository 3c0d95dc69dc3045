package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ezypuz/courseplanner/internal/app/models"
	"github.com/ezypuz/courseplanner/internal/app/repositories"
	"github.com/ezypuz/courseplanner/internal/pkg/apperrors"
	"github.com/ezypuz/courseplanner/internal/pkg/auth"
)

// defaultBoards are created on first startup so posting works without any
// admin action.
var defaultBoards = []string{"general", "course-reviews"}

// CreateDefaultData creates the default boards and the initial admin account
// if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	boardRepo := repositories.NewBoardRepository(dbPool)
	userRepo := repositories.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/creating default data")
	var finalErr error

	for _, name := range defaultBoards {
		board := &models.Board{Name: name}
		if _, err := boardRepo.Create(ctx, board); err != nil {
			if errors.Is(err, apperrors.ErrBoardNameTaken) {
				continue
			}
			lgr.Error().Err(err).Str("board", name).Msg("Error creating default board")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Str("board", name).Msg("Default board created")
		}
	}

	exists, err := userRepo.UsernameExists(ctx, "admin")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return finalErr
	}

	lgr.Info().Msg("Creating default admin user")
	hashedPassword, err := auth.HashPassword("Admin123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &models.User{
		Username: "admin",
		Password: hashedPassword,
		IsAdmin:  true,
	}
	adminID, err := userRepo.Create(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created")
	return finalErr
}
