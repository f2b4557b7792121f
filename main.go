package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	api "taskhub-backend/cmd/api"
	authRepo "taskhub-backend/internal/auth/repository"
	"taskhub-backend/internal/auth/token"
	authUsecase "taskhub-backend/internal/auth/usecase"
	taskRepo "taskhub-backend/internal/task/repository"
	taskUsecase "taskhub-backend/internal/task/usecase"
	userUsecase "taskhub-backend/internal/user/usecase"
	"taskhub-backend/pkg/config"
	"taskhub-backend/pkg/database"
	"taskhub-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories (dependency injection)
	var (
		userRepository authRepo.UserRepository
		taskRepository taskRepo.TaskRepository
		ownedTasks     userUsecase.OwnedTasks
	)
	switch strings.ToLower(cfg.Storage) {
	case config.StorageMemory:
		log.Warn().Msg("using in-memory storage, data is lost on exit")
		userRepository = authRepo.NewMemoryUserRepository()
		taskRepository = taskRepo.NewMemoryTaskRepository()
		ownedTasks = taskRepository
	default:
		db, err := database.NewPostgresConnection(ctx, cfg.Postgres, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		if cfg.Postgres.Migrate {
			if err := database.Migrate(ctx, db, log); err != nil {
				log.Fatal().Err(err).Msg("failed to migrate database")
			}
		}
		userRepository = authRepo.NewUserRepository(db)
		// tasks.user_id is ON DELETE CASCADE
		taskRepository = taskRepo.NewGormTaskRepository(db)
	}

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	// Initialize use cases (dependency injection)
	usecases := api.Usecases{
		Auth:  authUsecase.NewAuthUsecase(userRepository, tokens, log),
		Users: userUsecase.NewUserUsecase(userRepository, ownedTasks, log),
		Tasks: taskUsecase.NewTaskUsecase(taskRepository, log),
	}

	handler := api.NewHandler(usecases, cfg, log)
	if err := handler.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
