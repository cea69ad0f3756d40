package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-cli/internal/config"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-cli/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-cli/transport/cli"
)

const localSessionID = "local"

// RunApp - runs the game on stdin/stdout until the user quits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	return Run(context.Background(), logger, conf, os.Stdin, os.Stdout)
}

func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var matchRepo repository.MatchRepository

	sessionID := conf.SessionID

	if conf.Redis.Enabled {
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		matchRepo = repository.NewMatchRepository(redisStorage, conf.Redis.MatchTTL)

		if sessionID == "" {
			sessionID = uuid.NewString()
		}
	}

	if sessionID == "" {
		sessionID = localSessionID
	}

	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log.Info("starting game", "session", sessionID, "seed", seed, "persistent", matchRepo != nil)

	game := tictactoe.NewGame(rand.New(rand.NewSource(seed))) //nolint: gosec // game moves, not secrets

	matchManager := usecase.NewMatchManager(logger, game, matchRepo, sessionID)

	if err := cli.New(logger, matchManager, in, out).Start(ctx); err != nil {
		return fmt.Errorf("cli session failed: %w", err)
	}

	log.Info("game stopped")

	return nil
}
