package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-console/transport/console"
	"golang.org/x/exp/rand"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	firstMover, ok := entity.ParseSide(conf.Match.FirstMover)
	if !ok {
		return fmt.Errorf("unknown first mover %q", conf.Match.FirstMover)
	}

	matchRepo, closeStorage, err := newMatchRepository(ctx, log, &conf.Redis)
	if err != nil {
		return err
	}
	defer closeStorage()

	ui := console.New(logger, os.Stdin, os.Stdout, consoleOptions(&conf.Console)...)
	defer ui.Close()

	seed := conf.Match.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debug("computer random source seeded", "seed", seed)

	newController := newControllerFactory(ui, tictactoe.NewComputerStrategy(rand.New(rand.NewSource(seed))),
		tictactoe.WithPointsForMatch(conf.Match.PointsToWin),
		tictactoe.WithFirstMover(firstMover),
	)

	manager := usecase.NewMatchManager(logger, ui, matchRepo, newController)
	if err = manager.Run(ctx); err != nil {
		return fmt.Errorf("game failed: %w", err)
	}

	return nil
}

// newMatchRepository picks where match snapshots go. Without redis they stay in process.
func newMatchRepository(ctx context.Context, log *slog.Logger, conf *config.Redis) (repository.MatchRepository, func(), error) {
	if !conf.Enabled {
		return repository.NewMemoryMatchRepository(), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	log.Info("match snapshots are published to redis", "addr", conf.GetRedisAddr(), "ttl", conf.SnapshotTTL)

	return repository.NewMatchRepository(redisStorage, conf.SnapshotTTL), closeStorage, nil
}

func consoleOptions(conf *config.Console) []console.Option {
	options := []console.Option{console.WithPlayerName(conf.PlayerName)}
	if conf.DisableColor {
		options = append(options, console.WithoutColor())
	}
	if conf.DisableClear {
		options = append(options, console.WithoutClear())
	}
	return options
}

// newControllerFactory seats the human as X and the computer as O in every new match.
func newControllerFactory(human, computer tictactoe.Strategy, options ...tictactoe.Option) usecase.ControllerFactory {
	return func(matchID string) (*tictactoe.GameController, error) {
		matchOptions := append([]tictactoe.Option{tictactoe.WithMatchID(matchID)}, options...)

		return tictactoe.NewGameController(
			tictactoe.NewPlayer(entity.SideHuman, entity.PlayerX, human),
			tictactoe.NewPlayer(entity.SideComputer, entity.PlayerO, computer),
			matchOptions...,
		)
	}
}
