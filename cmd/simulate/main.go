// Command simulate runs headless AI-vs-AI matches: it loads the card
// catalog and two deck lists, plays a configurable number of seeded
// matches, verifies that replaying each recorded action log reproduces an
// identical state, and optionally archives results to Postgres.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cinetcg/cinetcg-go/internal/ai"
	"github.com/cinetcg/cinetcg-go/internal/catalog"
	"github.com/cinetcg/cinetcg-go/internal/config"
	"github.com/cinetcg/cinetcg-go/internal/match"
	"github.com/cinetcg/cinetcg-go/internal/repository"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	matches    = flag.Int("matches", 0, "number of matches to run (overrides config)")
	seed       = flag.Int64("seed", 0, "base seed (overrides config)")
	difficulty = flag.Int("difficulty", -1, "AI difficulty 0-2 for both players (overrides config)")
	version    = "dev" // set via ldflags during build
)

// maxTurnsPerMatch aborts degenerate stalemates (both decks empty, neither
// AI able to deal lethal damage).
const maxTurnsPerMatch = 500

// recentArchiveRows bounds the end-of-run archive report.
const recentArchiveRows = 10

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *matches > 0 {
		cfg.Simulator.Matches = *matches
	}
	if *seed != 0 {
		cfg.Simulator.Seed = *seed
	}
	if *difficulty >= 0 && *difficulty <= 2 {
		cfg.Simulator.Difficulty0 = *difficulty
		cfg.Simulator.Difficulty1 = *difficulty
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting simulator",
		zap.String("version", version),
		zap.Int("matches", cfg.Simulator.Matches),
		zap.Int64("base_seed", cfg.Simulator.Seed),
	)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	cat, err := catalog.Load(cfg.Simulator.CardsFile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		zap.String("file", cfg.Simulator.CardsFile),
		zap.Int("cards", cat.Len()),
	)

	if len(cfg.Simulator.DeckFiles) != 2 {
		return fmt.Errorf("simulator.deck_files must name exactly 2 decks, got %d", len(cfg.Simulator.DeckFiles))
	}
	decks := make([][]string, 2)
	for i, path := range cfg.Simulator.DeckFiles {
		list, err := catalog.LoadDeck(path)
		if err != nil {
			return fmt.Errorf("load deck %d: %w", i, err)
		}
		decks[i] = list.CardIDs()
		logger.Info("deck loaded",
			zap.Int("player", i),
			zap.String("name", list.Name),
			zap.Int("cards", len(decks[i])),
		)
	}

	ctx := context.Background()
	var matchRepo *repository.MatchRepository
	if cfg.Database.DSN != "" {
		db, err := repository.NewDB(ctx, cfg.Database.DSN, logger)
		if err != nil {
			return fmt.Errorf("connect match archive: %w", err)
		}
		defer db.Close()
		matchRepo = repository.NewMatchRepository(db)
		if err := matchRepo.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	rules := cfg.MatchRules()
	agents := [2]*ai.Agent{
		ai.New(ai.Difficulty(cfg.Simulator.Difficulty0), logger),
		ai.New(ai.Difficulty(cfg.Simulator.Difficulty1), logger),
	}

	wins := [2]int{}
	draws := 0
	for i := 0; i < cfg.Simulator.Matches; i++ {
		matchSeed := cfg.Simulator.Seed + int64(i)
		started := time.Now()

		st, err := match.NewMatch(cat, decks[0], decks[1], matchSeed, rules)
		if err != nil {
			return fmt.Errorf("match %d: %w", i, err)
		}
		st.SetLogger(logger)

		turns := 0
		for !st.Ended() && turns < maxTurnsPerMatch {
			agents[st.CurrentPlayer].TakeTurn(st, st.CurrentPlayer)
			turns++
		}
		if !st.Ended() {
			draws++
			logger.Warn("match aborted as stalemate",
				zap.String("match_id", st.ID),
				zap.Int64("seed", matchSeed),
				zap.Int("turns", turns),
			)
			continue
		}
		wins[st.Winner]++

		snap := match.TakeSnapshot(st)
		replayed, err := match.Replay(cat, decks[0], decks[1], matchSeed, st.ActionLog, rules)
		if err != nil {
			return fmt.Errorf("match %d replay: %w", i, err)
		}
		if !snap.Equal(match.TakeSnapshot(replayed)) {
			return fmt.Errorf("match %d (seed %d): replay diverged from recorded state", i, matchSeed)
		}

		logger.Info("match finished",
			zap.String("match_id", st.ID),
			zap.Int64("seed", matchSeed),
			zap.Int("winner", st.Winner),
			zap.Int("turns", turns),
			zap.Int("actions", len(st.ActionLog)),
			zap.Duration("duration", time.Since(started)),
		)

		if matchRepo != nil {
			rec := repository.MatchRecord{
				ID:          st.ID,
				Seed:        matchSeed,
				Winner:      st.Winner,
				Turns:       turns,
				Actions:     len(st.ActionLog),
				Checksum:    snap.Checksum(),
				Duration:    time.Since(started),
				CompletedAt: time.Now().UTC(),
			}
			if err := matchRepo.Save(ctx, rec); err != nil {
				logger.Error("failed to archive match", zap.Error(err))
			}
		}
	}

	logger.Info("simulation complete",
		zap.Int("matches", cfg.Simulator.Matches),
		zap.Int("player0_wins", wins[0]),
		zap.Int("player1_wins", wins[1]),
		zap.Int("stalemates", draws),
	)

	if matchRepo != nil {
		recent, err := matchRepo.Recent(ctx, recentArchiveRows)
		if err != nil {
			logger.Error("failed to read match archive", zap.Error(err))
			return nil
		}
		for _, rec := range recent {
			logger.Info("archived match",
				zap.String("match_id", rec.ID),
				zap.Int64("seed", rec.Seed),
				zap.Int("winner", rec.Winner),
				zap.Int("turns", rec.Turns),
				zap.String("checksum", rec.Checksum),
				zap.Time("completed_at", rec.CompletedAt),
			)
		}
	}
	return nil
}

// initLogger initializes the zap logger based on configuration.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
