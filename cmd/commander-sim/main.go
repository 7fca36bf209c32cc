package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/magefree/commander-go/internal/config"
	"github.com/magefree/commander-go/internal/deck"
	"github.com/magefree/commander-go/internal/game"
	"github.com/magefree/commander-go/internal/sim"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "path to configuration file")
	games      = flag.Int("games", 0, "number of games to play (overrides sim.games)")
	seed       = flag.Uint64("seed", 0, "base shuffle seed (overrides sim.seed)")
	verbose    = flag.Bool("verbose", false, "narrate every game action at info level")
	replayPath = flag.String("replay", "", "print the turn-by-turn life totals of a saved replay and exit")
	checksum   = flag.String("checksum", "", "with -replay, verify the final state against this checksum")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *games > 0 {
		cfg.Sim.Games = *games
	}
	if *seed > 0 {
		cfg.Sim.Seed = *seed
	}
	if *verbose {
		cfg.Sim.Verbose = true
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *replayPath != "" {
		if err := showReplay(logger, *replayPath, *checksum); err != nil {
			logger.Fatal("failed to read replay", zap.Error(err))
		}
		return
	}

	logger.Info("starting commander simulator",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.Int("games", cfg.Sim.Games),
		zap.Uint64("seed", cfg.Sim.Seed),
	)

	decks, err := selectDecks(cfg.Sim)
	if err != nil {
		logger.Fatal("failed to load decks", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := sim.Options{
		Rules:         cfg.Game.Rules(),
		MaxTurns:      cfg.Game.MaxTurns,
		ValidateDecks: cfg.Game.ValidateDecks,
		Verbose:       cfg.Sim.Verbose,
		ReplayDir:     cfg.Sim.ReplayDir,
		Logger:        logger,
	}
	newPlayers := func(int) ([]*game.Player, error) {
		players := make([]*game.Player, 0, len(decks))
		for _, d := range decks {
			p, err := d.NewPlayer(d.Name)
			if err != nil {
				return nil, err
			}
			players = append(players, p)
		}
		return players, nil
	}

	results, err := sim.Run(ctx, cfg.Sim.Games, cfg.Sim.Seed, cfg.Sim.Workers, newPlayers, opts)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	summary := sim.Summarize(results)
	names := make([]string, 0, len(summary.Wins))
	for name := range summary.Wins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.Info("wins", zap.String("deck", name), zap.Int("games", summary.Wins[name]))
	}
	logger.Info("simulation finished",
		zap.Int("games", summary.Games),
		zap.Int("draws", summary.Draws),
		zap.Float64("avg_turns", summary.AvgTurns),
		zap.Float64("avg_spells_cast", summary.AvgSpellsCast),
		zap.Float64("avg_commander_casts", summary.AvgCommanderCasts),
		zap.Float64("avg_creatures_died", summary.AvgCreaturesDied),
		zap.Int("max_life_lost_in_turn", summary.MaxLifeLostInTurn),
	)
}

// showReplay logs every recorded state of a replay file.
func showReplay(logger *zap.Logger, path, want string) error {
	replay, err := game.LoadReplay(path)
	if err != nil {
		return err
	}
	for i := 0; i < replay.Size(); i++ {
		s := replay.At(i)
		fields := []zap.Field{zap.Int("turn", s.Turn), zap.Int("active", s.Active), zap.String("phase", s.Phase)}
		for _, p := range s.Players {
			if p.HasLost {
				fields = append(fields, zap.String(p.Name, "lost: "+p.LossReason))
				continue
			}
			fields = append(fields, zap.Int(p.Name, p.Life))
		}
		logger.Info("state", fields...)
	}
	if want == "" {
		return nil
	}
	if err := replay.Verify(want); err != nil {
		return err
	}
	logger.Info("replay verified", zap.String("game_id", replay.GameID), zap.String("checksum", want))
	return nil
}

// selectDecks loads the deck file and picks the configured decks, or every
// deck in the file when none are named.
func selectDecks(cfg config.SimConfig) ([]deck.Deck, error) {
	f, err := deck.Load(cfg.DecksFile)
	if err != nil {
		return nil, err
	}
	if len(cfg.Decks) == 0 {
		return f.Decks, nil
	}
	out := make([]deck.Deck, 0, len(cfg.Decks))
	for _, name := range cfg.Decks {
		d, err := f.Find(name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// initLogger initializes the zap logger based on configuration
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
