// Package sim plays Commander games to completion with a simple auto-pilot,
// one game or many in parallel.
package sim

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/magefree/commander-go/internal/game"
	"github.com/magefree/commander-go/internal/game/rules"
	"github.com/magefree/commander-go/internal/game/watchers"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxTurns ends a game as a draw when nobody has won by then.
const DefaultMaxTurns = 100

// Options configures every simulated game.
type Options struct {
	Rules         game.Rules
	MaxTurns      int
	ValidateDecks bool
	Verbose       bool
	ReplayDir     string
	Logger        *zap.Logger
}

// DefaultOptions returns the default rules with the default turn limit.
func DefaultOptions() Options {
	return Options{
		Rules:    game.DefaultRules(),
		MaxTurns: DefaultMaxTurns,
	}
}

// Elimination records when and why a seat lost.
type Elimination struct {
	Seat   int
	Name   string
	Reason string
	Turn   int
}

// Result is the outcome of one game.
type Result struct {
	Index        int
	GameID       string
	Seed         uint64
	Winner       int // rules.NoPlayer on a draw
	WinnerName   string
	Turns        int
	Draw         bool
	Eliminations []Elimination
	Checksum     string
	ReplayPath   string
	Stats        Stats
}

// Stats are the per-game counts read from the game's watchers.
type Stats struct {
	SpellsCast     int
	CommanderCasts int
	CreaturesDied  int
	CardsDrawn     int
	// MaxLifeLostInTurn is the most life any one player lost in a single turn.
	MaxLifeLostInTurn int
}

func (s *Stats) endTurn(g *game.Game) {
	lost, ok := g.Watchers().GetWatcher("LifeLostWatcher").(*watchers.LifeLostWatcher)
	if !ok {
		return
	}
	for _, p := range g.Players {
		s.MaxLifeLostInTurn = max(s.MaxLifeLostInTurn, lost.GetLifeLost(p.Index))
	}
}

func (s *Stats) endGame(g *game.Game) {
	reg := g.Watchers()
	if w, ok := reg.GetWatcher("SpellsCastWatcher").(*watchers.SpellsCastWatcher); ok {
		s.SpellsCast = w.Total()
	}
	if w, ok := reg.GetWatcher("CommanderCastWatcher").(*watchers.CommanderCastWatcher); ok {
		s.CommanderCasts = w.Total()
	}
	if w, ok := reg.GetWatcher("CreaturesDiedWatcher").(*watchers.CreaturesDiedWatcher); ok {
		s.CreaturesDied = w.GetTotalAmount()
	}
	if w, ok := reg.GetWatcher("CardsDrawnWatcher").(*watchers.CardsDrawnWatcher); ok {
		s.CardsDrawn = w.Total()
	}
}

// PlayerFactory builds fresh players for the i-th game of a batch.
type PlayerFactory func(i int) ([]*game.Player, error)

// Play runs a single game with decks shuffled from seed until one player is
// left or the turn limit is reached. Zero rules mean the default rules.
func Play(ctx context.Context, players []*game.Player, seed uint64, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxTurns := opts.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	gameRules := opts.Rules
	if gameRules == (game.Rules{}) {
		gameRules = game.DefaultRules()
	}
	gameOpts := []game.Option{
		game.WithRules(gameRules),
		game.WithShuffler(rand.New(rand.NewPCG(seed, seed))),
	}
	if opts.ValidateDecks {
		gameOpts = append(gameOpts, game.WithDeckValidation())
	}
	g, err := game.NewGame(players, append(gameOpts, game.WithLogger(logger))...)
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("game_id", g.ID.String()), zap.Uint64("seed", seed))

	res := &Result{GameID: g.ID.String(), Seed: seed, Winner: rules.NoPlayer}
	g.Events().SubscribeTyped(rules.EventPlayerLost, func(e rules.Event) {
		res.Eliminations = append(res.Eliminations, Elimination{
			Seat:   e.Player,
			Name:   g.Players[e.Player].Name,
			Reason: e.SourceName,
			Turn:   e.Turn,
		})
	})

	var replay *game.Replay
	if opts.ReplayDir != "" {
		replay = game.NewReplay(g.ID.String())
		replay.RecordTurns(g)
	}

	if err := g.Start(opts.Verbose); err != nil {
		return nil, err
	}
	p := &pilot{g: g, verbose: opts.Verbose, logger: logger}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := playTurn(g, p); err != nil {
			return nil, fmt.Errorf("turn %d: %w", g.TurnNumber(), err)
		}
		res.Stats.endTurn(g)
		if g.IsOver() || g.TurnNumber() >= maxTurns {
			break
		}
		g.StartNewTurn(opts.Verbose)
	}

	res.Turns = g.TurnNumber()
	if w, ok := g.Winner(); ok && g.IsOver() {
		res.Winner = w.Index
		res.WinnerName = w.Name
	} else {
		res.Draw = true
	}

	res.Stats.endGame(g)

	final := g.Snapshot()
	if res.Checksum, err = final.Checksum(); err != nil {
		return nil, err
	}
	if replay != nil {
		replay.RecordState(final)
		if res.ReplayPath, err = replay.Save(opts.ReplayDir); err != nil {
			return nil, fmt.Errorf("save replay: %w", err)
		}
	}

	logger.Info("game finished",
		zap.String("winner", res.WinnerName),
		zap.Bool("draw", res.Draw),
		zap.Int("turns", res.Turns),
		zap.Int("commander_casts", res.Stats.CommanderCasts),
		zap.Int("creatures_died", res.Stats.CreaturesDied),
		zap.String("checksum", res.Checksum),
		zap.String("replay", res.ReplayPath),
	)
	return res, nil
}

// playTurn walks the active player through every phase of the current turn.
func playTurn(g *game.Game, p *pilot) error {
	active := g.ActivePlayer()
	for {
		p.act()
		if g.IsOver() || active.HasLost || g.Phase() == rules.PhaseCleanup {
			return nil
		}
		if _, err := g.AdvancePhase(p.verbose); err != nil {
			return err
		}
	}
}

// Run plays n games on up to workers goroutines. Game i is shuffled from
// seed+i, so a batch is reproducible. Results are in game order.
func Run(ctx context.Context, n int, seed uint64, workers int, newPlayers PlayerFactory, opts Options) ([]*Result, error) {
	if workers <= 0 {
		workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]*Result, n)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			players, err := newPlayers(i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			gameOpts := opts
			gameOpts.Logger = logger.With(zap.Int("game", i))
			res, err := Play(ctx, players, seed+uint64(i), gameOpts)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			res.Index = i
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates a batch of results.
type Summary struct {
	Games    int
	Draws    int
	Wins     map[string]int
	AvgTurns float64

	AvgSpellsCast     float64
	AvgCommanderCasts float64
	AvgCreaturesDied  float64
	MaxLifeLostInTurn int
}

// Summarize counts wins per player name and draws, and averages the
// per-game stats.
func Summarize(results []*Result) Summary {
	s := Summary{Games: len(results), Wins: make(map[string]int)}
	var turns, spells, casts, died int
	for _, r := range results {
		turns += r.Turns
		spells += r.Stats.SpellsCast
		casts += r.Stats.CommanderCasts
		died += r.Stats.CreaturesDied
		s.MaxLifeLostInTurn = max(s.MaxLifeLostInTurn, r.Stats.MaxLifeLostInTurn)
		if r.Draw {
			s.Draws++
			continue
		}
		s.Wins[r.WinnerName]++
	}
	if n := float64(len(results)); n > 0 {
		s.AvgTurns = float64(turns) / n
		s.AvgSpellsCast = float64(spells) / n
		s.AvgCommanderCasts = float64(casts) / n
		s.AvgCreaturesDied = float64(died) / n
	}
	return s
}
