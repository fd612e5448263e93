// internal/sim/runner.go
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/obrien-tchaleu/crossludo/internal/client/animation"
	"github.com/obrien-tchaleu/crossludo/internal/config"
	"github.com/obrien-tchaleu/crossludo/internal/game"
	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
	"github.com/obrien-tchaleu/crossludo/internal/spectate"
)

// ErrTickLimit est retourné quand une partie dépasse simulation.max_ticks
var ErrTickLimit = errors.New("tick limit reached")

// Result décrit une partie simulée
type Result struct {
	GameID   string        `json:"game_id"`
	Winner   models.Player `json:"winner"`
	Ticks    int           `json:"ticks"`
	Turns    int           `json:"turns"`
	Captures int           `json:"captures"`
}

// Summary agrège une série de parties
type Summary struct {
	Games       int                           `json:"games"`
	Unfinished  int                           `json:"unfinished"`
	Wins        map[models.Player]int         `json:"wins"`
	MeanTurns   float64                       `json:"mean_turns"`
	StdDevTurns float64                       `json:"stddev_turns"`
	MinTurns    float64                       `json:"min_turns"`
	MaxTurns    float64                       `json:"max_turns"`
	Stats       map[models.Player]PlayerStats `json:"stats"`
}

// Runner enchaîne des parties ordinateur contre ordinateur
type Runner struct {
	cfg       *config.Config
	log       *log.Logger
	layout    animation.Layout
	hub       *spectate.Hub
	events    spectate.Publisher
	stats     map[models.Player]*PlayerStats
	gameIndex int64
	mu        sync.Mutex
}

// NewRunner crée un simulateur ; les places humaines sont jouées par l'ordinateur
func NewRunner(cfg *config.Config, logger *log.Logger) *Runner {
	for i, c := range cfg.PlayerControllers() {
		if c == constants.ControllerHuman {
			logger.WithField("player", models.Player(i+1).String()).
				Warn("human seat played by the computer in simulation")
		}
	}

	return &Runner{
		cfg: cfg,
		log: logger,
		layout: animation.NewLayout(cfg.Game.BoardSize,
			float32(cfg.Animation.ScreenWidth), float32(cfg.Animation.ScreenHeight)),
		stats: newStats(),
	}
}

// AttachHub diffuse les parties aux spectateurs
func (r *Runner) AttachHub(h *spectate.Hub) {
	r.hub = h
}

// RecordEvents envoie chaque événement de partie à pub
func (r *Runner) RecordEvents(pub spectate.Publisher) {
	r.events = pub
}

func (r *Runner) nextSeed() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gameIndex++
	if r.cfg.Game.Seed == 0 {
		return 0
	}
	return r.cfg.Game.Seed + r.gameIndex - 1
}

// Play joue une partie complète
func (r *Runner) Play(ctx context.Context) (Result, error) {
	result := Result{GameID: uuid.NewString()}
	entry := r.log.WithField("game_id", result.GameID)

	callbacks := []game.EngineCallbacks{r.statsCallbacks(&result)}
	if r.hub != nil {
		callbacks = append(callbacks, r.hub.Callbacks(result.GameID))
	}
	if r.events != nil {
		callbacks = append(callbacks, spectate.EventCallbacks(result.GameID, r.events))
	}

	var controllers [constants.MaxPlayers]constants.Controller
	for i := range controllers {
		controllers[i] = constants.ControllerComputer
	}

	engine, err := game.NewEngine(game.Options{
		GameID:       result.GameID,
		BoardSize:    r.cfg.Game.BoardSize,
		Controllers:  controllers,
		Roller:       game.NewRandRoller(r.nextSeed()),
		AutoFinalize: r.cfg.Game.AutoFinalize,
		Logger:       entry,
		Callbacks:    mergeCallbacks(callbacks...),
	})
	if err != nil {
		return result, fmt.Errorf("failed to create engine: %w", err)
	}

	if r.hub != nil {
		r.hub.SetSource(func() (models.Snapshot, bool) { return engine.Snapshot(), true })
	}

	anim := animation.NewManager(r.layout, r.cfg.Animation.Speed)
	anim.OnFinish(engine.FinishAnimation)
	dt := 1 / float32(r.cfg.Animation.FrameRate)
	animating := false

	entry.Info("game started")
	for result.Ticks = 0; result.Ticks < r.cfg.Simulation.MaxTicks; result.Ticks++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := engine.Tick(); err != nil {
			return result, fmt.Errorf("tick %d: %w", result.Ticks, err)
		}

		switch engine.State() {
		case constants.StateWon:
			result.Winner = engine.Winner()
			r.recordResult(result)
			entry.WithFields(log.Fields{
				"winner": result.Winner.String(),
				"turns":  result.Turns,
				"ticks":  result.Ticks,
			}).Info("game finished")
			return result, nil
		case constants.StateAnimating:
			if r.cfg.Game.AutoFinalize {
				continue
			}
			if !animating {
				move, ok := engine.ActiveMove()
				if !ok {
					continue
				}
				anim.Start(move.From, move.To)
				animating = true
			}
			if anim.Update(dt) {
				animating = false
			}
		default:
			animating = false
		}
	}

	entry.WithField("ticks", result.Ticks).Warn("game abandoned")
	return result, fmt.Errorf("%w after %d ticks", ErrTickLimit, result.Ticks)
}

// Run joue n parties et agrège les résultats
func (r *Runner) Run(ctx context.Context, n int) (Summary, error) {
	summary := Summary{Wins: make(map[models.Player]int)}
	turns := make([]float64, 0, n)

	for i := 0; i < n; i++ {
		result, err := r.Play(ctx)
		switch {
		case errors.Is(err, ErrTickLimit):
			summary.Unfinished++
			continue
		case err != nil:
			return summary, err
		}
		summary.Games++
		summary.Wins[result.Winner]++
		turns = append(turns, float64(result.Turns))
	}

	if len(turns) > 0 {
		summary.MeanTurns, summary.StdDevTurns = stat.MeanStdDev(turns, nil)
		summary.MinTurns = floats.Min(turns)
		summary.MaxTurns = floats.Max(turns)
	}
	summary.Stats = r.Stats()
	return summary, nil
}

// Stats retourne une copie des statistiques cumulées
func (r *Runner) Stats() map[models.Player]PlayerStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[models.Player]PlayerStats, len(r.stats))
	for p, s := range r.stats {
		out[p] = *s
	}
	return out
}

func (r *Runner) recordResult(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for p, s := range r.stats {
		s.recordGame(p == result.Winner)
	}
}

func (r *Runner) statsCallbacks(result *Result) game.EngineCallbacks {
	return game.EngineCallbacks{
		OnDiceRolled: func(player models.Player, value int, extraTurn bool) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.stats[player].TotalDiceRolls++
			if value == constants.RollForExtraTurn {
				r.stats[player].SixesRolled++
			}
		},
		OnPawnCaptured: func(capturer, victim models.Player, at, yard models.Position) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.stats[capturer].PawnsCaptured++
			r.stats[victim].PawnsLost++
			result.Captures++
		},
		OnTurnChanged: func(player models.Player) {
			result.Turns++
		},
	}
}
