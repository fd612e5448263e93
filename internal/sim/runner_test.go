package sim

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrien-tchaleu/crossludo/internal/config"
	"github.com/obrien-tchaleu/crossludo/internal/logging"
	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
	"github.com/obrien-tchaleu/crossludo/internal/shared/protocol"
)

type recorder struct {
	mu    sync.Mutex
	types []constants.MessageType
}

func (r *recorder) Publish(msg *protocol.NetworkMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, msg.Type)
}

func testConfig(seed int64) *config.Config {
	cfg := config.Default()
	cfg.Game.Seed = seed
	cfg.Game.AutoFinalize = true
	cfg.Simulation.MaxTicks = 2000000
	return cfg
}

func TestPlayFinishesGame(t *testing.T) {
	r := NewRunner(testConfig(42), logging.Discard())

	result, err := r.Play(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Winner.Valid())
	assert.NotEmpty(t, result.GameID)
	assert.Positive(t, result.Turns)
	assert.Positive(t, result.Ticks)

	stats := r.Stats()
	assert.Equal(t, 1, stats[result.Winner].GamesWon)
	assert.Equal(t, 1.0, stats[result.Winner].WinRate)
	for _, p := range models.AllPlayers {
		assert.Equal(t, 1, stats[p].TotalGames)
		assert.Positive(t, stats[p].TotalDiceRolls)
		assert.LessOrEqual(t, stats[p].SixesRolled, stats[p].TotalDiceRolls)
	}
}

func TestPlayWithAnimation(t *testing.T) {
	cfg := testConfig(7)
	cfg.Game.AutoFinalize = false
	cfg.Animation.Speed = 1e6

	result, err := NewRunner(cfg, logging.Discard()).Play(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Winner.Valid())
}

func TestPlayIsDeterministicForSeed(t *testing.T) {
	a, err := NewRunner(testConfig(99), logging.Discard()).Play(context.Background())
	require.NoError(t, err)
	b, err := NewRunner(testConfig(99), logging.Discard()).Play(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, a.GameID, b.GameID)
	assert.Equal(t, a.Winner, b.Winner)
	assert.Equal(t, a.Turns, b.Turns)
	assert.Equal(t, a.Ticks, b.Ticks)
	assert.Equal(t, a.Captures, b.Captures)
}

func TestPlayFinishesOnLargeBoard(t *testing.T) {
	for _, size := range []int{13, 17} {
		cfg := testConfig(11)
		cfg.Game.BoardSize = size

		result, err := NewRunner(cfg, logging.Discard()).Play(context.Background())
		require.NoError(t, err, "N=%d", size)
		assert.True(t, result.Winner.Valid(), "N=%d", size)
	}
}

func TestPlayRecordsEvents(t *testing.T) {
	rec := &recorder{}
	r := NewRunner(testConfig(3), logging.Discard())
	r.RecordEvents(rec)

	_, err := r.Play(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, rec.types)
	assert.Equal(t, constants.MsgDiceRolled, rec.types[0])
	assert.Equal(t, constants.MsgGameOver, rec.types[len(rec.types)-1])
	assert.Contains(t, rec.types, constants.MsgPawnMoved)
	assert.Contains(t, rec.types, constants.MsgTurnChanged)
}

func TestPlayTickLimit(t *testing.T) {
	cfg := testConfig(1)
	cfg.Simulation.MaxTicks = 10

	r := NewRunner(cfg, logging.Discard())
	_, err := r.Play(context.Background())
	assert.ErrorIs(t, err, ErrTickLimit)

	summary, err := r.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.Zero(t, summary.Games)
	assert.Equal(t, 2, summary.Unfinished)
}

func TestPlayHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(testConfig(1), logging.Discard()).Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSummary(t *testing.T) {
	r := NewRunner(testConfig(5), logging.Discard())

	summary, err := r.Run(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 3, summary.Games)

	wins := 0
	for _, n := range summary.Wins {
		wins += n
	}
	assert.Equal(t, 3, wins)

	assert.Positive(t, summary.MeanTurns)
	assert.LessOrEqual(t, summary.MinTurns, summary.MeanTurns)
	assert.GreaterOrEqual(t, summary.MaxTurns, summary.MeanTurns)

	won := 0
	for _, s := range summary.Stats {
		assert.Equal(t, 3, s.TotalGames)
		assert.Equal(t, s.TotalGames, s.GamesWon+s.GamesLost)
		won += s.GamesWon
	}
	assert.Equal(t, 3, won)
}

func TestPlayerStatsStreaks(t *testing.T) {
	s := &PlayerStats{Player: models.PlayerTwo}
	s.recordGame(true)
	s.recordGame(true)
	s.recordGame(false)
	s.recordGame(true)

	assert.Equal(t, 4, s.TotalGames)
	assert.Equal(t, 3, s.GamesWon)
	assert.Equal(t, 2, s.HighestStreak)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.InDelta(t, 0.75, s.WinRate, 1e-9)
}
