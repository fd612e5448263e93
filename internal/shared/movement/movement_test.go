package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
)

func newBoard(t *testing.T, size int) *models.Board {
	t.Helper()
	b, err := models.NewBoard(size)
	require.NoError(t, err)
	return b
}

func ringCells(b *models.Board) []models.Position {
	var cells []models.Position
	for i := 0; i < b.Size; i++ {
		for j := 0; j < b.Size; j++ {
			if b.IsRing(i, j) {
				cells = append(cells, models.At(i, j))
			}
		}
	}
	return cells
}

func TestAdvanceZeroPipsIsIdentity(t *testing.T) {
	b := newBoard(t, 11)
	for _, p := range models.AllPlayers {
		for _, cell := range ringCells(b) {
			assert.Equal(t, cell, Advance(b, p, cell.Row, cell.Col, 0))
		}
	}
}

func TestAdvanceComposesAdditively(t *testing.T) {
	b := newBoard(t, 11)
	for _, p := range models.AllPlayers {
		for _, cell := range ringCells(b) {
			for x := 1; x <= 6; x++ {
				for y := 1; y <= 6; y++ {
					whole := Advance(b, p, cell.Row, cell.Col, x+y)
					if whole.MovesLeft != 0 {
						continue
					}
					mid := Advance(b, p, cell.Row, cell.Col, x)
					require.Zero(t, mid.MovesLeft)
					assert.Equal(t, whole, Advance(b, p, mid.Row, mid.Col, y),
						"%s from %s with %d+%d", p, cell, x, y)
				}
			}
		}
	}
}

func TestFullCircuitReturnsToStart(t *testing.T) {
	for _, size := range []int{11, 13} {
		b := newBoard(t, size)
		for _, cell := range ringCells(b) {
			end := Advance(b, models.NoPlayer, cell.Row, cell.Col, b.RingLength())
			assert.Equal(t, cell, end)
		}
	}
}

func TestAdvanceStopsAtOwnEntrance(t *testing.T) {
	b := newBoard(t, 11)

	assert.Equal(t, models.Position{Row: 5, Col: 0, MovesLeft: 2}, Advance(b, models.PlayerOne, 6, 0, 3))
	assert.Equal(t, models.Position{Row: 5, Col: 0, MovesLeft: 4}, Advance(b, models.PlayerOne, 5, 0, 4))

	// l'entrée d'un autre joueur se traverse normalement
	assert.Equal(t, models.At(0, 6), Advance(b, models.PlayerOne, 0, 4, 2))
	assert.Equal(t, models.At(4, 0), Advance(b, models.PlayerTwo, 6, 0, 2))
}

func TestAdvanceFollowsClockwiseRing(t *testing.T) {
	b := newBoard(t, 11)

	assert.Equal(t, models.At(4, 4), Advance(b, models.PlayerOne, 4, 0, 4))
	assert.Equal(t, models.At(0, 4), Advance(b, models.PlayerOne, 4, 0, 8))
	assert.Equal(t, models.At(4, 7), Advance(b, models.PlayerOne, 1, 6, 4))
	assert.Equal(t, models.At(6, 9), Advance(b, models.PlayerOne, 4, 10, 3))
	assert.Equal(t, models.At(10, 4), Advance(b, models.PlayerOne, 9, 6, 3))
}

func TestEnterHome(t *testing.T) {
	b := newBoard(t, 11)

	cases := []struct {
		name  string
		owner models.Player
		pos   models.Position
		want  models.Position
	}{
		{"p1 two pips", models.PlayerOne, models.Position{Row: 5, Col: 0, MovesLeft: 2}, models.At(5, 2)},
		{"p1 innermost", models.PlayerOne, models.Position{Row: 5, Col: 0, MovesLeft: 4}, models.At(5, 4)},
		{"p1 overshoot", models.PlayerOne, models.Position{Row: 5, Col: 0, MovesLeft: 5}, models.Position{Row: 5, Col: 0, MovesLeft: 5}},
		{"p1 far overshoot", models.PlayerOne, models.Position{Row: 5, Col: 0, MovesLeft: 6}, models.Position{Row: 5, Col: 0, MovesLeft: 6}},
		{"p2 one pip", models.PlayerTwo, models.Position{Row: 10, Col: 5, MovesLeft: 1}, models.At(9, 5)},
		{"p3 three pips", models.PlayerThree, models.Position{Row: 0, Col: 5, MovesLeft: 3}, models.At(3, 5)},
		{"p4 four pips", models.PlayerFour, models.Position{Row: 5, Col: 10, MovesLeft: 4}, models.At(5, 6)},
		{"not at entrance", models.PlayerOne, models.Position{Row: 6, Col: 0, MovesLeft: 2}, models.Position{Row: 6, Col: 0, MovesLeft: 2}},
		{"wrong owner", models.PlayerTwo, models.Position{Row: 5, Col: 0, MovesLeft: 2}, models.Position{Row: 5, Col: 0, MovesLeft: 2}},
		{"nothing left", models.PlayerOne, models.At(5, 0), models.At(5, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EnterHome(b, tc.owner, tc.pos))
		})
	}
}

func TestEnterHomeRejectsOccupiedCell(t *testing.T) {
	b := newBoard(t, 11)
	b.Cell(5, 3).Occupant = models.PlayerOne

	pos := models.Position{Row: 5, Col: 0, MovesLeft: 3}
	assert.Equal(t, pos, EnterHome(b, models.PlayerOne, pos))
	assert.Equal(t, models.At(5, 2), EnterHome(b, models.PlayerOne, models.Position{Row: 5, Col: 0, MovesLeft: 2}))
}

func TestEnterHomeSkipsCorridorOnLargeBoards(t *testing.T) {
	b := newBoard(t, 17)
	require.Equal(t, 3, b.HomeGap())

	// (8,1)..(8,3) séparent l'entrée de la colonne (8,4)..(8,7)
	assert.Equal(t, models.At(8, 4), EnterHome(b, models.PlayerOne, models.Position{Row: 8, Col: 0, MovesLeft: 1}))
	assert.Equal(t, models.At(8, 7), EnterHome(b, models.PlayerOne, models.Position{Row: 8, Col: 0, MovesLeft: 4}))
	overshoot := models.Position{Row: 8, Col: 0, MovesLeft: 5}
	assert.Equal(t, overshoot, EnterHome(b, models.PlayerOne, overshoot))
}

func TestEveryHomeCellReachable(t *testing.T) {
	for _, size := range []int{11, 13, 15, 17, 19, 21, 31} {
		b := newBoard(t, size)
		for _, p := range models.AllPlayers {
			reached := make(map[models.Position]bool)
			for _, cell := range ringCells(b) {
				for pips := 1; pips <= 6; pips++ {
					dest, ok := Resolve(b, p, cell.Row, cell.Col, pips)
					if ok {
						reached[dest] = true
					}
				}
			}
			for _, home := range b.HomeCells(p) {
				assert.True(t, reached[models.At(home.Row, home.Col)],
					"N=%d %s home (%d,%d)", size, p, home.Row, home.Col)
			}
		}
	}
}

func TestDistanceToHome(t *testing.T) {
	b := newBoard(t, 11)

	for _, p := range models.AllPlayers {
		sr, sc := b.StartCell(p)
		er, ec := b.HomeEntrance(p)
		assert.Equal(t, b.RingLength()-1, DistanceToHome(b, p, sr, sc), "start of %s", p)
		assert.Zero(t, DistanceToHome(b, p, er, ec), "entrance of %s", p)
	}
	assert.Equal(t, 1, DistanceToHome(b, models.PlayerOne, 6, 0))
	assert.Equal(t, 5, DistanceToHome(b, models.PlayerOne, 6, 4))
}

func TestResolve(t *testing.T) {
	b := newBoard(t, 11)
	b.Cell(6, 2).Occupant = models.PlayerOne
	b.Cell(6, 3).Occupant = models.PlayerTwo

	dest, ok := Resolve(b, models.PlayerOne, 6, 4, 2)
	assert.False(t, ok, "own pawn blocks the landing cell")
	assert.Equal(t, models.At(6, 2), dest)

	dest, ok = Resolve(b, models.PlayerOne, 6, 4, 1)
	assert.True(t, ok)
	assert.True(t, Captures(b, models.PlayerOne, dest))

	dest, ok = Resolve(b, models.PlayerOne, 6, 0, 3)
	assert.True(t, ok)
	assert.Equal(t, models.At(5, 2), dest)
	assert.False(t, Captures(b, models.PlayerOne, dest))

	_, ok = Resolve(b, models.PlayerOne, 6, 0, 6)
	assert.False(t, ok, "overshoot past the home column")

	_, ok = Resolve(b, models.PlayerOne, 0, 0, 3)
	assert.False(t, ok, "yard pawns do not move")
}
