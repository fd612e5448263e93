package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardRejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, 9, 10, 12, 14} {
		_, err := NewBoard(size)
		require.ErrorIs(t, err, ErrInvalidBoardSize, "size %d", size)
	}
}

func TestHomeGap(t *testing.T) {
	for size, want := range map[int]int{11: 0, 13: 1, 15: 2, 21: 5} {
		b, err := NewBoard(size)
		require.NoError(t, err)
		assert.Equal(t, want, b.HomeGap(), "N=%d", size)

		er, ec := b.HomeEntrance(PlayerOne)
		dr, dc := Inward(PlayerOne)
		first := b.Cell(er+dr*(want+1), ec+dc*(want+1))
		assert.Equal(t, RoleHome, first.Role, "N=%d", size)
	}
}

func TestNewBoardCellCounts(t *testing.T) {
	for _, size := range []int{11, 13, 15, 21} {
		b, err := NewBoard(size)
		require.NoError(t, err)

		assert.Equal(t, 16, b.Count(RoleYard), "yard cells for N=%d", size)
		assert.Equal(t, 16, b.Count(RoleHome), "home cells for N=%d", size)
		assert.Equal(t, 6*size-26, b.Count(RoleTrack), "track cells for N=%d", size)

		c := b.Center()
		assert.Equal(t, RoleUnused, b.Cell(c, c).Role)

		for _, p := range AllPlayers {
			yard := b.YardCells(p)
			require.Len(t, yard, 4)
			for _, cell := range yard {
				assert.Equal(t, p, cell.Owner)
				assert.Equal(t, p, cell.Occupant)
			}

			home := b.HomeCells(p)
			require.Len(t, home, 4)
			for _, cell := range home {
				assert.Equal(t, RoleHome, cell.Role)
				assert.Equal(t, p, cell.Owner)
				assert.Equal(t, NoPlayer, cell.Occupant)
			}
		}
	}
}

func TestReferenceBoardLayout(t *testing.T) {
	b, err := NewBoard(11)
	require.NoError(t, err)

	assert.Equal(t, PlayerOne, b.Cell(0, 0).Owner)
	assert.Equal(t, PlayerTwo, b.Cell(10, 1).Owner)
	assert.Equal(t, PlayerThree, b.Cell(1, 9).Owner)
	assert.Equal(t, PlayerFour, b.Cell(9, 9).Owner)

	// colonnes d'arrivée
	for k := 1; k <= 4; k++ {
		assert.Equal(t, PlayerOne, b.Cell(5, k).Owner)
		assert.Equal(t, PlayerTwo, b.Cell(5+k, 5).Owner)
		assert.Equal(t, PlayerThree, b.Cell(5-k, 5).Owner)
		assert.Equal(t, PlayerFour, b.Cell(5, 5+k).Owner)
	}

	assert.Equal(t, RoleTrack, b.Cell(4, 0).Role)
	assert.Equal(t, RoleTrack, b.Cell(5, 0).Role)
	assert.Equal(t, RoleUnused, b.Cell(2, 2).Role)
	assert.Equal(t, RoleUnused, b.Cell(3, 3).Role)
	assert.Nil(t, b.Cell(-1, 0))
	assert.Nil(t, b.Cell(0, 11))
}

func TestCellContent(t *testing.T) {
	b, err := NewBoard(11)
	require.NoError(t, err)

	assert.Equal(t, Content{Kind: ContentOccupied, Player: PlayerTwo}, b.Cell(9, 0).Content())
	assert.Equal(t, Content{Kind: ContentHome, Player: PlayerOne}, b.Cell(5, 2).Content())
	assert.Equal(t, Content{Kind: ContentEmpty}, b.Cell(4, 4).Content())
	assert.Equal(t, Content{Kind: ContentUnused}, b.Cell(5, 5).Content())

	b.Cell(5, 2).Occupant = PlayerOne
	assert.Equal(t, Content{Kind: ContentOccupied, Player: PlayerOne}, b.Cell(5, 2).Content())
}

func TestRingWalkIsClosedLoop(t *testing.T) {
	for _, size := range []int{11, 13, 15} {
		b, err := NewBoard(size)
		require.NoError(t, err)

		sr, sc := b.StartCell(PlayerOne)
		seen := map[[2]int]bool{}
		r, c := sr, sc
		for i := 0; i < b.RingLength(); i++ {
			require.True(t, b.IsRing(r, c), "(%d,%d) off ring for N=%d", r, c, size)
			require.False(t, seen[[2]int{r, c}], "(%d,%d) visited twice for N=%d", r, c, size)
			seen[[2]int{r, c}] = true

			step := b.StepAt(r, c)
			require.NotEqual(t, StepNone, step.Kind)
			r, c = r+step.DRow, c+step.DCol
		}
		assert.Equal(t, [2]int{sr, sc}, [2]int{r, c})
		assert.Len(t, seen, b.RingLength())
	}
}

func TestStartCellFollowsEntrance(t *testing.T) {
	b, err := NewBoard(11)
	require.NoError(t, err)

	for _, p := range AllPlayers {
		er, ec := b.HomeEntrance(p)
		step := b.StepAt(er, ec)
		assert.Equal(t, StepEntrance, step.Kind)
		assert.Equal(t, p, step.Entrant)

		sr, sc := b.StartCell(p)
		assert.Equal(t, [2]int{sr, sc}, [2]int{er + step.DRow, ec + step.DCol}, "player %s", p)
		assert.True(t, b.IsRing(sr, sc))
	}
}

func TestNextStepOffRing(t *testing.T) {
	assert.Equal(t, Step{}, NextStep(11, 5, 5))
	assert.Equal(t, Step{}, NextStep(11, 0, 0))
	assert.Equal(t, Step{}, NextStep(11, 5, 3))
	assert.Equal(t, Step{Kind: StepArm, DRow: -1}, NextStep(11, 4, 4))
	assert.Equal(t, Step{Kind: StepEdge, DCol: 1}, NextStep(11, 0, 4))
}

func TestYardHelpers(t *testing.T) {
	b, err := NewBoard(11)
	require.NoError(t, err)

	assert.Nil(t, b.FreeYardSlot(PlayerOne))
	pawn := b.YardPawn(PlayerOne)
	require.NotNil(t, pawn)
	assert.Equal(t, [2]int{0, 0}, [2]int{pawn.Row, pawn.Col})

	pawn.Occupant = NoPlayer
	slot := b.FreeYardSlot(PlayerOne)
	require.NotNil(t, slot)
	assert.Equal(t, [2]int{0, 0}, [2]int{slot.Row, slot.Col})
	assert.Equal(t, [2]int{0, 1}, [2]int{b.YardPawn(PlayerOne).Row, b.YardPawn(PlayerOne).Col})
}

func TestCloneIsIndependent(t *testing.T) {
	b, err := NewBoard(11)
	require.NoError(t, err)

	clone := b.Clone()
	clone.Cell(4, 4).Occupant = PlayerThree
	assert.Equal(t, NoPlayer, b.Cell(4, 4).Occupant)
	assert.Equal(t, []Position{At(4, 4)}, clone.RingPawns(PlayerThree))
	assert.Empty(t, b.RingPawns(PlayerThree))
}

func TestPlayerNextCycles(t *testing.T) {
	assert.Equal(t, PlayerTwo, PlayerOne.Next())
	assert.Equal(t, PlayerOne, PlayerFour.Next())
	assert.Equal(t, PlayerOne, NoPlayer.Next())
	assert.Equal(t, "P3(blue)", PlayerThree.String())
}
