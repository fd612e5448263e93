// internal/shared/models/board.go
package models

import (
	"errors"
	"fmt"

	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
)

// ErrInvalidBoardSize signale une dimension paire ou trop petite
var ErrInvalidBoardSize = errors.New("invalid board size")

// Board représente le plateau en croix : camps, anneau et colonnes d'arrivée
type Board struct {
	Size  int       `json:"size"`
	Cells [][]*Cell `json:"cells"`
}

// NewBoard construit et classe toutes les cases d'un plateau size×size
func NewBoard(size int) (*Board, error) {
	if size < constants.MinBoardSize || size%2 == 0 {
		return nil, fmt.Errorf("%w: %d (must be odd and at least %d)",
			ErrInvalidBoardSize, size, constants.MinBoardSize)
	}

	b := &Board{Size: size}
	b.allocate()
	// L'ordre compte : la croix est posée après les camps, qu'elle ne recoupe jamais.
	b.placeYards()
	b.placeTrack()
	b.placeHomes()
	b.placeSteps()

	return b, nil
}

func (b *Board) allocate() {
	b.Cells = make([][]*Cell, b.Size)
	for i := 0; i < b.Size; i++ {
		b.Cells[i] = make([]*Cell, b.Size)
		for j := 0; j < b.Size; j++ {
			b.Cells[i][j] = &Cell{Row: i, Col: j, Role: RoleUnused}
		}
	}
}

// yardOrigin retourne le coin supérieur gauche du camp 2×2 d'un joueur
func (b *Board) yardOrigin(p Player) (int, int) {
	far := b.Size - constants.YardSpan
	switch p {
	case PlayerTwo:
		return far, 0
	case PlayerThree:
		return 0, far
	case PlayerFour:
		return far, far
	default:
		return 0, 0
	}
}

func (b *Board) placeYards() {
	for _, p := range AllPlayers {
		r0, c0 := b.yardOrigin(p)
		for i := r0; i < r0+constants.YardSpan; i++ {
			for j := c0; j < c0+constants.YardSpan; j++ {
				cell := b.Cells[i][j]
				cell.Role = RoleYard
				cell.Owner = p
				cell.Occupant = p
			}
		}
	}
}

func (b *Board) placeTrack() {
	for i := 0; i < b.Size; i++ {
		for j := 0; j < b.Size; j++ {
			if inBand(b.Size, i, j) {
				b.Cells[i][j].Role = RoleTrack
			}
		}
	}
}

func (b *Board) placeHomes() {
	c := b.Center()
	b.Cells[c][c].Role = RoleUnused

	for _, p := range AllPlayers {
		dr, dc := homeRay(p)
		for k := 1; k <= constants.HomeColumnLength; k++ {
			cell := b.Cells[c+dr*k][c+dc*k]
			cell.Role = RoleHome
			cell.Owner = p
		}
	}
}

func (b *Board) placeSteps() {
	for i := 0; i < b.Size; i++ {
		for j := 0; j < b.Size; j++ {
			b.Cells[i][j].Step = NextStep(b.Size, i, j)
		}
	}
}

// homeRay est la direction du centre vers le bord d'entrée d'un joueur
func homeRay(p Player) (int, int) {
	switch p {
	case PlayerTwo:
		return 1, 0
	case PlayerThree:
		return -1, 0
	case PlayerFour:
		return 0, 1
	default:
		return 0, -1
	}
}

func inBand(size, row, col int) bool {
	c := size / 2
	return abs(row-c) <= 1 || abs(col-c) <= 1
}

// onRing indique si la case fait partie de l'anneau partagé
func onRing(size, row, col int) bool {
	if row < 0 || col < 0 || row >= size || col >= size || !inBand(size, row, col) {
		return false
	}
	c := size / 2
	last := size - 1
	if row == c {
		return col == 0 || col == last
	}
	if col == c {
		return row == 0 || row == last
	}
	return true
}

func entranceOwner(size, row, col int) Player {
	c := size / 2
	last := size - 1
	switch {
	case row == c && col == 0:
		return PlayerOne
	case row == last && col == c:
		return PlayerTwo
	case row == 0 && col == c:
		return PlayerThree
	case row == c && col == last:
		return PlayerFour
	}
	return NoPlayer
}

// NextStep calcule la règle de pas d'une case à partir de ses seules coordonnées.
// Les couloirs voisins de la ligne et de la colonne centrales sont parcourus
// vers l'extérieur ou l'intérieur selon le sens horaire, le bord extérieur
// tourne dans le sens horaire.
func NextStep(size, row, col int) Step {
	if !onRing(size, row, col) {
		return Step{}
	}
	c := size / 2
	last := size - 1

	var s Step
	switch {
	case row == c-1 && col != c-1 && col != last:
		s = Step{Kind: StepArm, DCol: 1}
	case row == c+1 && col != c+1 && col != 0:
		s = Step{Kind: StepArm, DCol: -1}
	case col == c-1 && row != c+1 && row != 0:
		s = Step{Kind: StepArm, DRow: -1}
	case col == c+1 && row != c-1 && row != last:
		s = Step{Kind: StepArm, DRow: 1}
	case row == 0:
		s = Step{Kind: StepEdge, DCol: 1}
	case row == last:
		s = Step{Kind: StepEdge, DCol: -1}
	case col == 0:
		s = Step{Kind: StepEdge, DRow: -1}
	case col == last:
		s = Step{Kind: StepEdge, DRow: 1}
	}

	if p := entranceOwner(size, row, col); p != NoPlayer {
		s.Kind = StepEntrance
		s.Entrant = p
	}
	return s
}

// Center retourne l'indice de la ligne et de la colonne centrales
func (b *Board) Center() int {
	return b.Size / 2
}

// InBounds vérifie que les coordonnées sont sur le plateau
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.Size && col < b.Size
}

// Cell retourne la case, ou nil hors plateau
func (b *Board) Cell(row, col int) *Cell {
	if !b.InBounds(row, col) {
		return nil
	}
	return b.Cells[row][col]
}

// IsRing indique si la case appartient à l'anneau
func (b *Board) IsRing(row, col int) bool {
	return onRing(b.Size, row, col)
}

// StepAt retourne la règle de pas précalculée d'une case
func (b *Board) StepAt(row, col int) Step {
	cell := b.Cell(row, col)
	if cell == nil {
		return Step{}
	}
	return cell.Step
}

// RingLength retourne le nombre de cases de l'anneau
func (b *Board) RingLength() int {
	return 4 * (b.Size - 1)
}

// StartCell retourne la case où un pion sorti du camp entre sur l'anneau
func (b *Board) StartCell(p Player) (int, int) {
	c := b.Center()
	last := b.Size - 1
	switch p {
	case PlayerTwo:
		return last, c - 1
	case PlayerThree:
		return 0, c + 1
	case PlayerFour:
		return c + 1, last
	default:
		return c - 1, 0
	}
}

// HomeEntrance retourne la case de l'anneau d'où le joueur bifurque vers sa colonne
func (b *Board) HomeEntrance(p Player) (int, int) {
	c := b.Center()
	last := b.Size - 1
	switch p {
	case PlayerTwo:
		return last, c
	case PlayerThree:
		return 0, c
	case PlayerFour:
		return c, last
	default:
		return c, 0
	}
}

// HomeGap retourne le nombre de cases de couloir entre l'entrée et la colonne
// d'arrivée ; elles sont franchies sans consommer de points
func (b *Board) HomeGap() int {
	return b.Center() - 1 - constants.HomeColumnLength
}

// Inward retourne la direction de l'entrée vers le centre pour un joueur
func Inward(p Player) (int, int) {
	dr, dc := homeRay(p)
	return -dr, -dc
}

// HomeCells retourne les cases d'arrivée d'un joueur, depuis le centre
func (b *Board) HomeCells(p Player) []*Cell {
	c := b.Center()
	dr, dc := homeRay(p)
	cells := make([]*Cell, 0, constants.HomeColumnLength)
	for k := 1; k <= constants.HomeColumnLength; k++ {
		cells = append(cells, b.Cells[c+dr*k][c+dc*k])
	}
	return cells
}

// YardCells retourne les cases du camp d'un joueur dans l'ordre de balayage
func (b *Board) YardCells(p Player) []*Cell {
	r0, c0 := b.yardOrigin(p)
	cells := make([]*Cell, 0, constants.YardSpan*constants.YardSpan)
	for i := r0; i < r0+constants.YardSpan; i++ {
		for j := c0; j < c0+constants.YardSpan; j++ {
			cells = append(cells, b.Cells[i][j])
		}
	}
	return cells
}

// YardPawn retourne la première case du camp encore occupée par le joueur
func (b *Board) YardPawn(p Player) *Cell {
	for _, cell := range b.YardCells(p) {
		if cell.Occupant == p {
			return cell
		}
	}
	return nil
}

// FreeYardSlot retourne la première case libre du camp d'un joueur
func (b *Board) FreeYardSlot(p Player) *Cell {
	for _, cell := range b.YardCells(p) {
		if cell.Occupant == NoPlayer {
			return cell
		}
	}
	return nil
}

// RingPawns retourne les pions du joueur présents sur l'anneau, en ordre de balayage
func (b *Board) RingPawns(p Player) []Position {
	pawns := make([]Position, 0, constants.PawnsPerPlayer)
	for i := 0; i < b.Size; i++ {
		for j := 0; j < b.Size; j++ {
			if b.Cells[i][j].Occupant == p && onRing(b.Size, i, j) {
				pawns = append(pawns, At(i, j))
			}
		}
	}
	return pawns
}

// Count compte les cases d'un rôle donné
func (b *Board) Count(role Role) int {
	n := 0
	for _, row := range b.Cells {
		for _, cell := range row {
			if cell.Role == role {
				n++
			}
		}
	}
	return n
}

// Clone retourne une copie profonde du plateau
func (b *Board) Clone() *Board {
	clone := &Board{Size: b.Size, Cells: make([][]*Cell, b.Size)}
	for i, row := range b.Cells {
		clone.Cells[i] = make([]*Cell, len(row))
		for j, cell := range row {
			cp := *cell
			clone.Cells[i][j] = &cp
		}
	}
	return clone
}

// Views retourne la vue de rendu de toutes les cases jouables
func (b *Board) Views() []CellView {
	views := make([]CellView, 0, b.Size*b.Size)
	for _, row := range b.Cells {
		for _, cell := range row {
			content := cell.Content()
			if content.Kind == ContentUnused {
				continue
			}
			views = append(views, CellView{
				Row:     cell.Row,
				Col:     cell.Col,
				Content: content.Kind.String(),
				Player:  content.Player,
			})
		}
	}
	return views
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
