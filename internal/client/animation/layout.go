// internal/client/animation/layout.go
package animation

import (
	"math"

	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
)

// Layout place les cases du plateau sur l'écran : cases carrées, hauteur de
// case = hauteur d'écran / taille, plateau centré horizontalement.
type Layout struct {
	Size     int
	Width    float32
	Height   float32
	CellSize float32
	OffsetX  float32
}

// NewLayout calcule la géométrie d'un plateau de size cases
func NewLayout(size int, width, height float32) Layout {
	cell := height / float32(size)
	return Layout{
		Size:     size,
		Width:    width,
		Height:   height,
		CellSize: cell,
		OffsetX:  (width - cell*float32(size)) / 2,
	}
}

// Center retourne les coordonnées écran du centre d'une case
func (l Layout) Center(row, col int) (x, y float32) {
	x = l.OffsetX + (float32(col)+0.5)*l.CellSize
	y = (float32(row) + 0.5) * l.CellSize
	return x, y
}

// CenterOf retourne le centre de la case d'une position
func (l Layout) CenterOf(p models.Position) (x, y float32) {
	return l.Center(p.Row, p.Col)
}

// Nearest retourne la case dont le centre est le plus proche du point
func (l Layout) Nearest(x, y float32) (row, col int) {
	if l.CellSize <= 0 {
		return 0, 0
	}
	col = int(math.Floor(float64((x - l.OffsetX) / l.CellSize)))
	row = int(math.Floor(float64(y / l.CellSize)))
	return clamp(row, 0, l.Size-1), clamp(col, 0, l.Size-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
