// internal/shared/models/models.go
package models

import (
	"fmt"

	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
)

// Player identifie un joueur (1 à 4), NoPlayer signifie "aucun"
type Player int

const (
	NoPlayer Player = iota
	PlayerOne
	PlayerTwo
	PlayerThree
	PlayerFour
)

// AllPlayers liste les joueurs dans l'ordre cyclique des tours
var AllPlayers = []Player{PlayerOne, PlayerTwo, PlayerThree, PlayerFour}

// Valid indique si p désigne un vrai joueur
func (p Player) Valid() bool {
	return p >= PlayerOne && p <= PlayerFour
}

// Next retourne le joueur suivant (1→2→3→4→1)
func (p Player) Next() Player {
	if !p.Valid() || p == PlayerFour {
		return PlayerOne
	}
	return p + 1
}

// Color retourne la couleur du joueur
func (p Player) Color() constants.PlayerColor {
	if !p.Valid() {
		return ""
	}
	return constants.PlayerColors[p]
}

func (p Player) String() string {
	if !p.Valid() {
		return "none"
	}
	return fmt.Sprintf("P%d(%s)", int(p), p.Color())
}

// Role est la classification fixe d'une case, calculée à la construction
type Role int

const (
	RoleUnused Role = iota
	RoleYard
	RoleTrack
	RoleHome
)

func (r Role) String() string {
	switch r {
	case RoleYard:
		return "yard"
	case RoleTrack:
		return "track"
	case RoleHome:
		return "home"
	default:
		return "unused"
	}
}

// ContentKind est l'étiquette visible d'une case
type ContentKind int

const (
	ContentUnused ContentKind = iota
	ContentEmpty
	ContentOccupied
	ContentHome
)

func (k ContentKind) String() string {
	switch k {
	case ContentEmpty:
		return "empty"
	case ContentOccupied:
		return "occupied"
	case ContentHome:
		return "home"
	default:
		return "unused"
	}
}

// Content combine l'étiquette et le joueur concerné (Occupied ou Home)
type Content struct {
	Kind   ContentKind
	Player Player
}

// StepKind indique quelle règle locale fait avancer un pion depuis une case
type StepKind int

const (
	StepNone StepKind = iota
	StepArm
	StepEdge
	StepEntrance
)

// Step est la règle de pas d'une case de l'anneau
type Step struct {
	Kind    StepKind
	DRow    int
	DCol    int
	Entrant Player // pour StepEntrance : joueur qui entre ici dans sa colonne
}

// Cell représente une case du plateau
type Cell struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Role     Role   `json:"role"`
	Owner    Player `json:"owner,omitempty"`
	Occupant Player `json:"occupant,omitempty"`
	Step     Step   `json:"-"`
}

// Content retourne l'étiquette de la case au sens Unused/Empty/Occupied/Home
func (c *Cell) Content() Content {
	switch {
	case c.Role == RoleUnused:
		return Content{Kind: ContentUnused}
	case c.Occupant != NoPlayer:
		return Content{Kind: ContentOccupied, Player: c.Occupant}
	case c.Role == RoleHome:
		return Content{Kind: ContentHome, Player: c.Owner}
	default:
		return Content{Kind: ContentEmpty}
	}
}

// Position est une case plus le nombre de points non consommés
type Position struct {
	Row       int `json:"row"`
	Col       int `json:"col"`
	MovesLeft int `json:"moves_left"`
}

// At crée une position sans points restants
func At(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)+%d", p.Row, p.Col, p.MovesLeft)
}

// CellView est la vue d'une case envoyée au rendu
type CellView struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Content string `json:"content"`
	Player  Player `json:"player,omitempty"`
}

// CaptureView décrit un pion renvoyé dans son camp
type CaptureView struct {
	Victim Player   `json:"victim"`
	At     Position `json:"at"`
	Yard   Position `json:"yard"`
}

// MoveView décrit le déplacement en cours pour l'interpolation
type MoveView struct {
	Player   Player       `json:"player"`
	From     Position     `json:"from"`
	To       Position     `json:"to"`
	Summon   bool         `json:"summon"`
	Blocked  bool         `json:"blocked"`
	Captured *CaptureView `json:"captured,omitempty"`
}

// Snapshot représente l'état visible du jeu
type Snapshot struct {
	GameID      string              `json:"game_id"`
	Size        int                 `json:"size"`
	Turn        Player              `json:"turn"`
	Dice        int                 `json:"dice"`
	State       constants.GameState `json:"state"`
	ExtraThrows int                 `json:"extra_throws"`
	Winner      Player              `json:"winner,omitempty"`
	Cursor      Position            `json:"cursor"`
	Move        *MoveView           `json:"move,omitempty"`
	Cells       []CellView          `json:"cells"`
}
