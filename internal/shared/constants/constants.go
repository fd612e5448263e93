// internal/shared/constants/constants.go
package constants

const (
	// Configuration du plateau
	DefaultBoardSize = 11
	MinBoardSize     = 11
	MaxPlayers       = 4
	PawnsPerPlayer   = 4
	HomeColumnLength = 4
	YardSpan         = 2

	// Règles du jeu
	DiceMin          = 1
	DiceMax          = 6
	RollToSummon     = 6
	RollForExtraTurn = 6

	// Disposition écran de référence (pixels)
	DefaultScreenWidth  = 960
	DefaultScreenHeight = 544
	DefaultAnimSpeed    = 150 // pixels par seconde
	DefaultFrameRate    = 60
)

// Couleurs des joueurs
type PlayerColor string

const (
	ColorRed    PlayerColor = "red"
	ColorYellow PlayerColor = "yellow"
	ColorBlue   PlayerColor = "blue"
	ColorGreen  PlayerColor = "green"
)

// Couleurs par numéro de joueur (index 0 inutilisé)
var PlayerColors = [MaxPlayers + 1]PlayerColor{"", ColorRed, ColorYellow, ColorBlue, ColorGreen}

// États de la machine à tours
type GameState string

const (
	StateWaiting       GameState = "waiting"
	StateRollingDice   GameState = "rolling_dice"
	StateForcedSummon  GameState = "forced_summon_check"
	StateSummoningPawn GameState = "summoning_pawn"
	StatePickingPawn   GameState = "picking_pawn"
	StateMovingPawn    GameState = "moving_pawn"
	StateAnimating     GameState = "animating"
	StateEndingTurn    GameState = "ending_turn"
	StateWon           GameState = "won"
)

// Type de contrôle d'un joueur
type Controller string

const (
	ControllerHuman    Controller = "human"
	ControllerComputer Controller = "computer"
)

// Types de messages pour les spectateurs
type MessageType string

const (
	// Client -> Serveur
	MsgPing        MessageType = "PING"
	MsgSnapshotReq MessageType = "SNAPSHOT_REQUEST"

	// Serveur -> Client
	MsgPong         MessageType = "PONG"
	MsgSnapshot     MessageType = "SNAPSHOT"
	MsgDiceRolled   MessageType = "DICE_ROLLED"
	MsgPawnMoved    MessageType = "PAWN_MOVED"
	MsgPawnCaptured MessageType = "PAWN_CAPTURED"
	MsgTurnChanged  MessageType = "TURN_CHANGED"
	MsgGameOver     MessageType = "GAME_OVER"
	MsgError        MessageType = "ERROR"
)

// Codes d'erreur envoyés aux spectateurs
const (
	ErrUnknownMessage = "UNKNOWN_MESSAGE"
	ErrBadMessage     = "BAD_MESSAGE"
)
