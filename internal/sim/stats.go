// internal/sim/stats.go
package sim

import (
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
)

// PlayerStats représente les statistiques d'un joueur sur une série de parties
type PlayerStats struct {
	Player         models.Player `json:"player"`
	TotalGames     int           `json:"total_games"`
	GamesWon       int           `json:"games_won"`
	GamesLost      int           `json:"games_lost"`
	PawnsCaptured  int           `json:"pawns_captured"`
	PawnsLost      int           `json:"pawns_lost"`
	SixesRolled    int           `json:"sixes_rolled"`
	TotalDiceRolls int           `json:"total_dice_rolls"`
	WinRate        float64       `json:"win_rate"`
	HighestStreak  int           `json:"highest_streak"`
	CurrentStreak  int           `json:"current_streak"`
}

// recordGame met à jour les compteurs de fin de partie
func (s *PlayerStats) recordGame(won bool) {
	s.TotalGames++
	if won {
		s.GamesWon++
		s.CurrentStreak++
		if s.CurrentStreak > s.HighestStreak {
			s.HighestStreak = s.CurrentStreak
		}
	} else {
		s.GamesLost++
		s.CurrentStreak = 0
	}
	s.WinRate = float64(s.GamesWon) / float64(s.TotalGames)
}

func newStats() map[models.Player]*PlayerStats {
	stats := make(map[models.Player]*PlayerStats, len(models.AllPlayers))
	for _, p := range models.AllPlayers {
		stats[p] = &PlayerStats{Player: p}
	}
	return stats
}
