// cmd/ludosim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/obrien-tchaleu/crossludo/internal/config"
	"github.com/obrien-tchaleu/crossludo/internal/logging"
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
	"github.com/obrien-tchaleu/crossludo/internal/shared/protocol"
	"github.com/obrien-tchaleu/crossludo/internal/sim"
	"github.com/obrien-tchaleu/crossludo/internal/spectate"
)

// eventLog écrit les événements de partie dans un fichier JSON, un par ligne
type eventLog struct {
	serializer *protocol.Serializer
	log        *log.Logger
}

func (e *eventLog) Publish(msg *protocol.NetworkMessage) {
	if err := e.serializer.Encode(msg); err != nil {
		e.log.WithError(err).Warn("failed to record event")
	}
}

func main() {
	configPath := flag.String("config", "configs/ludosim.yaml", "YAML configuration file")
	games := flag.Int("games", 0, "number of games to play (overrides simulation.games)")
	events := flag.String("events", "", "write game events to this file as JSON lines")
	flag.Parse()

	// Charger la configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *games > 0 {
		cfg.Simulation.Games = *games
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := sim.NewRunner(cfg, logger)

	if *events != "" {
		file, err := os.Create(*events)
		if err != nil {
			logger.Fatalf("Failed to create event log: %v", err)
		}
		defer file.Close()
		runner.RecordEvents(&eventLog{serializer: protocol.NewSerializer(nil, file), log: logger})
	}

	// Démarrer le flux spectateurs
	if cfg.Spectator.Enabled {
		hub := spectate.NewHub(log.NewEntry(logger))
		go hub.Run(ctx)
		runner.AttachHub(hub)

		server := &http.Server{
			Addr:              cfg.Spectator.Addr,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.WithField("addr", cfg.Spectator.Addr).Info("spectator feed listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("spectator server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	summary, err := runner.Run(ctx, cfg.Simulation.Games)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("simulation failed")
		return
	}

	logger.WithFields(log.Fields{
		"games":        summary.Games,
		"unfinished":   summary.Unfinished,
		"mean_turns":   summary.MeanTurns,
		"stddev_turns": summary.StdDevTurns,
	}).Info("simulation finished")

	for _, p := range models.AllPlayers {
		s := summary.Stats[p]
		logger.WithFields(log.Fields{
			"player":   s.Player.String(),
			"won":      s.GamesWon,
			"win_rate": s.WinRate,
			"captured": s.PawnsCaptured,
			"lost":     s.PawnsLost,
			"sixes":    s.SixesRolled,
			"rolls":    s.TotalDiceRolls,
		}).Info("player stats")
	}
}

// loadConfig lit le fichier s'il existe, sinon la configuration par défaut et l'environnement
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Printf("Config file %s not found, using defaults", path)
		return config.FromEnv()
	}
	return config.Load(path)
}
