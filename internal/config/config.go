// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
)

// ErrInvalidConfig enveloppe toutes les erreurs de validation
var ErrInvalidConfig = errors.New("invalid config")

// Config représente la configuration du simulateur
type Config struct {
	Game       Game       `yaml:"game"`
	Animation  Animation  `yaml:"animation"`
	Spectator  Spectator  `yaml:"spectator"`
	Simulation Simulation `yaml:"simulation"`
	Logging    Logging    `yaml:"logging"`
}

// Game regroupe les paramètres d'une partie
type Game struct {
	BoardSize    int      `yaml:"board_size" env:"LUDO_BOARD_SIZE"`
	Seed         int64    `yaml:"seed" env:"LUDO_SEED"`
	Controllers  []string `yaml:"controllers" env:"LUDO_CONTROLLERS"`
	AutoFinalize bool     `yaml:"auto_finalize" env:"LUDO_AUTO_FINALIZE"`
}

// Animation regroupe les paramètres du rendu
type Animation struct {
	ScreenWidth  int     `yaml:"screen_width"`
	ScreenHeight int     `yaml:"screen_height"`
	Speed        float32 `yaml:"speed"`
	FrameRate    int     `yaml:"frame_rate"`
}

// Spectator configure le flux websocket
type Spectator struct {
	Enabled bool   `yaml:"enabled" env:"LUDO_SPECTATOR_ENABLED"`
	Addr    string `yaml:"addr" env:"LUDO_SPECTATOR_ADDR"`
}

// Simulation configure les parties ordinateur contre ordinateur
type Simulation struct {
	Games    int `yaml:"games" env:"LUDO_SIM_GAMES"`
	MaxTicks int `yaml:"max_ticks" env:"LUDO_SIM_MAX_TICKS"`
}

// Logging configure le journal
type Logging struct {
	Level  string `yaml:"level" env:"LUDO_LOG_LEVEL"`
	Format string `yaml:"format" env:"LUDO_LOG_FORMAT"`
	File   string `yaml:"file" env:"LUDO_LOG_FILE"`
}

// Default retourne la configuration par défaut
func Default() *Config {
	return &Config{
		Game: Game{
			BoardSize: constants.DefaultBoardSize,
			Controllers: []string{
				string(constants.ControllerHuman),
				string(constants.ControllerComputer),
				string(constants.ControllerComputer),
				string(constants.ControllerComputer),
			},
		},
		Animation: Animation{
			ScreenWidth:  constants.DefaultScreenWidth,
			ScreenHeight: constants.DefaultScreenHeight,
			Speed:        constants.DefaultAnimSpeed,
			FrameRate:    constants.DefaultFrameRate,
		},
		Spectator: Spectator{
			Addr: ":8080",
		},
		Simulation: Simulation{
			Games:    10,
			MaxTicks: 200000,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load charge la configuration depuis un fichier YAML puis applique
// les variables d'environnement
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// FromEnv construit la configuration par défaut surchargée par l'environnement
func FromEnv() (*Config, error) {
	config := Default()
	if err := applyEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate vérifie la cohérence de la configuration
func (c *Config) Validate() error {
	if c.Game.BoardSize < constants.MinBoardSize || c.Game.BoardSize%2 == 0 {
		return fmt.Errorf("%w: board_size must be odd and at least %d, got %d",
			ErrInvalidConfig, constants.MinBoardSize, c.Game.BoardSize)
	}
	if len(c.Game.Controllers) != constants.MaxPlayers {
		return fmt.Errorf("%w: expected %d controllers, got %d",
			ErrInvalidConfig, constants.MaxPlayers, len(c.Game.Controllers))
	}
	for i, name := range c.Game.Controllers {
		switch constants.Controller(strings.TrimSpace(name)) {
		case constants.ControllerHuman, constants.ControllerComputer:
		default:
			return fmt.Errorf("%w: unknown controller %q for player %d", ErrInvalidConfig, name, i+1)
		}
	}
	if c.Animation.ScreenWidth <= 0 || c.Animation.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size must be positive", ErrInvalidConfig)
	}
	if c.Animation.Speed < 0 {
		return fmt.Errorf("%w: animation speed must not be negative", ErrInvalidConfig)
	}
	if c.Animation.FrameRate <= 0 {
		return fmt.Errorf("%w: frame_rate must be positive", ErrInvalidConfig)
	}
	if c.Spectator.Enabled && c.Spectator.Addr == "" {
		return fmt.Errorf("%w: spectator addr is required", ErrInvalidConfig)
	}
	if c.Simulation.Games < 0 || c.Simulation.MaxTicks <= 0 {
		return fmt.Errorf("%w: simulation games and max_ticks must be positive", ErrInvalidConfig)
	}
	return nil
}

// PlayerControllers retourne le contrôleur de chaque joueur, indexé de 0 à 3
func (c *Config) PlayerControllers() [constants.MaxPlayers]constants.Controller {
	var out [constants.MaxPlayers]constants.Controller
	for i := 0; i < constants.MaxPlayers && i < len(c.Game.Controllers); i++ {
		out[i] = constants.Controller(strings.TrimSpace(c.Game.Controllers[i]))
	}
	return out
}
