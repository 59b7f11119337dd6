package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	LogPath  string  `yaml:"log-path" env:"TTT_LOG_PATH" env-default:""`
	Match    Match   `yaml:"match"`
	Console  Console `yaml:"console"`
	Redis    Redis   `yaml:"redis"`
}

type Match struct {
	PointsToWin int    `yaml:"points-to-win" env:"TTT_POINTS_TO_WIN" env-default:"3"`
	FirstMover  string `yaml:"first-mover" env:"TTT_FIRST_MOVER" env-default:"human"`
	// Seed of the computer's random source, 0 seeds from the clock.
	Seed uint64 `yaml:"seed" env:"TTT_SEED" env-default:"0"`
}

type Console struct {
	PlayerName   string `yaml:"player-name" env:"TTT_PLAYER_NAME" env-default:"You"`
	DisableColor bool   `yaml:"disable-color" env:"TTT_DISABLE_COLOR"`
	DisableClear bool   `yaml:"disable-clear" env:"TTT_DISABLE_CLEAR"`
}

type Redis struct {
	Enabled     bool          `yaml:"enabled" env:"TTT_REDIS_ENABLED" env-default:"false"`
	Host        string        `yaml:"host" env:"TTT_REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"TTT_REDIS_PORT" env-default:"6379"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env:"TTT_REDIS_SNAPSHOT_TTL" env-default:"1h"`
}

// MustLoad - load all configurations in config.yml file, or from the
// environment only when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	default:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	}

	if config.Match.PointsToWin < 1 {
		return nil, fmt.Errorf("points-to-win must be positive, got %d", config.Match.PointsToWin)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
