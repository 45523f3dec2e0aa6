package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"reversi/experiments"
	"reversi/experiments/metrics"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "reversi/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type GameConfig struct {
	Side    int  `json:"side"`
	Players int  `json:"players"`
	Othello bool `json:"othello"`
}

// AgentConfig is the file form of metrics.AgentConfig, with the search
// duration written as a Go duration string such as "500ms".
type AgentConfig struct {
	ID         int    `json:"id"`
	Kind       string `json:"kind"`
	Goroutines int    `json:"goroutines,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Episodes   int    `json:"episodes,omitempty"`
	Cutoff     int    `json:"cutoff,omitempty"`
	Seed       uint64 `json:"seed,omitempty"`
}

type ExperimentConfig struct {
	Name      string        `json:"name"`
	NumGames  int           `json:"num_games"`
	OutputDir string        `json:"output_dir"`
	Agents    []AgentConfig `json:"agents"`
	MatchUps  [][]int       `json:"match_ups,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

type Config struct {
	Game       GameConfig       `json:"game"`
	Experiment ExperimentConfig `json:"experiment"`
	Log        LogConfig        `json:"log"`
}

// InitConfig reads the user's config file if there is one and fills the gaps
// with the defaults.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := Default()
		return &config, config.Validate()
	}
	return Load(absPath)
}

// Load reads the config file at path on top of the defaults
func Load(path string) (*Config, error) {
	config := Default()
	// Agents listed in the file replace the default ones rather than merge
	defaultAgents := config.Experiment.Agents
	config.Experiment.Agents = nil
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if config.Experiment.Agents == nil {
		config.Experiment.Agents = defaultAgents
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return &InvalidConfig{fmt.Sprintf("log level %q is unknown", c.Log.Level)}
	}
	if c.Experiment.OutputDir == "" {
		return &InvalidConfig{"output directory is missing"}
	}
	exp, err := c.ToExperiment()
	if err != nil {
		return err
	}
	if err := exp.Validate(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

// LogLevel parses the configured zerolog level
func (c *Config) LogLevel() (zerolog.Level, error) {
	if c.Log.Level == "" {
		return zerolog.NoLevel, errors.New("missing log level")
	}
	return zerolog.ParseLevel(c.Log.Level)
}

// ToExperiment converts the config into the experiment it describes
func (c *Config) ToExperiment() (experiments.Experiment, error) {
	agents := make([]metrics.AgentConfig, len(c.Experiment.Agents))
	for i, a := range c.Experiment.Agents {
		var duration time.Duration
		if a.Duration != "" {
			d, err := time.ParseDuration(a.Duration)
			if err != nil {
				return experiments.Experiment{}, &InvalidConfig{fmt.Sprintf("agent %d duration %q: %v", a.ID, a.Duration, err)}
			}
			duration = d
		}
		agents[i] = metrics.AgentConfig{
			ID:         a.ID,
			Kind:       a.Kind,
			Goroutines: a.Goroutines,
			Duration:   duration,
			Episodes:   a.Episodes,
			Cutoff:     a.Cutoff,
			Seed:       a.Seed,
		}
	}
	return experiments.Experiment{
		Name:     c.Experiment.Name,
		Side:     c.Game.Side,
		Players:  c.Game.Players,
		Othello:  c.Game.Othello,
		NumGames: c.Experiment.NumGames,
		Agents:   agents,
		MatchUps: c.Experiment.MatchUps,
	}, nil
}

// Save writes the config to the user's config directory
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a any, perm os.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a any) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return &InvalidConfig{fmt.Sprintf("%s does not exist", filePath)}
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
