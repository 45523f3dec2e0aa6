package config

// Search settings for the default tree search agent
const (
	DefaultGoroutines = 8
	DefaultEpisodes   = 150
	DefaultCutoff     = 100
)

// Default returns a fresh copy of the default config: an MCTS agent against a
// greedy one on the standard Othello board.
func Default() Config {
	return Config{
		Game: GameConfig{
			Side:    8,
			Players: 2,
			Othello: true,
		},
		Experiment: ExperimentConfig{
			Name:      "matchup",
			NumGames:  10,
			OutputDir: "experiments",
			Agents: []AgentConfig{
				{
					ID:         1,
					Kind:       "mcts",
					Goroutines: DefaultGoroutines,
					Episodes:   DefaultEpisodes,
					Cutoff:     DefaultCutoff,
				},
				{
					ID:   2,
					Kind: "greedy",
				},
			},
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}
