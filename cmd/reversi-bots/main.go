// reversi-bots plays Reversi bots against each other and records the games.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"reversi/config"
	"reversi/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Command-line flags
var (
	flagConfig     = flag.String("config", "", "Config file (default: searched in the XDG config directories)")
	flagSize       = flag.Int("size", 0, "Board side length")
	flagPlayers    = flag.Int("players", 0, "Number of players")
	flagOthello    = flag.Bool("othello", false, "Start from the Othello layout")
	flagGames      = flag.Int("games", 0, "Games per match up")
	flagBots       = flag.String("bots", "", "Comma separated bot per seat: random, greedy, mcts or mcts-sample")
	flagDuration   = flag.Duration("duration", 0, "Search time per move for mcts bots")
	flagEpisodes   = flag.Int("episodes", 0, "Search episodes per move for mcts bots")
	flagGoroutines = flag.Int("goroutines", 0, "Search goroutines for mcts bots")
	flagOut        = flag.String("out", "", "Output directory for experiment records")
	flagLevel      = flag.String("level", "", "Log level")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := cfg.LogLevel()
	zerolog.SetGlobalLevel(level)
	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	exp, err := cfg.ToExperiment()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid experiment")
	}
	result, err := experiments.RunMatchups(exp, cfg.Experiment.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	log.Info().Msgf("records stored in %s", result.Dir)

	printWins(result)
}

func loadConfig() (*config.Config, error) {
	if *flagConfig != "" {
		return config.Load(*flagConfig)
	}
	return config.InitConfig()
}

// applyFlags overrides config values with the flags given on the command line
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Game.Side = *flagSize
		case "players":
			cfg.Game.Players = *flagPlayers
		case "othello":
			cfg.Game.Othello = *flagOthello
		case "games":
			cfg.Experiment.NumGames = *flagGames
		case "out":
			cfg.Experiment.OutputDir = *flagOut
		case "level":
			cfg.Log.Level = *flagLevel
		}
	})

	if *flagBots != "" {
		agents := []config.AgentConfig{}
		for i, kind := range strings.Split(*flagBots, ",") {
			agents = append(agents, config.AgentConfig{
				ID:         i + 1,
				Kind:       strings.TrimSpace(kind),
				Goroutines: config.DefaultGoroutines,
				Episodes:   config.DefaultEpisodes,
				Cutoff:     config.DefaultCutoff,
				Seed:       uint64(i + 1),
			})
		}
		cfg.Experiment.Agents = agents
		cfg.Experiment.MatchUps = nil
	}

	for i := range cfg.Experiment.Agents {
		agent := &cfg.Experiment.Agents[i]
		if *flagDuration > 0 {
			agent.Duration = flagDuration.String()
			agent.Episodes = 0
		}
		if *flagEpisodes > 0 {
			agent.Episodes = *flagEpisodes
		}
		if *flagGoroutines > 0 {
			agent.Goroutines = *flagGoroutines
		}
	}
}

func printWins(result experiments.Result) {
	ids := make([]int, 0, len(result.Played))
	for id := range result.Played {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "agent\tplayed\twins\twin rate\n")
	for _, id := range ids {
		played, wins := result.Played[id], result.Wins[id]
		fmt.Fprintf(w, "%d\t%d\t%.1f\t%.2f\n", id, played, wins, wins/float64(played))
	}
	w.Flush()
}
