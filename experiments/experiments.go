package experiments

import (
	"errors"
	"fmt"

	"reversi/engine"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/gamemaster"
	"reversi/player"

	"github.com/rs/zerolog/log"
)

var ErrInvalidExperiment = errors.New("invalid experiment")

// Experiment pits agents against each other. Each match up lists one agent ID
// per seat and is played NumGames times, rotating the seats between games.
type Experiment struct {
	Name     string                `json:"name"`
	Side     int                   `json:"side"`
	Players  int                   `json:"players"`
	Othello  bool                  `json:"othello"`
	NumGames int                   `json:"num_games"`
	Agents   []metrics.AgentConfig `json:"agents"`
	MatchUps [][]int               `json:"match_ups,omitempty"`
}

// Result aggregates the games of an experiment. A win shared by tied winners is
// split between them.
type Result struct {
	Dir    string
	Games  int
	Played map[int]int     // Agent ID to games played
	Wins   map[int]float64 // Agent ID to wins
}

func (e Experiment) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidExperiment)
	}
	if err := game.ValidateSetup(e.Side, e.Players, e.Othello); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExperiment, err)
	}
	if e.NumGames <= 0 {
		return fmt.Errorf("%w: games per match up must be positive, got %d", ErrInvalidExperiment, e.NumGames)
	}

	ids := map[int]bool{}
	for _, agent := range e.Agents {
		if ids[agent.ID] {
			return fmt.Errorf("%w: duplicate agent ID %d", ErrInvalidExperiment, agent.ID)
		}
		ids[agent.ID] = true
		if _, err := player.New(agent); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidExperiment, err)
		}
	}
	for i, matchUp := range e.matchUps() {
		if len(matchUp) != e.Players {
			return fmt.Errorf("%w: match up %d seats %d agents for %d players", ErrInvalidExperiment, i, len(matchUp), e.Players)
		}
		for _, id := range matchUp {
			if !ids[id] {
				return fmt.Errorf("%w: match up %d refers to unknown agent %d", ErrInvalidExperiment, i, id)
			}
		}
	}
	return nil
}

// matchUps defaults to a single match up seating every agent in order
func (e Experiment) matchUps() [][]int {
	if len(e.MatchUps) > 0 {
		return e.MatchUps
	}
	ids := make([]int, len(e.Agents))
	for i, agent := range e.Agents {
		ids[i] = agent.ID
	}
	return [][]int{ids}
}

// RunMatchups plays every match up and stores the setup, agent configs, game
// records and move records under outputDir/<name>/<timestamp>.
func RunMatchups(e Experiment, outputDir string) (Result, error) {
	if err := e.Validate(); err != nil {
		return Result{}, err
	}
	configs := make(map[int]metrics.AgentConfig, len(e.Agents))
	for _, agent := range e.Agents {
		configs[agent.ID] = agent
	}

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	result := Result{Played: map[int]int{}, Wins: map[int]float64{}}

	matchUps := e.matchUps()
	log.Info().Msgf("starting %s experiment...", e.Name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agents %v...", mi+1, len(matchUps), matchUp)

		for i := 0; i < e.NumGames; i++ {
			count++
			seats := rotate(matchUp, i)
			winners, gameMetric, moveMetrics, err := e.runGame(count, seats, configs)
			if err != nil {
				return result, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameMetric.RotationOffset = i % len(matchUp)

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				MatchUp:    mi,
				Agents:     seats,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			for _, id := range seats {
				result.Played[id]++
			}
			for _, winner := range winners {
				result.Wins[seats[winner-1]] += 1.0 / float64(len(winners))
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winners %v", mi+1, len(matchUps), i+1, winners)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}
	result.Games = count

	log.Info().Msgf("completed %s experiment", e.Name)

	dir, err := e.store(outputDir, gameRecords, moveRecords)
	result.Dir = dir
	return result, err
}

// rotate seats the agents of a match up starting from the offset-th one
func rotate(matchUp []int, offset int) []int {
	seats := make([]int, len(matchUp))
	for s := range seats {
		seats[s] = matchUp[(s+offset)%len(matchUp)]
	}
	return seats
}

// runGame executes a single game between freshly built players
func (e Experiment) runGame(id int, seats []int, configs map[int]metrics.AgentConfig) ([]int, metrics.GameMetric, []metrics.MoveMetric, error) {
	players := make([]player.Player, len(seats))
	for s, agentID := range seats {
		config := configs[agentID]
		// Vary random players between games
		config.Seed += uint64(id)
		p, err := player.New(config)
		if err != nil {
			return nil, metrics.GameMetric{}, nil, err
		}
		players[s] = p
	}

	master, err := gamemaster.NewLocalEngine(e.Side, e.Players, e.Othello)
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}
	runner, err := engine.New(master, players)
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}
	return runner.Run()
}

func (e Experiment) store(outputDir string, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(outputDir, e.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteSetup(e); err != nil {
		return writer.Dir(), fmt.Errorf("failed to store setup: %w", err)
	}
	if err := writer.WriteAgentConfigs(e.Agents); err != nil {
		return writer.Dir(), fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return writer.Dir(), fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return writer.Dir(), fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
