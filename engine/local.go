package engine

import (
	"errors"
	"fmt"
	"time"

	"reversi/experiments/metrics"
	"reversi/gamemaster"
	"reversi/player"
	"reversi/searcher"

	"github.com/rs/zerolog/log"
)

var (
	ErrSeats     = errors.New("number of players does not match the game")
	ErrOutOfSync = errors.New("local game diverged from the referee")
	ErrStalled   = errors.New("no move could be played")
)

// Runner plays one refereed game between local players. Player i sits in seat
// i and plays as player number i+1.
type Runner struct {
	master   *gamemaster.LocalEngine
	players  []player.Player
	maxMoves int
}

var _ Engine = (*Runner)(nil)

func New(master *gamemaster.LocalEngine, players []player.Player) (*Runner, error) {
	if len(players) != master.NumPlayers() {
		return nil, fmt.Errorf("%w: got %d players for a %d-player game", ErrSeats, len(players), master.NumPlayers())
	}
	return &Runner{
		master:   master,
		players:  players,
		maxMoves: MaxMoves,
	}, nil
}

// Run executes the entire game loop until the game is over. Every player is
// told the moves played since its previous turn, starting with its own.
func (e *Runner) Run() ([]int, metrics.GameMetric, []metrics.MoveMetric, error) {
	state, getUpdate := e.master.Init()
	lineages := make([][]searcher.Segment, len(e.players))

	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	moveMetrics := []metrics.MoveMetric{}
	fail := func(err error) ([]int, metrics.GameMetric, []metrics.MoveMetric, error) {
		return nil, gameMetric, moveMetrics, err
	}

	log.Info().Msgf("player %d is starting", state.Turn())

	step := 0
	for !state.Done() && step < e.maxMoves {
		current := state.Turn()
		seat := current - 1

		move, search, err := e.players[seat].ChooseMove(state, lineages[seat])
		if err != nil {
			return fail(fmt.Errorf("player %d: %w", current, err))
		}
		lineages[seat] = nil

		if err := e.master.Play(move); err != nil {
			moves := state.AvailableMoves()
			if len(moves) == 0 {
				return fail(fmt.Errorf("%w: %v", ErrStalled, err))
			}
			log.Warn().Err(err).Msgf("player %d chose a rejected move => playing %v", current, moves[0])
			if err := e.master.Play(moves[0]); err != nil {
				return fail(fmt.Errorf("%w: %v", ErrStalled, err))
			}
			move = moves[0]
		}

		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       current,
			Move:         move.String(),
			SearchMetric: search,
		})

		// Mirror the referee's updates and share them with every player
		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			if err := state.ApplyMove(u.Move); err != nil {
				return fail(fmt.Errorf("%w: %v", ErrOutOfSync, err))
			}
			if state.Turn() != u.Turn || state.Done() != u.Done {
				return fail(fmt.Errorf("%w after %v", ErrOutOfSync, u.Move))
			}
			for i := range lineages {
				lineages[i] = append(lineages[i], searcher.Segment{Move: u.Move, StateHash: u.Hash})
			}
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.FinalCounts = e.master.Counts()

	if !state.Done() {
		log.Warn().Msgf("stopped after %d moves without a result", step)
		return nil, gameMetric, moveMetrics, nil
	}

	winners := e.master.Outcome()
	gameMetric.Winners = winners
	log.Info().Msgf("game ended after %d moves with winners %v and counts %v", step, winners, gameMetric.FinalCounts[1:])
	return winners, gameMetric, moveMetrics, nil
}
